package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/docxology/metaguildnet/internal/domain"
)

func newClusterCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Manage registered clusters",
	}
	cmd.AddCommand(
		newClusterListCmd(a),
		newClusterGetCmd(a),
		newClusterStatusCmd(a),
		newClusterBootstrapCmd(a),
		newClusterUpdateCmd(a),
		newClusterDeleteCmd(a),
	)
	return cmd
}

func newClusterListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered clusters",
		RunE: func(cmd *cobra.Command, args []string) error {
			clusters, err := a.gateway().ListClusters(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(clusters))
			for _, c := range clusters {
				rows = append(rows, []string{c.ID, c.Name, c.Namespace, c.IngressDomain})
			}
			return a.render([]string{"ID", "Name", "Namespace", "Ingress Domain"}, rows, clusters)
		},
	}
}

func newClusterGetCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <cluster-id>",
		Short: "Show one cluster and its settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cluster, err := a.gateway().GetCluster(ctx, args[0])
			if err != nil {
				return err
			}
			settings, err := a.gateway().GetSettings(ctx, args[0])
			if err != nil {
				return err
			}
			detail := struct {
				Cluster  *domain.Cluster         `json:"cluster" yaml:"cluster"`
				Settings *domain.ClusterSettings `json:"settings" yaml:"settings"`
			}{cluster, settings}
			rows := [][]string{
				{"ID", cluster.ID},
				{"Name", cluster.Name},
				{"Namespace", cluster.Namespace},
				{"Ingress Domain", cluster.IngressDomain},
				{"Org ID", settings.OrgID},
			}
			return a.render([]string{"Field", "Value"}, rows, detail)
		},
	}
}

func newClusterStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status [cluster-id]",
		Short: "Show health for one cluster or all clusters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				health, err := a.gateway().ClusterHealth(ctx, args[0])
				if err != nil {
					return err
				}
				rows := [][]string{healthRow(*health)}
				return a.render(healthHeader(), rows, health)
			}

			summary, err := a.gateway().GlobalHealth(ctx)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(summary.Clusters))
			for _, h := range summary.Clusters {
				rows = append(rows, healthRow(h))
			}
			if a.format == "" || a.format == "table" {
				fmt.Fprintf(a.Out, "Overall: %s\n", healthWord(summary.Healthy))
			}
			return a.render(healthHeader(), rows, summary)
		},
	}
}

func healthHeader() []string {
	return []string{"Cluster", "Kubeconfig", "Reachable", "Detail"}
}

func healthRow(h domain.ClusterHealth) []string {
	kubeconfig := "missing"
	if h.KubeconfigPresent {
		kubeconfig = "invalid"
		if h.KubeconfigValid {
			kubeconfig = "valid"
		}
	}
	detail := h.K8sError
	if detail == "" {
		detail = h.RecommendedAction
	}
	return []string{h.ClusterID, kubeconfig, strconv.FormatBool(h.K8sReachable), detail}
}

func healthWord(ok bool) string {
	if ok {
		return "healthy"
	}
	return "unhealthy"
}

func newClusterBootstrapCmd(a *App) *cobra.Command {
	var kubeconfigPath string
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Register a new cluster from a kubeconfig",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if kubeconfigPath == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(kubeconfigPath)
			}
			if err != nil {
				return fmt.Errorf("read kubeconfig: %w", err)
			}

			id, err := a.gateway().Bootstrap(cmd.Context(), data)
			if err != nil {
				return err
			}
			if id == "" {
				// The Host App accepted the request without returning
				// an ID; the cluster may still appear in the list.
				fmt.Fprintln(a.Out, "Bootstrap submitted, but no cluster ID was returned. Run 'mgn cluster list' to check.")
				return nil
			}
			fmt.Fprintf(a.Out, "Cluster registered: %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&kubeconfigPath, "kubeconfig", "", "kubeconfig file path, or '-' for stdin")
	cmd.MarkFlagRequired("kubeconfig")
	return cmd
}

func newClusterUpdateCmd(a *App) *cobra.Command {
	var name, namespace, ingressDomain, orgID string
	cmd := &cobra.Command{
		Use:   "update <cluster-id>",
		Short: "Update cluster settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			settings, err := a.gateway().GetSettings(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				settings.Name = name
			}
			if cmd.Flags().Changed("namespace") {
				settings.Namespace = namespace
			}
			if cmd.Flags().Changed("ingress-domain") {
				settings.IngressDomain = ingressDomain
			}
			if cmd.Flags().Changed("org-id") {
				settings.OrgID = orgID
			}
			if err := a.gateway().UpdateSettings(ctx, args[0], *settings); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "Cluster %s updated\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "cluster display name")
	cmd.Flags().StringVar(&namespace, "namespace", "", "workspace namespace")
	cmd.Flags().StringVar(&ingressDomain, "ingress-domain", "", "ingress domain")
	cmd.Flags().StringVar(&orgID, "org-id", "", "organization ID")
	return cmd
}

func newClusterDeleteCmd(a *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <cluster-id>",
		Short: "Remove a cluster registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("removing a cluster abandons its workspaces; re-run with --yes to confirm")
			}
			if err := a.gateway().DeleteCluster(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "Cluster %s removed\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")
	return cmd
}
