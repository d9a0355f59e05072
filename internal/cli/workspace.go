package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/docxology/metaguildnet/internal/domain"
	"github.com/docxology/metaguildnet/internal/wait"
)

func newWorkspaceCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces in a cluster",
	}
	cmd.AddCommand(
		newWorkspaceListCmd(a),
		newWorkspaceGetCmd(a),
		newWorkspaceCreateCmd(a),
		newWorkspaceDeleteCmd(a),
		newWorkspaceLogsCmd(a),
		newWorkspaceWaitCmd(a),
	)
	return cmd
}

func newWorkspaceListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			workspaces, err := a.gateway().ListWorkspaces(cmd.Context(), cluster)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(workspaces))
			for _, ws := range workspaces {
				rows = append(rows, []string{
					ws.Name, string(ws.Status), strconv.Itoa(ws.Ready),
					ws.Image, createdCell(ws.CreatedAt),
				})
			}
			return a.render([]string{"Name", "Status", "Ready", "Image", "Created"}, rows, workspaces)
		},
	}
}

func createdCell(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func newWorkspaceGetCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show one workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			ws, err := a.gateway().GetWorkspace(cmd.Context(), cluster, args[0])
			if err != nil {
				return err
			}
			rows := [][]string{
				{"Name", ws.Name},
				{"Status", string(ws.Status)},
				{"Image", ws.Image},
				{"Ready", strconv.Itoa(ws.Ready)},
				{"Ports", portsCell(ws.Ports)},
				{"Created", createdCell(ws.CreatedAt)},
			}
			if ws.ID != "" {
				rows = append(rows, []string{"Access", fmt.Sprintf("%s/proxy/server/%s/", a.gateway().BaseURL(), ws.ID)})
			}
			return a.render([]string{"Field", "Value"}, rows, ws)
		},
	}
}

func portsCell(ports []domain.Port) string {
	if len(ports) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ports))
	for _, p := range ports {
		parts = append(parts, strconv.Itoa(p.Port))
	}
	return strings.Join(parts, ",")
}

func newWorkspaceCreateCmd(a *App) *cobra.Command {
	var (
		image    string
		envPairs []string
		ports    []int
		waitFor  bool
		timeout  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			spec := domain.WorkspaceSpec{Name: args[0], Image: image}
			for _, pair := range envPairs {
				name, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("invalid --env %q, want NAME=VALUE", pair)
				}
				spec.Env = append(spec.Env, domain.EnvVar{Name: name, Value: value})
			}
			for _, p := range ports {
				spec.Ports = append(spec.Ports, domain.Port{Port: p})
			}

			ws, err := a.gateway().CreateWorkspace(cmd.Context(), cluster, spec)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "Workspace %s created (status: %s)\n", ws.Name, ws.Status)

			if !waitFor {
				return nil
			}
			return a.waitForWorkspace(cmd, cluster, ws.Name, timeout, 0)
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "container image")
	cmd.Flags().StringArrayVar(&envPairs, "env", nil, "environment variable NAME=VALUE (repeatable)")
	cmd.Flags().IntSliceVar(&ports, "port", nil, "exposed container port (repeatable)")
	cmd.Flags().BoolVar(&waitFor, "wait", false, "wait until the workspace is running")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "how long to wait with --wait")
	cmd.MarkFlagRequired("image")
	return cmd
}

func newWorkspaceDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			if err := a.gateway().DeleteWorkspace(cmd.Context(), cluster, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "Workspace %s deleted\n", args[0])
			return nil
		},
	}
}

func newWorkspaceLogsCmd(a *App) *cobra.Command {
	var tail int
	cmd := &cobra.Command{
		Use:   "logs <name>",
		Short: "Print workspace logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			lines, err := a.gateway().WorkspaceLogs(cmd.Context(), cluster, args[0], tail)
			if err != nil {
				return err
			}
			for _, line := range lines {
				if line.Timestamp.IsZero() {
					fmt.Fprintln(a.Out, line.Line)
					continue
				}
				fmt.Fprintf(a.Out, "%s %s\n", line.Timestamp.Format(time.RFC3339), line.Line)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&tail, "tail", 200, "number of trailing lines")
	return cmd
}

func newWorkspaceWaitCmd(a *App) *cobra.Command {
	var (
		timeout  time.Duration
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "wait <name>",
		Short: "Wait until a workspace is running",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster, err := a.clusterID()
			if err != nil {
				return err
			}
			return a.waitForWorkspace(cmd, cluster, args[0], timeout, interval)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "total wait budget")
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default 5s)")
	return cmd
}

func (a *App) waitForWorkspace(cmd *cobra.Command, cluster, name string, timeout, interval time.Duration) error {
	cfg := wait.Config{Interval: interval, MaxWait: timeout}
	if a.verbose {
		cfg.Logf = func(format string, args ...any) {
			fmt.Fprintf(a.ErrOut, format+"\n", args...)
		}
	}
	res, err := wait.ForWorkspace(cmd.Context(), a.gateway(), cluster, name, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Workspace %s is %s after %d polls (%s)\n",
		name, res.Outcome, res.Polls, res.Elapsed.Round(time.Millisecond))
	if res.Outcome != wait.Ready {
		return fmt.Errorf("workspace %s %s (last status %q)", name, res.Outcome, res.LastStatus)
	}
	return nil
}
