package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/docxology/metaguildnet/internal/dashboard"
	"github.com/docxology/metaguildnet/internal/domain"
	"github.com/docxology/metaguildnet/internal/tui"
)

func newVizCmd(a *App) *cobra.Command {
	var (
		refresh  time.Duration
		snapshot bool
	)
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Open the live terminal dashboard",
		Long: `Opens the full-screen dashboard: clusters, workspaces and global
health, refreshed on a fixed cadence. With --snapshot, prints one
refresh as plain text and exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cluster != "" {
				a.Config.Defaults.Cluster = a.cluster
			}
			if refresh > 0 {
				a.Config.Dashboard.Refresh = refresh
			}

			if snapshot {
				snap := dashboard.Build(cmd.Context(), a.gateway(), a.Config.Defaults.Cluster)
				return a.printSnapshot(snap)
			}

			factory := func() (domain.Gateway, error) {
				return a.gateway(), nil
			}
			return tui.Run(a.gateway(), nil, factory, a.Config)
		},
	}
	cmd.Flags().DurationVar(&refresh, "refresh", 0, "dashboard refresh interval (default from config)")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "print one snapshot instead of opening the dashboard")
	return cmd
}

// printSnapshot renders one dashboard snapshot as plain tables, for
// terminals and scripts that cannot run the full-screen view.
func (a *App) printSnapshot(snap dashboard.Snapshot) error {
	if !snap.Connected() {
		fmt.Fprintf(a.Out, "Host App unreachable: %v\n", snap.ClustersErr)
		fmt.Fprintln(a.Out, "Run 'mgn install' to set up a deployment.")
		return nil
	}

	fmt.Fprintln(a.Out, "CLUSTERS")
	if snap.ClustersErr != nil {
		fmt.Fprintf(a.Out, "  unavailable: %v\n", snap.ClustersErr)
	} else {
		rows := make([][]string, 0, len(snap.Clusters))
		for _, row := range snap.Clusters {
			health := "unknown"
			if row.Health != nil {
				health = healthWord(row.Healthy())
			}
			rows = append(rows, []string{row.Cluster.ID, row.Cluster.Name, health})
		}
		printTable(a.Out, []string{"ID", "Name", "Health"}, rows)
	}

	fmt.Fprintf(a.Out, "\nWORKSPACES (%s)\n", snap.FocusID)
	if snap.WorkspacesErr != nil {
		fmt.Fprintf(a.Out, "  unavailable: %v\n", snap.WorkspacesErr)
	} else {
		rows := make([][]string, 0, len(snap.Workspaces))
		for _, ws := range snap.Workspaces {
			rows = append(rows, []string{ws.Name, string(ws.Status), strconv.Itoa(ws.Ready), ws.Image})
		}
		printTable(a.Out, []string{"Name", "Status", "Ready", "Image"}, rows)
	}

	fmt.Fprintln(a.Out, "\nHEALTH")
	switch {
	case snap.SummaryErr != nil:
		fmt.Fprintf(a.Out, "  unavailable: %v\n", snap.SummaryErr)
	case snap.Summary != nil:
		fmt.Fprintf(a.Out, "  overall: %s, running workspaces: %d\n",
			healthWord(snap.Summary.Healthy), snap.RunningWorkspaces())
	}
	return nil
}
