package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/docxology/metaguildnet/internal/installer"
)

func newInstallCmd(a *App) *cobra.Command {
	var (
		clusterName string
		skipVerify  bool
		dryRun      bool
	)
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Run the GuildNet installation scripts",
		Long: `Runs the ordered installation scripts (prerequisites, runtime,
Kubernetes, Host App, cluster bootstrap) and the final verification
pass. Scripts are resolved under install.scripts_dir from config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &installer.Runner{
				ScriptsDir: a.Config.Install.ScriptsDir,
				Out:        a.Out,
			}

			if dryRun {
				rows := [][]string{}
				for _, st := range runner.DryRun() {
					rows = append(rows, []string{st.Name, st.Path, strconv.FormatBool(st.Found)})
				}
				printTable(a.Out, []string{"Step", "Script", "Found"}, rows)
				return nil
			}

			missing := 0
			for _, p := range installer.CheckPrerequisites() {
				if !p.Found {
					fmt.Fprintf(a.Out, "Missing prerequisite %s (%s). Install: %s\n", p.Name, p.Command, p.Hint)
					missing++
				}
			}
			if missing > 0 {
				return fmt.Errorf("%d prerequisite(s) missing", missing)
			}

			return runner.RunInstall(cmd.Context(), clusterName, skipVerify)
		},
	}
	cmd.Flags().StringVar(&clusterName, "cluster-name", "default", "name for the bootstrapped cluster")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "skip the post-install verification step")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "check script paths without executing")

	cmd.AddCommand(newInstallCheckCmd(a))
	return cmd
}

func newInstallCheckCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check installation prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			results := installer.CheckPrerequisites()
			rows := make([][]string, 0, len(results))
			missing := 0
			for _, p := range results {
				status := "found"
				hint := ""
				if !p.Found {
					status = "missing"
					hint = p.Hint
					missing++
				}
				rows = append(rows, []string{p.Name, p.Command, status, hint})
			}
			if err := a.render([]string{"Tool", "Command", "Status", "Install Hint"}, rows, results); err != nil {
				return err
			}
			if missing > 0 {
				return fmt.Errorf("%d prerequisite(s) missing", missing)
			}
			return nil
		},
	}
}
