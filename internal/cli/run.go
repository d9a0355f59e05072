package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/docxology/metaguildnet/internal/installer"
	"github.com/docxology/metaguildnet/internal/runner"
)

func newRunCmd(a *App) *cobra.Command {
	var (
		outputsDir string
		namePrefix string
		image      string
		password   string
		waitMax    time.Duration
		withSetup  bool
		cleanup    bool
	)
	cmd := &cobra.Command{
		Use:       "run <workflow>",
		Short:     "Run an operational workflow",
		Long:      "Runs one workflow end to end: full, setup, verify, example, diagnose or cleanup.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"full", "setup", "verify", "example", "diagnose", "cleanup"},
		RunE: func(cmd *cobra.Command, args []string) error {
			install := &installer.Runner{
				ScriptsDir: a.Config.Install.ScriptsDir,
				Out:        a.Out,
			}
			cluster := a.cluster
			if cluster == "" {
				cluster = a.Config.Defaults.Cluster
			}
			r := runner.New(runner.Options{
				Gateway:   a.gateway(),
				Installer: install,
				Verifier: &installer.Verifier{
					Runner:  install,
					Gateway: a.gateway(),
				},
				Out:        a.Out,
				OutputsDir: outputsDir,
				Cluster:    cluster,
				Example: runner.ExampleConfig{
					NamePrefix: namePrefix,
					Image:      image,
					Password:   password,
				},
				WaitMax:    waitMax,
				RunSetup:   withSetup,
				RunCleanup: cleanup,
			})
			return r.Run(cmd.Context(), runner.Workflow(args[0]))
		},
	}
	cmd.Flags().StringVar(&outputsDir, "outputs-dir", "outputs", "directory for workflow transcripts")
	cmd.Flags().StringVar(&namePrefix, "name-prefix", "", "example workspace name prefix")
	cmd.Flags().StringVar(&image, "image", "", "example workspace image")
	cmd.Flags().StringVar(&password, "password", "", "example workspace password env")
	cmd.Flags().DurationVar(&waitMax, "wait-timeout", 0, "example readiness wait budget")
	cmd.Flags().BoolVar(&withSetup, "setup", false, "include the setup step in the full workflow")
	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "include the cleanup step in the full workflow")
	return cmd
}
