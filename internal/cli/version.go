package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set by the build via -ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func newVersionCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Show version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.Out, "mgn %s\n", version)
			fmt.Fprintf(a.Out, "commit: %s\n", gitCommit)
			fmt.Fprintf(a.Out, "built:  %s (%s)\n", buildDate, runtime.Version())
			return nil
		},
	}
}
