package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docxology/metaguildnet/internal/installer"
)

func newVerifyCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:       "verify [suite]",
		Short:     "Verify the deployment layer by layer",
		Long:      "Runs a verification suite: system, network, kubernetes, guildnet or all (default).",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"system", "network", "kubernetes", "guildnet", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := installer.VerifyAll
			if len(args) == 1 {
				kind = installer.VerifyKind(args[0])
			}

			verifier := &installer.Verifier{
				Runner: &installer.Runner{
					ScriptsDir: a.Config.Install.ScriptsDir,
					Out:        a.Out,
				},
				Gateway: a.gateway(),
			}
			results, err := verifier.Run(cmd.Context(), kind)
			if err != nil {
				return err
			}

			failed := 0
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				mark := "✓"
				if !r.OK {
					mark = "✗"
					failed++
				}
				rows = append(rows, []string{mark, string(r.Suite), r.Name, r.Detail})
			}
			if err := a.render([]string{"", "Suite", "Check", "Detail"}, rows, results); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			fmt.Fprintf(a.Out, "All %d checks passed\n", len(results))
			return nil
		},
	}
}
