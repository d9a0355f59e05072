package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docxology/metaguildnet/internal/report"
)

func newReportCmd(a *App) *cobra.Command {
	var (
		dir     string
		save    string
		section string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a report from saved workflow outputs",
		Long: `Parses the transcripts written by 'mgn run' and renders an ASCII
report: workflow status dashboard, execution timeline and component
matrix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := report.ParseOutputs(dir)
			if err != nil {
				return err
			}
			r := report.NewRenderer(results)

			if save != "" {
				if err := r.Save(save); err != nil {
					return err
				}
				fmt.Fprintf(a.Out, "Report saved to %s\n", save)
				return nil
			}

			switch section {
			case "dashboard":
				fmt.Fprintln(a.Out, r.Dashboard())
			case "timeline":
				fmt.Fprintln(a.Out, r.Timeline())
			case "matrix":
				fmt.Fprintln(a.Out, r.Matrix())
			case "", "all":
				fmt.Fprintln(a.Out, r.Report())
			default:
				return fmt.Errorf("unknown section %q (want dashboard, timeline, matrix or all)", section)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "outputs", "directory holding workflow transcripts")
	cmd.Flags().StringVar(&save, "save", "", "write the full report to a file instead of printing")
	cmd.Flags().StringVar(&section, "section", "", "render one section: dashboard, timeline or matrix")
	return cmd
}
