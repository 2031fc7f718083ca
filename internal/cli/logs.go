package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coworkcli/cowork/internal/logtail"
)

func newLogsCommand(app func() *App) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the debug log",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()

			raw, err := logtail.Read(a.Config.DebugLog, lines)
			if err != nil {
				return err
			}
			if len(raw) == 0 {
				fmt.Fprintf(a.Stderr, "Debug log %s is empty. Run a command with --debug to populate it.\n", a.Config.DebugLog)
				return nil
			}
			for _, line := range logtail.RenderLines(raw) {
				fmt.Fprintln(a.Stdout, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 100, "number of lines to show (0 for the whole file)")
	return cmd
}
