// Package cli wires the command surface: one cobra command per user-facing
// operation, sharing a single App built in the root command's pre-run.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the cowork command tree. Collaborators are
// wired once in PersistentPreRunE so subcommands share one config,
// logger, and API client.
func NewRootCommand() *cobra.Command {
	var (
		configPath  string
		interactive bool
		debug       bool
		app         *App
	)

	root := &cobra.Command{
		Use:   "cowork",
		Short: "Book coworking-space meeting rooms from the terminal",
		Long: `cowork is a CLI client for the CoSoft room-booking system. It lists
meeting rooms, shows a per-day availability calendar, creates and cancels
reservations (single and batch), and exposes the same operations over a
line-oriented JSON protocol for external tools.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			app, err = newApp(configPath, interactive, debug)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Log != nil {
				_ = app.Log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "override config file path")
	root.PersistentFlags().BoolVarP(&interactive, "interactive", "i", false, "run in interactive mode")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "write wire-level traces to the debug log")

	appRef := func() *App { return app }
	root.AddCommand(
		newLoginCommand(appRef),
		newAuthCommand(appRef),
		newRoomsCommand(appRef),
		newBookCommand(appRef),
		newCancelCommand(appRef),
		newMyBookingsCommand(appRef),
		newCalendarCommand(appRef),
		newServeCommand(appRef),
		newLogsCommand(appRef),
	)
	return root
}
