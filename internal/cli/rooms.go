package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coworkcli/cowork/internal/booking"
)

func newRoomsCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rooms",
		Aliases: []string{"list"},
		Short:   "List all meeting rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			rooms, err := a.Rooms(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(a.Stdout, a.Styles.RenderRooms(rooms))
			return nil
		},
	}
}

func newMyBookingsCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "my-bookings [date]",
		Short: "View your current and upcoming bookings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			reservations, err := a.Reservations(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				reservations = booking.FilterByDate(reservations, args[0])
			}
			fmt.Fprint(a.Stdout, a.Styles.RenderReservations(reservations))
			return nil
		},
	}
}

func newCalendarCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [date]",
		Short: "Show the per-room availability grid for one day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()

			date := timeNow().Format("2006-01-02")
			if len(args) == 1 {
				date = args[0]
			}
			if !booking.ValidDate(date) {
				return booking.InputError([]string{"date must be in YYYY-MM-DD format"})
			}

			rooms, err := a.Rooms(cmd.Context())
			if err != nil {
				return err
			}
			grid, err := a.BusyGrid(cmd.Context(), date, rooms)
			if err != nil {
				return err
			}
			fmt.Fprint(a.Stdout, a.Styles.RenderCalendar(grid))
			return nil
		},
	}
}
