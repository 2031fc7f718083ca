package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/coworkcli/cowork/internal/booking"
	"github.com/coworkcli/cowork/internal/ui"
)

func newBookCommand(app func() *App) *cobra.Command {
	var (
		roomName  string
		date      string
		startTime string
		endTime   string
		batchFile string
		batchJSON string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a room",
		Long: `Book a single room or a batch of rooms.

Single bookings take --room-name, --date, --start-time and --end-time.
Batch bookings take a JSON array of booking objects via --batch-file or
--batch-json. With -i the booking is built through an interactive form.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			ctx := cmd.Context()

			if batchFile != "" || batchJSON != "" {
				return runBookBatch(ctx, a, batchFile, batchJSON)
			}
			if a.Interactive {
				return runBookInteractive(ctx, a)
			}

			req := booking.Request{
				RoomName:  roomName,
				Date:      date,
				StartTime: startTime,
				EndTime:   endTime,
			}
			return runBookSingle(ctx, a, req)
		},
	}

	cmd.Flags().StringVar(&roomName, "room-name", "", "name of the room to book")
	cmd.Flags().StringVar(&date, "date", "", "booking date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&startTime, "start-time", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&endTime, "end-time", "", "end time (HH:MM)")
	cmd.Flags().StringVar(&batchFile, "batch-file", "", "path to a JSON file with an array of bookings")
	cmd.Flags().StringVar(&batchJSON, "batch-json", "", "JSON array of bookings")
	return cmd
}

func runBookSingle(ctx context.Context, a *App, req booking.Request) error {
	if violations := booking.ValidateRequest(req); len(violations) > 0 {
		return booking.InputError(violations)
	}

	rooms, err := a.Rooms(ctx)
	if err != nil {
		return err
	}
	room, ok := booking.FindByName(rooms, req.RoomName)
	if !ok {
		return fmt.Errorf("room %q not found or not available", req.RoomName)
	}

	pipeline, err := a.Pipeline()
	if err != nil {
		return err
	}
	conf, err := pipeline.Book(ctx, room, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, a.Styles.RenderConfirmation(conf))
	return nil
}

func runBookBatch(ctx context.Context, a *App, batchFile, batchJSON string) error {
	reqs, err := loadBookingBatch(batchFile, batchJSON)
	if err != nil {
		return err
	}

	orch, err := a.Orchestrator()
	if err != nil {
		return err
	}
	summary, err := orch.BookBatch(ctx, reqs)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, a.Styles.RenderSummary(summary))
	return nil
}

func runBookInteractive(ctx context.Context, a *App) error {
	rooms, err := a.Rooms(ctx)
	if err != nil {
		return err
	}

	form := ui.NewForm(rooms, a.Prefs.DefaultRoom, a.Prefs.Theme)
	model, err := tea.NewProgram(form, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("interactive form: %w", err)
	}
	req, ok := model.(ui.FormModel).Result()
	if !ok {
		fmt.Fprintln(a.Stderr, "Booking cancelled.")
		return nil
	}
	return runBookSingle(ctx, a, req)
}
