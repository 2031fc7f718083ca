package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/coworkcli/cowork/internal/booking"
	"github.com/coworkcli/cowork/internal/ui"
)

func newCancelCommand(app func() *App) *cobra.Command {
	var (
		bookingID string
		batchIDs  string
		batchFile string
		batchJSON string
	)

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel one or more bookings",
		Long: `Cancel a single booking by id, or a batch of bookings.

Batch cancellations take ids via --batch-ids (comma-separated), or a JSON
array of id strings via --batch-file or --batch-json. With -i the batch is
shown and confirmed before any cancellation is sent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			ctx := cmd.Context()

			if batchIDs != "" || batchFile != "" || batchJSON != "" {
				return runCancelBatch(ctx, a, batchIDs, batchFile, batchJSON)
			}

			pipeline, err := a.Pipeline()
			if err != nil {
				return err
			}
			if err := pipeline.Cancel(ctx, bookingID); err != nil {
				return err
			}
			fmt.Fprintf(a.Stdout, "Booking %s cancelled.\n", bookingID)
			return nil
		},
	}

	cmd.Flags().StringVar(&bookingID, "booking-id", "", "id of the booking to cancel")
	cmd.Flags().StringVar(&batchIDs, "batch-ids", "", "comma-separated booking ids")
	cmd.Flags().StringVar(&batchFile, "batch-file", "", "path to a JSON file with an array of booking ids")
	cmd.Flags().StringVar(&batchJSON, "batch-json", "", "JSON array of booking ids")
	return cmd
}

func runCancelBatch(ctx context.Context, a *App, batchIDs, batchFile, batchJSON string) error {
	ids, err := loadCancellationIDs(batchFile, batchJSON, batchIDs)
	if err != nil {
		return err
	}

	if a.Interactive {
		// Best effort: the confirmation is still meaningful with bare ids
		// when the booking list cannot be loaded.
		reservations, err := a.Reservations(ctx)
		if err != nil {
			fmt.Fprintln(a.Stderr, "Warning: could not load booking details for verification.")
			reservations = nil
		}
		details := describeCancellations(ids, reservations)
		confirm := ui.NewConfirm(fmt.Sprintf("Cancel %d booking(s)?", len(ids)), details, a.Prefs.Theme)
		model, err := tea.NewProgram(confirm, tea.WithContext(ctx)).Run()
		if err != nil {
			return fmt.Errorf("confirmation prompt: %w", err)
		}
		if !model.(ui.ConfirmModel).Accepted() {
			fmt.Fprintln(a.Stderr, "Cancellation aborted.")
			return nil
		}
	}

	orch, err := a.Orchestrator()
	if err != nil {
		return err
	}
	summary, err := orch.CancelBatch(ctx, ids)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, a.Styles.RenderSummary(summary))
	return nil
}

// describeCancellations resolves each id against the user's bookings so the
// confirmation shows what is about to be cancelled, not just opaque ids.
// Unresolvable ids fall back to the identifier alone.
func describeCancellations(ids []string, reservations []booking.Reservation) []string {
	byID := make(map[string]booking.Reservation, len(reservations))
	for _, r := range reservations {
		byID[r.ID] = r
	}

	details := make([]string, len(ids))
	for i, id := range ids {
		if r, ok := byID[id]; ok {
			details[i] = fmt.Sprintf("%s on %s at %s (ID: %s)", r.Room, r.Date, r.Time, id)
		} else {
			details[i] = fmt.Sprintf("Booking ID: %s (details not available)", id)
		}
	}
	return details
}
