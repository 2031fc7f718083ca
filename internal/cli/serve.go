package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coworkcli/cowork/internal/booking"
	"github.com/coworkcli/cowork/internal/protocol"
	"github.com/coworkcli/cowork/internal/state"
)

func newServeCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the line-oriented JSON protocol on stdin/stdout",
		Long: `Serve booking commands over a line-oriented JSON protocol.

Each input line is one request; each request produces progress events and
exactly one response on stdout. The session must be valid before the
server starts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			ctx := cmd.Context()

			session, err := a.Session()
			if err != nil {
				return err
			}
			checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			user, err := a.Client.CheckAuth(checkCtx, session)
			cancel()
			if err != nil {
				return fmt.Errorf("authentication check failed: %w", err)
			}
			a.Log.Info("protocol server starting", zap.String("user", user.DisplayName()))
			fmt.Fprintf(a.Stderr, "Serving as %s. One JSON request per line.\n", user.DisplayName())

			pipeline, err := a.Pipeline()
			if err != nil {
				return err
			}

			// Serve mode is long-running; keep the last good fetch so a
			// transient API failure does not fail every request.
			store := &state.Store{}
			rooms := func(ctx context.Context) ([]booking.Room, error) {
				fetched, err := a.Rooms(ctx)
				store.UpdateRooms(fetched, err)
				if err != nil {
					if snap := store.Snapshot(); snap.HasRooms {
						a.Log.Warn("room fetch failed, serving cached catalog", zap.Error(err))
						return snap.Rooms, nil
					}
					return nil, err
				}
				return fetched, nil
			}
			reservations := func(ctx context.Context) ([]booking.Reservation, error) {
				fetched, err := a.Reservations(ctx)
				store.UpdateReservations(fetched, err)
				if err != nil {
					if snap := store.Snapshot(); snap.HasReservations {
						a.Log.Warn("reservation fetch failed, serving cached list", zap.Error(err))
						return snap.Reservations, nil
					}
					return nil, err
				}
				return fetched, nil
			}

			server := &protocol.Server{
				Rooms:        rooms,
				Reservations: reservations,
				Book:         pipeline.Book,
				Cancel:       pipeline.Cancel,
				BusyGrid:     a.BusyGrid,
				Now:          timeNow,
				Log:          a.Log,
			}
			return server.Run(ctx, os.Stdin, a.Stdout)
		},
	}
}
