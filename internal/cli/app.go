package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/coworkcli/cowork/internal/auth"
	"github.com/coworkcli/cowork/internal/booking"
	"github.com/coworkcli/cowork/internal/calendar"
	"github.com/coworkcli/cowork/internal/config"
	"github.com/coworkcli/cowork/internal/cosoft"
	"github.com/coworkcli/cowork/internal/logging"
	"github.com/coworkcli/cowork/internal/prefs"
	"github.com/coworkcli/cowork/internal/ui"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// App carries the wired collaborators every command works against. It is
// built once in the root command's PersistentPreRunE and shared by all
// subcommands.
type App struct {
	Config config.Config
	Prefs  prefs.Prefs
	Log    *zap.Logger
	Client *cosoft.Client
	Styles ui.Styles

	Interactive bool
	Stdout      io.Writer
	Stderr      io.Writer

	session    auth.Session
	hasSession bool
}

func newApp(configPath string, interactive, debug bool) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	userPrefs, _ := prefs.Load("")

	log, err := logging.New(cfg.DebugLog, debug || logging.Enabled())
	if err != nil {
		return nil, err
	}

	client, err := cosoft.NewClient(cfg.BaseURL, cfg.SpaceID, cfg.CategoryID, log)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:      cfg,
		Prefs:       userPrefs,
		Log:         log,
		Client:      client,
		Styles:      ui.GetTheme(userPrefs.Theme).Styles(),
		Interactive: interactive,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}, nil
}

// Session loads the persisted token pair once and caches it. Commands that
// talk to the API call this first; a missing session fails with the login
// hint before any network activity.
func (a *App) Session() (auth.Session, error) {
	if a.hasSession {
		return a.session, nil
	}
	session, err := auth.Load(a.Config.AuthPath)
	if err != nil {
		return auth.Session{}, err
	}
	a.session = session
	a.hasSession = true
	return session, nil
}

// Pipeline builds the booking pipeline for the current session.
func (a *App) Pipeline() (*booking.Pipeline, error) {
	session, err := a.Session()
	if err != nil {
		return nil, err
	}
	return booking.NewPipeline(a.Client, session, a.Log), nil
}

// Rooms fetches and normalizes the room catalog.
func (a *App) Rooms(ctx context.Context) ([]booking.Room, error) {
	session, err := a.Session()
	if err != nil {
		return nil, err
	}
	resp, err := a.Client.FetchRooms(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	return booking.NormalizeRooms(resp), nil
}

// Reservations fetches and normalizes the user's bookings.
func (a *App) Reservations(ctx context.Context) ([]booking.Reservation, error) {
	session, err := a.Session()
	if err != nil {
		return nil, err
	}
	resp, err := a.Client.FetchReservations(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return booking.NormalizeReservations(resp), nil
}

// BusyGrid fetches the busy windows of every room for one date and builds
// the availability grid. The per-room fetches are sequential; the grid is
// an interactive view and the room count is small.
func (a *App) BusyGrid(ctx context.Context, date string, rooms []booking.Room) (*calendar.Grid, error) {
	session, err := a.Session()
	if err != nil {
		return nil, err
	}

	busyByRoom := make(map[string][]cosoft.BusyWindow, len(rooms))
	for _, room := range rooms {
		resp, err := a.Client.FetchBusyTimes(ctx, session, room.APIID, date)
		if err != nil {
			// A single room failing to report should not blank the whole
			// grid; its row renders free and the debug log has the cause.
			a.Log.Debug("busytimes fetch failed", zap.String("room", room.Name), zap.Error(err))
			continue
		}
		busyByRoom[room.APIID] = resp.Data
	}

	reservations, err := a.Reservations(ctx)
	if err != nil {
		reservations = nil
	}

	return calendar.BuildGrid(date, rooms, busyByRoom, reservations, timeNow()), nil
}

// Orchestrator builds a batch orchestrator with progress lines on stderr.
func (a *App) Orchestrator() (*booking.Orchestrator, error) {
	pipeline, err := a.Pipeline()
	if err != nil {
		return nil, err
	}
	return &booking.Orchestrator{
		Pipeline: pipeline,
		Catalog:  a.Rooms,
		OnItem: func(index, total int, result booking.Result) {
			status := "ok"
			if !result.Succeeded() {
				status = "failed"
			}
			fmt.Fprintf(a.Stderr, "[%d/%d] %s\n", index, total, status)
		},
	}, nil
}
