package protocol

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coworkcli/cowork/internal/booking"
	"github.com/coworkcli/cowork/internal/calendar"
)

// Server reads line-delimited JSON requests and answers each with a
// response message, interleaved with progress events for the slower
// commands. Requests are handled strictly sequentially; output ordering is
// therefore deterministic per request.
type Server struct {
	// Rooms fetches the normalized room catalog.
	Rooms func(ctx context.Context) ([]booking.Room, error)
	// Reservations fetches the user's normalized reservation list.
	Reservations func(ctx context.Context) ([]booking.Reservation, error)
	// Book runs the booking pipeline for one resolved room.
	Book func(ctx context.Context, room booking.Room, req booking.Request) (*booking.Confirmation, error)
	// Cancel cancels one booking id.
	Cancel func(ctx context.Context, bookingID string) error
	// BusyGrid assembles the availability grid for one date.
	BusyGrid func(ctx context.Context, date string, rooms []booking.Room) (*calendar.Grid, error)
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
	Log *zap.Logger

	out *json.Encoder
}

// Run processes requests from r until EOF or context cancellation,
// writing responses to w. A scan error ends the loop; malformed input
// lines produce PARSE_ERROR responses and do not.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	s.out = json.NewEncoder(w)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.handleLine(ctx, line)
	}
	return scanner.Err()
}

func (s *Server) handleLine(ctx context.Context, line string) {
	var req request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		s.sendError(nil, codeParseError, fmt.Sprintf("Invalid JSON: %v", err))
		return
	}
	if req.Type != typeRequest {
		s.sendError(nil, codeInvalidMessageType, fmt.Sprintf("Unsupported message type: %s", req.Type))
		return
	}

	s.Log.Debug("protocol request", zap.String("command", req.Command))

	switch req.Command {
	case "list_tools":
		s.sendSuccess(req.ID, map[string]any{"tools": toolCatalog()})
	case "list":
		s.handleList(ctx, req)
	case "book":
		s.handleBook(ctx, req)
	case "cancel":
		s.handleCancel(ctx, req)
	case "my-bookings":
		s.handleMyBookings(ctx, req)
	case "calendar":
		s.handleCalendar(ctx, req)
	default:
		s.sendError(req.ID, codeUnknownCommand, fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleList(ctx context.Context, req request) {
	rooms, err := s.Rooms(ctx)
	if err != nil {
		s.sendError(req.ID, codeFetchError, fmt.Sprintf("Failed to fetch rooms: %v", err))
		return
	}
	list := make([]roomResult, 0, len(rooms))
	for _, room := range rooms {
		list = append(list, roomResult{
			ID:          room.ID,
			Name:        room.Name,
			Capacity:    room.Capacity,
			Floor:       room.Floor,
			HourlyPrice: room.HourlyPrice,
			Available:   room.Available,
			Description: room.Description,
		})
	}
	s.sendSuccess(req.ID, map[string]any{"rooms": list})
}

func (s *Server) handleBook(ctx context.Context, req request) {
	var params bookParams
	decodeParams(req.Parameters, &params)
	if params.RoomName == "" || params.Date == "" || params.StartTime == "" || params.EndTime == "" {
		s.sendError(req.ID, codeMissingParameters, "Missing required parameters: roomName, date, startTime, endTime")
		return
	}

	intent := booking.Request{
		RoomName:  params.RoomName,
		Date:      params.Date,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
	}
	if violations := booking.ValidateRequest(intent); len(violations) > 0 {
		s.sendError(req.ID, codeBookingError, "Failed to book room: "+strings.Join(violations, "; "))
		return
	}

	s.sendProgress(req.ID, "Loading available rooms...", 10)
	rooms, err := s.Rooms(ctx)
	if err != nil {
		s.sendError(req.ID, codeBookingError, fmt.Sprintf("Failed to book room: %v", err))
		return
	}
	room, ok := booking.FindByName(rooms, params.RoomName)
	if !ok {
		s.sendError(req.ID, codeRoomNotFound, fmt.Sprintf("Room %q not found or not available", params.RoomName))
		return
	}

	s.sendProgress(req.ID, "Processing booking...", 50)
	confirmation, err := s.Book(ctx, room, intent)
	if err != nil {
		s.sendError(req.ID, codeBookingError, fmt.Sprintf("Failed to book room: %v", err))
		return
	}

	s.sendProgress(req.ID, "Booking confirmed!", 100)
	s.sendSuccess(req.ID, confirmationResult{
		RoomName:  confirmation.Room,
		Date:      confirmation.Date,
		StartTime: confirmation.StartTime,
		EndTime:   confirmation.EndTime,
		Price:     confirmation.Price,
		Warnings:  confirmation.Warnings,
		Message:   "Booking completed successfully",
	})
}

func (s *Server) handleCancel(ctx context.Context, req request) {
	var params cancelParams
	decodeParams(req.Parameters, &params)
	if params.BookingID == "" {
		s.sendError(req.ID, codeMissingParameters, "Missing required parameter: bookingId")
		return
	}

	s.sendProgress(req.ID, "Cancelling booking...", 50)
	if err := s.Cancel(ctx, params.BookingID); err != nil {
		s.sendError(req.ID, codeCancellationError, fmt.Sprintf("Failed to cancel booking: %v", err))
		return
	}
	s.sendSuccess(req.ID, map[string]any{
		"bookingId": params.BookingID,
		"message":   "Booking cancelled successfully",
	})
}

func (s *Server) handleMyBookings(ctx context.Context, req request) {
	var params dateParams
	decodeParams(req.Parameters, &params)

	s.sendProgress(req.ID, "Loading your bookings...", 30)
	reservations, err := s.Reservations(ctx)
	if err != nil {
		s.sendError(req.ID, codeFetchError, fmt.Sprintf("Failed to fetch bookings: %v", err))
		return
	}
	if params.Date != "" {
		reservations = booking.FilterByDate(reservations, params.Date)
	}

	list := make([]bookingResult, 0, len(reservations))
	for _, res := range reservations {
		list = append(list, bookingResult{
			ID:       res.ID,
			RoomName: res.Room,
			Date:     res.Date,
			Time:     res.Time,
			Price:    res.Price,
		})
	}
	s.sendSuccess(req.ID, map[string]any{"bookings": list})
}

func (s *Server) handleCalendar(ctx context.Context, req request) {
	var params dateParams
	decodeParams(req.Parameters, &params)
	date := params.Date
	if date == "" {
		date = s.Now().Format("2006-01-02")
	}
	if !booking.ValidDate(date) {
		s.sendError(req.ID, codeCalendarError, "date must be in YYYY-MM-DD format")
		return
	}

	s.sendProgress(req.ID, "Loading calendar...", 30)
	rooms, err := s.Rooms(ctx)
	if err != nil {
		s.sendError(req.ID, codeCalendarError, fmt.Sprintf("Failed to load calendar: %v", err))
		return
	}

	s.sendProgress(req.ID, "Processing room availability...", 70)
	grid, err := s.BusyGrid(ctx, date, rooms)
	if err != nil {
		s.sendError(req.ID, codeCalendarError, fmt.Sprintf("Failed to load calendar: %v", err))
		return
	}

	result := calendarResult{Date: grid.Date}
	for _, row := range grid.Rooms {
		data := calendarRoomData{
			ID:        row.Room.ID,
			Name:      row.Room.Name,
			Capacity:  row.Room.Capacity,
			Floor:     row.Room.Floor,
			Available: row.Room.Available,
			Slots:     make([]calendarSlot, 0, calendar.SlotCount),
		}
		for i, slot := range row.Slots {
			data.Slots = append(data.Slots, calendarSlot{
				Time:  calendar.SlotClock(i),
				State: slotStateLabel(slot.State),
				Past:  slot.Past,
			})
		}
		result.Rooms = append(result.Rooms, data)
	}
	s.sendSuccess(req.ID, map[string]any{"calendar": result})
}

func slotStateLabel(state calendar.SlotState) string {
	switch state {
	case calendar.SlotBusy:
		return "busy"
	case calendar.SlotOwn:
		return "own"
	default:
		return "free"
	}
}

// decodeParams tolerates absent or malformed parameter objects; the
// per-command required checks produce the client-facing diagnostics.
func decodeParams(raw json.RawMessage, into any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, into)
}

func (s *Server) sendSuccess(id json.RawMessage, result any) {
	s.emit(response{ID: id, Type: typeResponse, Status: statusSuccess, Result: result})
}

func (s *Server) sendError(id json.RawMessage, code, message string) {
	s.emit(response{ID: id, Type: typeResponse, Status: statusError, Error: &errorBody{Code: code, Message: message}})
}

func (s *Server) sendProgress(id json.RawMessage, message string, percentage int) {
	s.emit(progressEvent{ID: id, Type: typeProgress, Progress: progressBody{Message: message, Percentage: percentage}})
}

func (s *Server) emit(msg any) {
	if err := s.out.Encode(msg); err != nil {
		s.Log.Warn("protocol write failed", zap.Error(err))
	}
}
