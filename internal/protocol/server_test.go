package protocol

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/coworkcli/cowork/internal/booking"
	"github.com/coworkcli/cowork/internal/calendar"
)

type message struct {
	ID     json.RawMessage `json:"id"`
	Type   string          `json:"type"`
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
	Error  *errorBody      `json:"error"`
	// progress events
	Progress *progressBody `json:"progress"`
}

func runServer(t *testing.T, srv *Server, input string) []message {
	t.Helper()

	var out bytes.Buffer
	if err := srv.Run(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	var messages []message
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var msg message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			t.Fatalf("output line %q is not valid JSON: %v", line, err)
		}
		messages = append(messages, msg)
	}
	return messages
}

func testServer() *Server {
	rooms := []booking.Room{
		{ID: 1, APIID: "api-a", Name: "Salle A", Capacity: 4, Floor: "1", HourlyPrice: "10.00 €", Available: true},
	}
	return &Server{
		Rooms: func(ctx context.Context) ([]booking.Room, error) {
			return rooms, nil
		},
		Reservations: func(ctx context.Context) ([]booking.Reservation, error) {
			return []booking.Reservation{
				{ID: "bkg-1", Room: "Salle A", Date: "2026-09-15", Time: "09:00 - 10:00", Price: "10.00 €"},
				{ID: "bkg-2", Room: "Salle A", Date: "2026-09-16", Time: "11:00 - 12:00", Price: "10.00 €"},
			}, nil
		},
		Book: func(ctx context.Context, room booking.Room, req booking.Request) (*booking.Confirmation, error) {
			return &booking.Confirmation{
				Room:      room.Name,
				Date:      req.Date,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
				Price:     "10.00 €",
			}, nil
		},
		Cancel: func(ctx context.Context, bookingID string) error {
			return nil
		},
		BusyGrid: func(ctx context.Context, date string, rooms []booking.Room) (*calendar.Grid, error) {
			return calendar.BuildGrid(date, rooms, nil, nil, time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)), nil
		},
	}
}

func TestServer_ParseError(t *testing.T) {
	msgs := runServer(t, testServer(), "not json\n")
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Status != "error" || msgs[0].Error.Code != "PARSE_ERROR" {
		t.Fatalf("message = %+v, want PARSE_ERROR", msgs[0])
	}
	if string(msgs[0].ID) != "null" {
		t.Fatalf("id = %s, want null", msgs[0].ID)
	}
}

func TestServer_InvalidMessageType(t *testing.T) {
	msgs := runServer(t, testServer(), `{"id":"1","type":"notify","command":"list"}`+"\n")
	if len(msgs) != 1 || msgs[0].Error.Code != "INVALID_MESSAGE_TYPE" {
		t.Fatalf("messages = %+v, want INVALID_MESSAGE_TYPE", msgs)
	}
}

func TestServer_UnknownCommand(t *testing.T) {
	msgs := runServer(t, testServer(), `{"id":"7","type":"request","command":"frobnicate"}`+"\n")
	if len(msgs) != 1 || msgs[0].Error.Code != "UNKNOWN_COMMAND" {
		t.Fatalf("messages = %+v, want UNKNOWN_COMMAND", msgs)
	}
	if string(msgs[0].ID) != `"7"` {
		t.Fatalf("id = %s, want \"7\"", msgs[0].ID)
	}
}

func TestServer_ListTools(t *testing.T) {
	msgs := runServer(t, testServer(), `{"id":"1","type":"request","command":"list_tools"}`+"\n")
	if len(msgs) != 1 || msgs[0].Status != "success" {
		t.Fatalf("messages = %+v, want one success", msgs)
	}
	var result struct {
		Tools []toolDescriptor `json:"tools"`
	}
	if err := json.Unmarshal(msgs[0].Result, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(result.Tools) != 5 {
		t.Fatalf("len(tools) = %d, want 5", len(result.Tools))
	}
}

func TestServer_ListRooms(t *testing.T) {
	msgs := runServer(t, testServer(), `{"id":"1","type":"request","command":"list"}`+"\n")
	if len(msgs) != 1 || msgs[0].Status != "success" {
		t.Fatalf("messages = %+v, want one success", msgs)
	}
	var result struct {
		Rooms []roomResult `json:"rooms"`
	}
	if err := json.Unmarshal(msgs[0].Result, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(result.Rooms) != 1 || result.Rooms[0].Name != "Salle A" {
		t.Fatalf("rooms = %+v, want Salle A", result.Rooms)
	}
}

func TestServer_BookHappyPath(t *testing.T) {
	input := `{"id":"b1","type":"request","command":"book","parameters":{"roomName":"salle a","date":"2026-09-15","startTime":"09:00","endTime":"10:00"}}` + "\n"
	msgs := runServer(t, testServer(), input)

	// Two progress events before the booking starts, one after, then the
	// response.
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	for i, want := range []int{10, 50, 100} {
		if msgs[i].Type != "progress" || msgs[i].Progress.Percentage != want {
			t.Fatalf("message %d = %+v, want progress %d%%", i, msgs[i], want)
		}
	}
	final := msgs[3]
	if final.Status != "success" {
		t.Fatalf("final = %+v, want success", final)
	}
	var result confirmationResult
	if err := json.Unmarshal(final.Result, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.RoomName != "Salle A" || result.Price != "10.00 €" {
		t.Fatalf("result = %+v", result)
	}
}

func TestServer_BookMissingParameters(t *testing.T) {
	input := `{"id":"b1","type":"request","command":"book","parameters":{"roomName":"Salle A"}}` + "\n"
	msgs := runServer(t, testServer(), input)
	if len(msgs) != 1 || msgs[0].Error.Code != "MISSING_PARAMETERS" {
		t.Fatalf("messages = %+v, want MISSING_PARAMETERS", msgs)
	}
}

func TestServer_BookRoomNotFound(t *testing.T) {
	input := `{"id":"b1","type":"request","command":"book","parameters":{"roomName":"Salle Z","date":"2026-09-15","startTime":"09:00","endTime":"10:00"}}` + "\n"
	msgs := runServer(t, testServer(), input)
	final := msgs[len(msgs)-1]
	if final.Error == nil || final.Error.Code != "ROOM_NOT_FOUND" {
		t.Fatalf("final = %+v, want ROOM_NOT_FOUND", final)
	}
}

func TestServer_BookClassifiedFailure(t *testing.T) {
	srv := testServer()
	srv.Book = func(ctx context.Context, room booking.Room, req booking.Request) (*booking.Confirmation, error) {
		return nil, &booking.Error{
			Kind:    booking.KindSchedulingConflict,
			Message: `scheduling conflict: the room "Salle A" is already booked during your requested time slot`,
		}
	}
	input := `{"id":"b1","type":"request","command":"book","parameters":{"roomName":"Salle A","date":"2026-09-15","startTime":"09:00","endTime":"10:00"}}` + "\n"
	msgs := runServer(t, srv, input)
	final := msgs[len(msgs)-1]
	if final.Error == nil || final.Error.Code != "BOOKING_ERROR" {
		t.Fatalf("final = %+v, want BOOKING_ERROR", final)
	}
	if !strings.Contains(final.Error.Message, "scheduling conflict") {
		t.Fatalf("message = %q, want scheduling conflict detail", final.Error.Message)
	}
}

func TestServer_CancelHappyPath(t *testing.T) {
	input := `{"id":"c1","type":"request","command":"cancel","parameters":{"bookingId":"bkg-1"}}` + "\n"
	msgs := runServer(t, testServer(), input)
	final := msgs[len(msgs)-1]
	if final.Status != "success" {
		t.Fatalf("final = %+v, want success", final)
	}
}

func TestServer_CancelFailure(t *testing.T) {
	srv := testServer()
	srv.Cancel = func(ctx context.Context, bookingID string) error {
		return errors.New("api request failed: 500 Internal Server Error")
	}
	input := `{"id":"c1","type":"request","command":"cancel","parameters":{"bookingId":"bkg-1"}}` + "\n"
	msgs := runServer(t, srv, input)
	final := msgs[len(msgs)-1]
	if final.Error == nil || final.Error.Code != "CANCELLATION_ERROR" {
		t.Fatalf("final = %+v, want CANCELLATION_ERROR", final)
	}
}

func TestServer_MyBookingsDateFilter(t *testing.T) {
	input := `{"id":"m1","type":"request","command":"my-bookings","parameters":{"date":"2026-09-15"}}` + "\n"
	msgs := runServer(t, testServer(), input)
	final := msgs[len(msgs)-1]
	var result struct {
		Bookings []bookingResult `json:"bookings"`
	}
	if err := json.Unmarshal(final.Result, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(result.Bookings) != 1 || result.Bookings[0].ID != "bkg-1" {
		t.Fatalf("bookings = %+v, want only bkg-1", result.Bookings)
	}
}

func TestServer_CalendarDefaultsToToday(t *testing.T) {
	srv := testServer()
	srv.Now = func() time.Time {
		return time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	}
	input := `{"id":"cal1","type":"request","command":"calendar"}` + "\n"
	msgs := runServer(t, srv, input)
	final := msgs[len(msgs)-1]
	var result struct {
		Calendar calendarResult `json:"calendar"`
	}
	if err := json.Unmarshal(final.Result, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Calendar.Date != "2026-09-15" {
		t.Fatalf("date = %q, want 2026-09-15", result.Calendar.Date)
	}
	if len(result.Calendar.Rooms) != 1 || len(result.Calendar.Rooms[0].Slots) != calendar.SlotCount {
		t.Fatalf("calendar rooms = %+v, want one room with full slot grid", result.Calendar.Rooms)
	}
}

func TestServer_CalendarRejectsMalformedDate(t *testing.T) {
	srv := testServer()
	fetched := false
	srv.Rooms = func(ctx context.Context) ([]booking.Room, error) {
		fetched = true
		return nil, nil
	}
	input := `{"id":"cal1","type":"request","command":"calendar","parameters":{"date":"15/09/2026"}}` + "\n"
	msgs := runServer(t, srv, input)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Error == nil || msgs[0].Error.Code != "CALENDAR_ERROR" {
		t.Fatalf("message = %+v, want CALENDAR_ERROR", msgs[0])
	}
	if got, want := msgs[0].Error.Message, "date must be in YYYY-MM-DD format"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
	if fetched {
		t.Fatal("rooms fetched for a malformed date")
	}
}

func TestServer_SkipsBlankLinesAndContinuesAfterErrors(t *testing.T) {
	input := "\nnot json\n" + `{"id":"1","type":"request","command":"list"}` + "\n"
	msgs := runServer(t, testServer(), input)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Error == nil || msgs[0].Error.Code != "PARSE_ERROR" {
		t.Fatalf("first = %+v, want PARSE_ERROR", msgs[0])
	}
	if msgs[1].Status != "success" {
		t.Fatalf("second = %+v, want success", msgs[1])
	}
}
