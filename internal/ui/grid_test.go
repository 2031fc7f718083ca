package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/coworkcli/cowork/internal/booking"
	"github.com/coworkcli/cowork/internal/calendar"
	"github.com/coworkcli/cowork/internal/cosoft"
)

func TestRenderCalendar(t *testing.T) {
	rooms := []booking.Room{
		{ID: 1, APIID: "api-a", Name: "Salle A", Capacity: 4, HourlyPrice: "10.00 €"},
	}
	busy := map[string][]cosoft.BusyWindow{
		"api-a": {{Start: "2026-09-15T10:00:00", End: "2026-09-15T11:00:00"}},
	}
	grid := calendar.BuildGrid("2026-09-15", rooms, busy, nil,
		time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC))

	out := testStyles().RenderCalendar(grid)
	if !strings.Contains(out, "Availability for 2026-09-15") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "Salle A") {
		t.Fatalf("missing room row:\n%s", out)
	}
	if !strings.Contains(out, "4p 10.00€") {
		t.Fatalf("missing room info cell:\n%s", out)
	}
	// The 10:00-11:00 block renders as four busy markers.
	if !strings.Contains(out, charBusy) {
		t.Fatalf("missing busy markers:\n%s", out)
	}
	// Hour header covers business hours.
	for _, hour := range []string{"08", "12", "18"} {
		if !strings.Contains(out, hour) {
			t.Fatalf("missing hour %s in header:\n%s", hour, out)
		}
	}
}

func TestRoomInfoFallbacks(t *testing.T) {
	row := calendar.RoomRow{Room: booking.Room{HourlyPrice: "N/A"}}
	if got := roomInfo(row); got != "?p ?€" {
		t.Fatalf("roomInfo = %q, want %q", got, "?p ?€")
	}
}
