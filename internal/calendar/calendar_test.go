package calendar

import (
	"testing"
	"time"

	"github.com/coworkcli/cowork/internal/booking"
	"github.com/coworkcli/cowork/internal/cosoft"
)

func testRooms() []booking.Room {
	return []booking.Room{
		{ID: 1, APIID: "api-a", Name: "Salle A"},
		{ID: 2, APIID: "api-b", Name: "Salle B"},
	}
}

func futureNow(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
}

func TestBuildGridMarksBusySlots(t *testing.T) {
	busy := map[string][]cosoft.BusyWindow{
		"api-a": {{Start: "2026-09-15T10:00:00", End: "2026-09-15T11:30:00", Title: "Standup"}},
	}

	grid := BuildGrid("2026-09-15", testRooms(), busy, nil, futureNow(t))
	if len(grid.Rooms) != 2 {
		t.Fatalf("len(grid.Rooms) = %d, want 2", len(grid.Rooms))
	}

	row := grid.Rooms[0]
	// 10:00 is slot 8, 11:30 is slot 14; [8, 14) busy.
	for i := 0; i < SlotCount; i++ {
		want := SlotFree
		if i >= 8 && i < 14 {
			want = SlotBusy
		}
		if row.Slots[i].State != want {
			t.Fatalf("slot %d (%s) state = %d, want %d", i, SlotClock(i), row.Slots[i].State, want)
		}
	}
	if got := row.Slots[8].Title; got != "Standup" {
		t.Fatalf("slot title = %q, want %q", got, "Standup")
	}

	// The other room is untouched.
	for i, slot := range grid.Rooms[1].Slots {
		if slot.State != SlotFree {
			t.Fatalf("room B slot %d state = %d, want free", i, slot.State)
		}
	}
}

func TestBuildGridPartialOverlapRoundsOutward(t *testing.T) {
	busy := map[string][]cosoft.BusyWindow{
		"api-a": {{Start: "2026-09-15T10:05:00", End: "2026-09-15T10:20:00"}},
	}

	grid := BuildGrid("2026-09-15", testRooms()[:1], busy, nil, futureNow(t))
	row := grid.Rooms[0]
	// 10:05-10:20 touches the 10:00 and 10:15 slots.
	if row.Slots[8].State != SlotBusy || row.Slots[9].State != SlotBusy {
		t.Fatalf("slots 8,9 = %d,%d, want both busy", row.Slots[8].State, row.Slots[9].State)
	}
	if row.Slots[10].State != SlotFree {
		t.Fatalf("slot 10 = %d, want free", row.Slots[10].State)
	}
}

func TestBuildGridOwnBookingsOverrideBusy(t *testing.T) {
	busy := map[string][]cosoft.BusyWindow{
		"api-a": {{Start: "2026-09-15T09:00:00", End: "2026-09-15T10:00:00"}},
	}
	own := []booking.Reservation{{
		RoomID: "api-a",
		Room:   "Salle A",
		Date:   "2026-09-15",
		Start:  time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
	}}

	grid := BuildGrid("2026-09-15", testRooms()[:1], busy, own, futureNow(t))
	row := grid.Rooms[0]
	for i := 4; i < 8; i++ {
		if row.Slots[i].State != SlotOwn {
			t.Fatalf("slot %d state = %d, want own", i, row.Slots[i].State)
		}
	}
}

func TestBuildGridOwnBookingOtherDateIgnored(t *testing.T) {
	own := []booking.Reservation{{
		RoomID: "api-a",
		Date:   "2026-09-16",
		Start:  time.Date(2026, 9, 16, 9, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC),
	}}

	grid := BuildGrid("2026-09-15", testRooms()[:1], nil, own, futureNow(t))
	for i, slot := range grid.Rooms[0].Slots {
		if slot.State != SlotFree {
			t.Fatalf("slot %d state = %d, want free", i, slot.State)
		}
	}
}

func TestBuildGridPastSlotsOnlyToday(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 10, 0, 0, time.UTC)

	grid := BuildGrid("2026-09-15", testRooms()[:1], nil, nil, now)
	row := grid.Rooms[0]
	// Slots starting before 10:10: indices 0..8 (10:00 starts before 10:10).
	if !row.Slots[8].Past {
		t.Fatal("slot 8 (10:00) not marked past")
	}
	if row.Slots[9].Past {
		t.Fatal("slot 9 (10:15) marked past")
	}

	tomorrow := BuildGrid("2026-09-16", testRooms()[:1], nil, nil, now)
	for i, slot := range tomorrow.Rooms[0].Slots {
		if slot.Past {
			t.Fatalf("slot %d marked past on a future date", i)
		}
	}
}

func TestBuildGridIgnoresWindowsOnOtherDates(t *testing.T) {
	busy := map[string][]cosoft.BusyWindow{
		"api-a": {{Start: "2026-09-14T10:00:00", End: "2026-09-14T11:00:00"}},
	}

	grid := BuildGrid("2026-09-15", testRooms()[:1], busy, nil, futureNow(t))
	for i, slot := range grid.Rooms[0].Slots {
		if slot.State != SlotFree {
			t.Fatalf("slot %d state = %d, want free", i, slot.State)
		}
	}
}

func TestSlotClock(t *testing.T) {
	cases := []struct {
		index int
		want  string
	}{
		{0, "08:00"},
		{1, "08:15"},
		{4, "09:00"},
		{SlotCount - 1, "18:45"},
	}
	for _, tc := range cases {
		if got := SlotClock(tc.index); got != tc.want {
			t.Fatalf("SlotClock(%d) = %q, want %q", tc.index, got, tc.want)
		}
	}
}
