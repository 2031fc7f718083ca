// Package calendar builds the per-day availability grid: for each room, a
// timeline of quarter-hour slots over business hours, each marked free,
// busy, or owned by the current user, with past slots flagged separately.
// The package is pure data assembly; rendering belongs to the ui package.
package calendar

import (
	"time"

	"github.com/coworkcli/cowork/internal/booking"
	"github.com/coworkcli/cowork/internal/cosoft"
)

// Business hours of the grid. The remote calendar shows 08:00 through
// 19:00 in fifteen-minute increments.
const (
	OpenHour     = 8
	CloseHour    = 19
	SlotMinutes  = 15
	SlotsPerHour = 60 / SlotMinutes
	SlotCount    = (CloseHour - OpenHour) * SlotsPerHour
)

// SlotState is the occupancy of one grid cell.
type SlotState int

const (
	// SlotFree means nothing overlaps the slot.
	SlotFree SlotState = iota
	// SlotBusy means someone else's reservation covers the slot.
	SlotBusy
	// SlotOwn means one of the current user's reservations covers it.
	SlotOwn
)

// Slot is one quarter-hour cell of a room's timeline.
type Slot struct {
	State SlotState
	// Past marks slots whose start time is already behind the clock on
	// the grid's date. Past slots keep their occupancy state.
	Past bool
	// Title carries the busy window's label when the API provided one.
	Title string
}

// RoomRow is one room's full timeline for the day.
type RoomRow struct {
	Room  booking.Room
	Slots [SlotCount]Slot
}

// Grid is the assembled calendar for one date.
type Grid struct {
	Date  string
	Rooms []RoomRow
}

// Timestamp layouts the busytimes endpoint emits.
var busyLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// BuildGrid assembles the availability grid for one YYYY-MM-DD date.
// busyByRoom maps a room's API id to its busy windows for that date; own
// holds the current user's reservations (any date, filtered here). now
// decides which slots are past; it only matters when the grid's date is
// today.
func BuildGrid(date string, rooms []booking.Room, busyByRoom map[string][]cosoft.BusyWindow, own []booking.Reservation, now time.Time) *Grid {
	grid := &Grid{Date: date, Rooms: make([]RoomRow, 0, len(rooms))}

	isToday := now.Format("2006-01-02") == date
	nowMinutes := now.Hour()*60 + now.Minute()

	for _, room := range rooms {
		row := RoomRow{Room: room}

		for _, window := range busyByRoom[room.APIID] {
			start, okStart := windowMinutes(window.Start, date)
			end, okEnd := windowMinutes(window.End, date)
			if !okStart || !okEnd {
				continue
			}
			title := window.Title
			if title == "" {
				title = "Booked"
			}
			markRange(&row.Slots, start, end, SlotBusy, title)
		}

		for _, res := range own {
			if res.RoomID != room.APIID || res.Date != date {
				continue
			}
			start := res.Start.Hour()*60 + res.Start.Minute()
			end := res.End.Hour()*60 + res.End.Minute()
			markRange(&row.Slots, start, end, SlotOwn, res.Room)
		}

		if isToday {
			for i := range row.Slots {
				if slotStartMinutes(i) < nowMinutes {
					row.Slots[i].Past = true
				}
			}
		}

		grid.Rooms = append(grid.Rooms, row)
	}
	return grid
}

// SlotClock returns the HH:MM start time of a slot index.
func SlotClock(index int) string {
	minutes := slotStartMinutes(index)
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("15:04")
}

func slotStartMinutes(index int) int {
	return OpenHour*60 + index*SlotMinutes
}

// markRange paints [startMinutes, endMinutes) onto the timeline, clamped
// to business hours. Partial overlap rounds outward so a 10:05 booking
// still blocks the 10:00 slot.
func markRange(slots *[SlotCount]Slot, startMinutes, endMinutes int, state SlotState, title string) {
	start := (startMinutes - OpenHour*60) / SlotMinutes
	end := (endMinutes - OpenHour*60 + SlotMinutes - 1) / SlotMinutes
	if start < 0 {
		start = 0
	}
	if end > SlotCount {
		end = SlotCount
	}
	for i := start; i < end; i++ {
		slots[i].State = state
		slots[i].Title = title
	}
}

// windowMinutes parses a busy-window timestamp and returns its
// minutes-since-midnight, rejecting windows on other dates.
func windowMinutes(stamp, date string) (int, bool) {
	for _, layout := range busyLayouts {
		if t, err := time.Parse(layout, stamp); err == nil {
			if t.Format("2006-01-02") != date {
				return 0, false
			}
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}
