package ui

import (
	"fmt"
	"strings"

	"github.com/coworkcli/cowork/internal/calendar"
)

const (
	gridRoomWidth = 20
	gridInfoWidth = 12
)

// Slot characters. Own bookings render solid, other bookings hatched,
// free slots stay blank.
const (
	charOwn  = "█"
	charBusy = "="
	charFree = " "
)

// RenderCalendar renders the availability grid for one day: one row per
// room in the room's palette color, one column per quarter-hour slot,
// grouped in hour blocks.
func (s Styles) RenderCalendar(grid *calendar.Grid) string {
	var b strings.Builder

	b.WriteString(s.Heading.Render("Availability for " + grid.Date))
	b.WriteString("\n\n")

	// Hour header.
	b.WriteString(s.Heading.Render(pad("Room", gridRoomWidth)))
	b.WriteString(s.FaintText.Render("│"))
	b.WriteString(s.Heading.Render(pad(" Info", gridInfoWidth)))
	for hour := calendar.OpenHour; hour < calendar.CloseHour; hour++ {
		b.WriteString(s.FaintText.Render("│"))
		b.WriteString(s.Heading.Render(pad(fmt.Sprintf("%02d", hour), calendar.SlotsPerHour)))
	}
	b.WriteString("\n")

	b.WriteString(s.FaintText.Render(strings.Repeat("─", gridRoomWidth) + "┬" + strings.Repeat("─", gridInfoWidth)))
	for hour := calendar.OpenHour; hour < calendar.CloseHour; hour++ {
		b.WriteString(s.FaintText.Render("┼" + strings.Repeat("─", calendar.SlotsPerHour)))
	}
	b.WriteString("\n")

	for _, row := range grid.Rooms {
		roomStyle := s.RoomText(row.Room.ID)
		b.WriteString(roomStyle.Render(pad(truncate(row.Room.Name, gridRoomWidth), gridRoomWidth)))
		b.WriteString(s.FaintText.Render("│"))
		b.WriteString(roomStyle.Render(pad(roomInfo(row), gridInfoWidth)))

		for i, slot := range row.Slots {
			if i%calendar.SlotsPerHour == 0 {
				b.WriteString(s.FaintText.Render("│"))
			}
			b.WriteString(s.renderSlot(slot, roomStyle.Render))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.MutedText.Render(fmt.Sprintf("%s your booking   %s booked   blank free", charOwn, charBusy)))
	b.WriteString("\n")
	return b.String()
}

func (s Styles) renderSlot(slot calendar.Slot, roomRender func(...string) string) string {
	var ch string
	switch slot.State {
	case calendar.SlotOwn:
		ch = charOwn
	case calendar.SlotBusy:
		ch = charBusy
	default:
		ch = charFree
	}
	if slot.Past {
		return s.FaintText.Render(ch)
	}
	if slot.State == calendar.SlotOwn {
		return s.SuccessText.Render(ch)
	}
	if slot.State == calendar.SlotBusy {
		return roomRender(ch)
	}
	return ch
}

func roomInfo(row calendar.RoomRow) string {
	capacity := "?p"
	if row.Room.Capacity > 0 {
		capacity = fmt.Sprintf("%dp", row.Room.Capacity)
	}
	price := "?€"
	if row.Room.HourlyPrice != "N/A" {
		price = strings.ReplaceAll(row.Room.HourlyPrice, " €", "€")
	}
	return capacity + " " + price
}

func pad(text string, width int) string {
	if len([]rune(text)) >= width {
		return text
	}
	return text + strings.Repeat(" ", width-len([]rune(text)))
}
