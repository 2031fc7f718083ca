package ui

import (
	"fmt"
	"strings"

	"github.com/coworkcli/cowork/internal/booking"
)

// Table renderers for the non-interactive commands. All of them return a
// complete string; the caller decides where it goes.

// RenderRooms renders the room catalog.
func (s Styles) RenderRooms(rooms []booking.Room) string {
	var b strings.Builder
	b.WriteString(s.Heading.Render(fmt.Sprintf("%-4s %-24s %-9s %-7s %-12s %s",
		"ID", "Room", "Capacity", "Floor", "Price/hour", "Status")))
	b.WriteString("\n")

	for _, room := range rooms {
		status := s.SuccessText.Render("available")
		if !room.Available {
			status = s.DangerText.Render("locked")
		}
		name := s.RoomText(room.ID).Render(fmt.Sprintf("%-24s", truncate(room.Name, 24)))
		b.WriteString(fmt.Sprintf("%-4d %s %-9d %-7s %-12s %s\n",
			room.ID, name, room.Capacity, room.Floor, room.HourlyPrice, status))
		if len(room.Equipments) > 0 {
			b.WriteString(s.FaintText.Render("     " + strings.Join(room.Equipments, ", ")))
			b.WriteString("\n")
		}
	}
	if len(rooms) == 0 {
		b.WriteString(s.MutedText.Render("No rooms found.\n"))
	}
	return b.String()
}

// RenderReservations renders the user's bookings.
func (s Styles) RenderReservations(reservations []booking.Reservation) string {
	if len(reservations) == 0 {
		return s.MutedText.Render("No upcoming bookings.") + "\n"
	}

	var b strings.Builder
	b.WriteString(s.Heading.Render(fmt.Sprintf("%-38s %-24s %-12s %-15s %s",
		"Booking ID", "Room", "Date", "Time", "Price")))
	b.WriteString("\n")
	for _, res := range reservations {
		b.WriteString(fmt.Sprintf("%-38s %-24s %-12s %-15s %s\n",
			res.ID, truncate(res.Room, 24), res.Date, res.Time, res.Price))
	}
	return b.String()
}

// RenderConfirmation renders one successful booking, warnings included.
func (s Styles) RenderConfirmation(c *booking.Confirmation) string {
	var b strings.Builder
	b.WriteString(s.SuccessText.Render("Booking completed successfully"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Room:  %s\n", c.Room))
	b.WriteString(fmt.Sprintf("  Date:  %s\n", c.Date))
	b.WriteString(fmt.Sprintf("  Time:  %s - %s\n", c.StartTime, c.EndTime))
	b.WriteString(fmt.Sprintf("  Price: %s\n", c.Price))
	for _, warning := range c.Warnings {
		b.WriteString(s.WarningText.Render("  Warning: " + warning))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSummary renders the aggregate outcome of a batch.
func (s Styles) RenderSummary(summary *booking.Summary) string {
	var b strings.Builder
	b.WriteString(s.Heading.Render("Batch summary"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Succeeded: %s\n", s.SuccessText.Render(fmt.Sprintf("%d", summary.Succeeded))))
	b.WriteString(fmt.Sprintf("  Failed:    %s\n", failedCount(s, summary.Failed)))
	if summary.TotalEuro > 0 {
		b.WriteString(fmt.Sprintf("  Total:     %.2f €\n", summary.TotalEuro))
	}

	if summary.Failed > 0 {
		b.WriteString("\n")
		b.WriteString(s.Heading.Render("Failures"))
		b.WriteString("\n")
		for i, result := range summary.Results {
			if result.Succeeded() {
				continue
			}
			b.WriteString(s.DangerText.Render(fmt.Sprintf("  %d. %s", i+1, describeItem(result))))
			b.WriteString("\n")
			b.WriteString(s.MutedText.Render("     " + firstLine(result.Err.Error())))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func failedCount(s Styles, n int) string {
	if n == 0 {
		return s.MutedText.Render("0")
	}
	return s.DangerText.Render(fmt.Sprintf("%d", n))
}

func describeItem(result booking.Result) string {
	if result.BookingID != "" {
		return result.BookingID
	}
	req := result.Request
	return fmt.Sprintf("%s %s %s-%s", req.RoomName, req.Date, req.StartTime, req.EndTime)
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if max <= 1 {
		return text[:max]
	}
	return text[:max-1] + "…"
}
