package booking

import (
	"fmt"
	"sort"
	"time"

	"github.com/coworkcli/cowork/internal/cosoft"
)

// Timestamp layouts seen in reservation payloads. The API usually emits
// RFC 3339 but drops the zone suffix on some deployments.
var reservationLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// NormalizeReservations converts the raw reservation list into display
// form, sorted by start time. Entries whose timestamps do not parse are
// kept with zero times rather than dropped; a weird row is still a row
// the user may want to cancel.
func NormalizeReservations(resp *cosoft.ReservationsResponse) []Reservation {
	if resp == nil {
		return nil
	}
	reservations := make([]Reservation, 0, len(resp.Data))
	for _, item := range resp.Data {
		start := parseReservationTime(item.Start)
		end := parseReservationTime(item.End)
		res := Reservation{
			ID:       item.OrderResourceRentID,
			RoomID:   item.ItemID,
			Room:     item.ItemName,
			Start:    start,
			End:      end,
			Price:    reservationPrice(item.Prices),
			Capacity: item.Capacity,
		}
		if !start.IsZero() {
			res.Date = start.Format("2006-01-02")
		}
		if !start.IsZero() && !end.IsZero() {
			res.Time = start.Format("15:04") + " - " + end.Format("15:04")
		}
		reservations = append(reservations, res)
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].Start.Before(reservations[j].Start)
	})
	return reservations
}

// FilterByDate keeps only the reservations on one YYYY-MM-DD day.
func FilterByDate(reservations []Reservation, date string) []Reservation {
	var filtered []Reservation
	for _, res := range reservations {
		if res.Date == date {
			filtered = append(filtered, res)
		}
	}
	return filtered
}

func parseReservationTime(stamp string) time.Time {
	for _, layout := range reservationLayouts {
		if t, err := time.Parse(layout, stamp); err == nil {
			return t
		}
	}
	return time.Time{}
}

func reservationPrice(prices *cosoft.ReservationPrice) string {
	if prices == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f €", prices.EuroTTC)
}
