package booking

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/coworkcli/cowork/internal/cosoft"
)

var (
	equipmentRe = regexp.MustCompile(`(?i)quipement\s*:\s*([^<]+)`)
	paragraphRe = regexp.MustCompile(`</?p>`)
)

// NormalizeRooms flattens the upstream visited/unvisited split into one
// catalog. Display ids are assigned from the API's own ordering before the
// list is sorted by name, so an id stays stable regardless of how the
// caller presents the list.
func NormalizeRooms(resp *cosoft.RoomsResponse) []Room {
	if resp == nil {
		return nil
	}
	items := make([]cosoft.RoomItem, 0, len(resp.VisitedItems)+len(resp.UnvisitedItems))
	items = append(items, resp.VisitedItems...)
	items = append(items, resp.UnvisitedItems...)

	rooms := make([]Room, 0, len(items))
	for i, item := range items {
		rooms = append(rooms, Room{
			ID:          i + 1,
			APIID:       item.ID,
			Name:        item.Name,
			Capacity:    item.NbUsers,
			HourlyPrice: hourlyPrice(item.Prices),
			Floor:       floorLabel(item.Floor),
			Available:   !item.IsLocked,
			Description: cleanDescription(item.ShortDescription),
			Equipments:  equipmentList(item),
		})
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
	return rooms
}

// FindByName resolves a room by case-insensitive exact name match among
// the available rooms. Locked rooms are invisible to booking.
func FindByName(rooms []Room, name string) (Room, bool) {
	for _, room := range rooms {
		if room.Available && strings.EqualFold(room.Name, name) {
			return room, true
		}
	}
	return Room{}, false
}

// hourlyPrice picks the per-hour tariff out of the price list. The
// upstream data tags it either by duration type or by a French duration
// description, depending on how the space was configured.
func hourlyPrice(prices []cosoft.RoomPrice) string {
	for _, p := range prices {
		if p.DurationType == "hour" || strings.EqualFold(p.Description, "heure") {
			return fmt.Sprintf("%.2f €", p.EuroHT)
		}
	}
	return "N/A"
}

func floorLabel(floor string) string {
	if strings.TrimSpace(floor) == "" {
		return "N/A"
	}
	return floor
}

func cleanDescription(desc string) string {
	return strings.TrimSpace(paragraphRe.ReplaceAllString(desc, ""))
}

// equipmentList prefers the structured field and falls back to scraping
// the "Équipement:" line that some spaces embed in the room description.
func equipmentList(item cosoft.RoomItem) []string {
	if len(item.Equipments) > 0 {
		return item.Equipments
	}
	match := equipmentRe.FindStringSubmatch(item.ShortDescription)
	if match == nil {
		return nil
	}
	var list []string
	for _, part := range strings.Split(match[1], ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
