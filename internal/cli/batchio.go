package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/coworkcli/cowork/internal/booking"
)

// Batch input loading. Bookings come as a JSON array of request objects;
// cancellations as a JSON array of id strings, an object with a
// "bookingIds" array, or a comma-separated flag value.

func loadBookingBatch(file, jsonStr string) ([]booking.Request, error) {
	raw, source, err := batchBytes(file, jsonStr)
	if err != nil {
		return nil, err
	}
	var reqs []booking.Request
	if err := json.Unmarshal(raw, &reqs); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: batch data must be an array of booking objects", source)
	}
	return reqs, nil
}

func loadCancellationIDs(file, jsonStr, idsFlag string) ([]string, error) {
	if idsFlag != "" {
		var ids []string
		for _, id := range strings.Split(idsFlag, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				ids = append(ids, trimmed)
			}
		}
		return ids, nil
	}

	raw, source, err := batchBytes(file, jsonStr)
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err == nil {
		return ids, nil
	}
	var wrapper struct {
		BookingIDs []string `json:"bookingIds"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.BookingIDs != nil {
		return wrapper.BookingIDs, nil
	}
	return nil, fmt.Errorf("invalid JSON in %s: must be an array of booking IDs or an object with a bookingIds property", source)
}

func batchBytes(file, jsonStr string) ([]byte, string, error) {
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, "", fmt.Errorf("batch file %q: %w", file, err)
		}
		return raw, fmt.Sprintf("batch file %q", file), nil
	}
	return []byte(jsonStr), "batch string", nil
}
