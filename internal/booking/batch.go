package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Result is the outcome of one item in a batch. Exactly one of
// Confirmation and Err is set for bookings; cancellations carry only
// BookingID and Err.
type Result struct {
	Request      Request
	BookingID    string
	Confirmation *Confirmation
	Err          error
}

// Succeeded reports whether the item completed. Items with warnings still
// count as successes.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Summary aggregates a finished batch.
type Summary struct {
	Results   []Result
	Succeeded int
	Failed    int
	// TotalEuro sums the euro-denominated success prices. Credit-priced
	// and unpriced bookings contribute nothing.
	TotalEuro float64
}

// Orchestrator runs batches of bookings or cancellations through a
// Pipeline. Items run strictly sequentially in input order, each isolated:
// one failure never aborts the rest.
type Orchestrator struct {
	Pipeline *Pipeline
	// Catalog fetches the room list once per batch. Batch items resolve
	// rooms against this single snapshot.
	Catalog func(ctx context.Context) ([]Room, error)
	// OnItem, when set, is called after each item with its 1-based
	// position, the batch size, and the item result.
	OnItem func(index, total int, result Result)
}

// BookBatch validates every request up front, then books them one at a
// time. A validation failure anywhere aborts the whole batch before any
// network call. After that point items are isolated; the summary reports
// per-item outcomes.
func (o *Orchestrator) BookBatch(ctx context.Context, reqs []Request) (*Summary, error) {
	if len(reqs) == 0 {
		return nil, InputError([]string{"batch contains no bookings"})
	}
	if err := ValidateBatch(reqs); err != nil {
		return nil, err
	}

	rooms, err := o.Catalog(ctx)
	if err != nil {
		return nil, apiError(err, "failed to fetch rooms: %v", err)
	}

	summary := &Summary{Results: make([]Result, 0, len(reqs))}
	for i, req := range reqs {
		result := Result{Request: req}
		room, ok := FindByName(rooms, req.RoomName)
		if !ok {
			result.Err = &Error{
				Kind:    KindValidationFailure,
				Message: fmt.Sprintf("room %q not found or not available", req.RoomName),
				Rooms:   []string{req.RoomName},
			}
		} else {
			result.Confirmation, result.Err = o.Pipeline.Book(ctx, room, req)
		}
		o.record(summary, i, len(reqs), result)
	}
	return summary, nil
}

// CancelBatch cancels booking ids one at a time with the same isolation
// rules as BookBatch.
func (o *Orchestrator) CancelBatch(ctx context.Context, ids []string) (*Summary, error) {
	if len(ids) == 0 {
		return nil, InputError([]string{"batch contains no booking ids"})
	}
	if err := ValidateIDs(ids); err != nil {
		return nil, err
	}

	summary := &Summary{Results: make([]Result, 0, len(ids))}
	for i, id := range ids {
		result := Result{BookingID: id}
		result.Err = o.Pipeline.Cancel(ctx, id)
		o.record(summary, i, len(ids), result)
	}
	return summary, nil
}

func (o *Orchestrator) record(summary *Summary, index, total int, result Result) {
	summary.Results = append(summary.Results, result)
	if result.Succeeded() {
		summary.Succeeded++
		if result.Confirmation != nil {
			summary.TotalEuro += euroAmount(result.Confirmation.Price)
		}
	} else {
		summary.Failed++
	}
	if o.OnItem != nil {
		o.OnItem(index+1, total, result)
	}
}

// euroAmount extracts the numeric value from a euro-formatted price
// string. Anything else, credit prices included, yields zero.
func euroAmount(price string) float64 {
	if !strings.HasSuffix(price, " €") {
		return 0
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(price, " €"), 64)
	if err != nil {
		return 0
	}
	return value
}
