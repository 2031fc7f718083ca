package booking

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Cancel issues one cancellation call for a booking id. The remote system
// is authoritative on existence, so there is no pre-check; the call either
// completes (success) or fails with an API error.
func (p *Pipeline) Cancel(ctx context.Context, bookingID string) error {
	if strings.TrimSpace(bookingID) == "" {
		return InputError([]string{"booking id must be a non-empty string"})
	}
	if err := p.api.CancelReservation(ctx, p.session, bookingID); err != nil {
		return apiError(err, "cancellation failed: %v", err)
	}
	p.log.Debug("booking cancelled", zap.String("bookingId", bookingID))
	return nil
}
