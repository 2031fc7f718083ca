package booking

import (
	"fmt"
	"strings"

	"github.com/coworkcli/cowork/internal/cosoft"
)

// The CoSoft API reports failure through several overlapping signals at
// once: per-item flags, top-level error fields, and the computed total. The
// two classify functions below are the single place those signals are
// ranked. Order matters: a response can carry a generic error flag next to
// a specific per-item conflict flag, and the specific, actionable
// classification must always win so the user gets the most useful
// diagnostic. Do not reorder the checks without adjusting the tests.

// infoTimePassed is the info-message sentinel the cart endpoint sets on an
// item whose requested window is already in the past.
const infoTimePassed = "cart.unavailable.passed"

// redirectFailureMarkers is the heuristic for payment redirect targets. The
// API's success contract is informal: a payment that "succeeds" into an
// error page is a failure, and these substrings are the only way to tell.
// Any change here should be mirrored in the classify tests.
var redirectFailureMarkers = []string{"error", "failed", "declined"}

// cartOutcome is what a survivable cart response yields: the display price
// for the confirmation plus any non-fatal warnings.
type cartOutcome struct {
	price    string
	warnings []string
}

const unknownRoomName = "Unknown room"

// classifyCart interprets a cart-addition response. Precedence, first match
// wins: missing response, empty cart, per-item conflict flags, per-item
// disabled flags, generic blocked/empty items, top-level error fields,
// zero total.
func classifyCart(resp *cosoft.CartResponse) (cartOutcome, error) {
	if resp == nil {
		return cartOutcome{}, apiError(nil, "no response received from booking API")
	}

	if len(resp.ItemsCategory) == 0 {
		return cartOutcome{}, &Error{
			Kind:    KindRejectedUnavailable,
			Message: "room could not be added to cart - this usually indicates the room is unavailable or the time slot is invalid",
		}
	}

	var conflicts []string
	var failures []string
	var failureRooms []string
	for _, category := range resp.ItemsCategory {
		for _, item := range category.Items {
			name := item.ItemName
			if name == "" {
				name = unknownRoomName
			}
			switch {
			case item.HasAlreadyOrdered:
				conflicts = append(conflicts, name)
			case item.DisabledItem:
				reason := "the room is currently unavailable"
				if item.InfoMessage == infoTimePassed {
					reason = "the requested time has already passed"
				}
				failures = append(failures, fmt.Sprintf("%s (%s)", name, reason))
				failureRooms = append(failureRooms, name)
			}
		}
	}

	// Scheduling conflicts dominate everything below, including the generic
	// error flags: "already booked" is the most specific diagnosis there is.
	if len(conflicts) > 0 {
		return cartOutcome{}, &Error{
			Kind:    KindSchedulingConflict,
			Message: fmt.Sprintf("scheduling conflict: the room %q is already booked during your requested time slot", strings.Join(conflicts, ", ")),
			Rooms:   conflicts,
		}
	}

	if len(failures) > 0 {
		return cartOutcome{}, &Error{
			Kind:    KindValidationFailure,
			Message: "booking validation failed: " + strings.Join(failures, ", "),
			Rooms:   failureRooms,
		}
	}

	for _, category := range resp.ItemsCategory {
		if len(category.Items) == 0 {
			return cartOutcome{}, rejectedUnavailable()
		}
		for _, item := range category.Items {
			if item.IsBlocked || item.IsUnavailable {
				return cartOutcome{}, rejectedUnavailable()
			}
		}
	}

	if resp.CartHasError || resp.Error != "" || resp.ErrorMessage != "" {
		msg := resp.Error
		if msg == "" {
			msg = resp.ErrorMessage
		}
		if msg == "" {
			msg = "API validation failed"
		}
		return cartOutcome{}, apiError(nil, "booking validation failed: %s", msg)
	}

	outcome := cartOutcome{price: displayPrice(resp.Total)}

	if resp.Total != nil && resp.Total.EuroTTC == 0 && resp.Total.Credits == 0 {
		if !hasBookableItem(resp) {
			return cartOutcome{}, &Error{
				Kind:    KindRejectedUnavailable,
				Message: "booking failed - room appears to be unavailable for the requested time slot",
			}
		}
		outcome.warnings = append(outcome.warnings, "cart total is 0, which may indicate a booking conflict or free booking")
	}

	return outcome, nil
}

// classifyPayment interprets a payment-confirmation response. It returns
// non-fatal warnings for the ambiguous-success case; every other negative
// signal is a classified failure.
func classifyPayment(resp *cosoft.PaymentResponse) ([]string, error) {
	if resp == nil {
		return nil, apiError(nil, "no response received from payment API")
	}

	if resp.Error != "" || resp.ErrorMessage != "" {
		msg := resp.Error
		if msg == "" {
			msg = resp.ErrorMessage
		}
		return nil, apiError(nil, "payment failed: %s", msg)
	}

	if strings.EqualFold(resp.Status, "failed") {
		return nil, &Error{
			Kind:    KindValidationFailure,
			Message: "payment was declined - booking was not completed",
		}
	}

	if resp.BookingFailed {
		return nil, &Error{
			Kind:    KindRejectedUnavailable,
			Message: "booking was rejected during payment processing - likely due to room unavailability",
		}
	}

	if resp.RedirectURL == "" {
		if !resp.Success && !resp.IsSuccess {
			// Ambiguous: no failure signal, but no success signal either.
			// The booking may well exist; tell the caller to verify rather
			// than failing a possibly-created reservation.
			return []string{"payment completed but no redirect URL received - booking status uncertain, verify with my-bookings"}, nil
		}
		return nil, nil
	}

	for _, marker := range redirectFailureMarkers {
		if strings.Contains(resp.RedirectURL, marker) {
			return nil, apiError(nil, "payment was redirected to an error page - booking failed")
		}
	}

	return nil, nil
}

func rejectedUnavailable() *Error {
	return &Error{
		Kind:    KindRejectedUnavailable,
		Message: "room booking was rejected due to unavailability - please try a different time slot or room",
	}
}

func hasBookableItem(resp *cosoft.CartResponse) bool {
	for _, category := range resp.ItemsCategory {
		for _, item := range category.Items {
			if !item.IsBlocked && !item.IsUnavailable {
				return true
			}
		}
	}
	return false
}

// displayPrice formats the cart total for display, preferring the currency
// total over credits. Zero totals fall through to "N/A".
func displayPrice(total *cosoft.CartTotal) string {
	switch {
	case total != nil && total.EuroTTC != 0:
		return fmt.Sprintf("%.2f €", total.EuroTTC)
	case total != nil && total.Credits != 0:
		return fmt.Sprintf("%.2f credits", total.Credits)
	default:
		return "N/A"
	}
}
