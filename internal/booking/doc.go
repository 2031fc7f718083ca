// Package booking implements the reservation workflow on top of the raw
// CoSoft client: request validation, room catalog normalization, the
// two-phase cart/payment pipeline, response classification, cancellation,
// and batch orchestration.
//
// The flow for one booking is:
//
//  1. Validate the request shape locally (ValidateRequest). Nothing
//     touches the network until the request is well-formed.
//  2. Resolve the room name against the normalized catalog (FindByName).
//  3. Stage the reservation in a cart and classify the response
//     (Pipeline.Book, classifyCart). The cart response is where the API
//     reports conflicts, disabled rooms, and unavailability.
//  4. Confirm with a credit payment and classify that response
//     (classifyPayment). Payment failures after a clean cart are rarer
//     but real: declines, late rejections, error-page redirects.
//
// Failures are *Error values with a Kind the caller can branch on.
// Warnings (zero cart total, ambiguous payment success) ride on the
// Confirmation instead of failing the booking.
//
// Batches run through Orchestrator: all-or-nothing validation up front,
// then strictly sequential execution with per-item isolation and an
// aggregate Summary.
package booking
