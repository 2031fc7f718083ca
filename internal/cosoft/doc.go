// Package cosoft provides an HTTP client for the CoSoft coworking API.
//
// # Overview
//
// CoSoft is the white-label booking platform behind the coworking space's
// member site. It has no public API contract; this client speaks the same
// endpoints the web frontend uses, with the same headers, cookies, and
// payload quirks. The package deliberately stops at transport and typed
// response mirrors; interpreting what a cart or payment response *means*
// is the booking package's job.
//
// # Endpoints
//
//   - POST /users/login: email/password, returns JwtToken in the body and
//     the refresh token as a w_auth_refresh cookie
//   - GET  /users/auth: session validity check, returns the user identity
//   - POST /CoworkingSpace/{space}/category/{cat}/items: room listing;
//     requires a {"price": null} body even unfiltered
//   - GET  /Reservations/get-current-and-incoming: the user's reservations
//   - POST /CoworkingSpace/.../item/{id}/busytimes: one room's occupied
//     windows for a date range
//   - POST /Cart/{SkipVisibleFilter}: stage a reservation intent
//   - POST /Payment/pay: confirm the staged cart (credit flow)
//   - POST /Reservation/cancel-order: cancel one reservation
//
// # Quirks worth knowing
//
// Authentication rides in w_auth/w_auth_refresh cookies, not an
// Authorization header. Every endpoint expects a plausible Referer for the
// page a browser would be on. The cart and payment endpoints require the
// reservation window twice in two different shapes (startenddate_ and
// startenddate). The cart path contains literal braces, sent percent-encoded
// exactly as the frontend does. Cart and payment responses can be entirely
// empty on some failures; those surface as a (nil, nil) return so the
// booking layer can classify them.
//
// # Error handling
//
// Transport failures, HTTP >= 400, and undecodable bodies all return
// wrapped errors. The client performs no retries and sets no timeout: a
// booking call must not be abandoned client-side once the remote cart may
// exist, and cancellation/catalog calls follow the same policy for
// uniformity. Callers bound calls with contexts where appropriate.
package cosoft
