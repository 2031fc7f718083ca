// Package protocol implements the line-oriented JSON control protocol that
// exposes the booking operations to external tools over stdin/stdout.
//
// # Wire Format
//
// One JSON object per line, both directions. Requests:
//
//	{"id": "1", "type": "request", "command": "book", "parameters": {...}}
//
// Responses echo the request id verbatim:
//
//	{"id": "1", "type": "response", "status": "success", "result": {...}}
//	{"id": "1", "type": "response", "status": "error",
//	 "error": {"code": "ROOM_NOT_FOUND", "message": "..."}}
//
// Long-running commands additionally emit progress events before their
// final response:
//
//	{"id": "1", "type": "progress",
//	 "progress": {"message": "Processing booking...", "percentage": 50}}
//
// # Commands
//
//   - list_tools: describe the available commands and their parameters
//   - list: the room catalog
//   - book: one booking (roomName, date, startTime, endTime)
//   - cancel: one cancellation (bookingId)
//   - my-bookings: the user's reservations, optionally filtered by date
//   - calendar: the per-room availability grid for one date
//
// # Error Handling
//
// Lines that are not valid JSON get a PARSE_ERROR response with a null id;
// they never terminate the loop. Unknown commands get UNKNOWN_COMMAND,
// absent required parameters MISSING_PARAMETERS. Command execution
// failures map to per-command codes (FETCH_ERROR, BOOKING_ERROR,
// CANCELLATION_ERROR, CALENDAR_ERROR, ROOM_NOT_FOUND) with the classified
// failure message from the booking core as the message text.
//
// Requests are handled one at a time in arrival order, so a client can
// correlate responses positionally as well as by id.
package protocol
