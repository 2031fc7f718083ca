package protocol

import "encoding/json"

// Message types and error codes of the line-oriented control protocol.
// Every message is one JSON object per line; requests come in on stdin,
// responses and progress events go out on stdout.

const (
	typeRequest  = "request"
	typeResponse = "response"
	typeProgress = "progress"

	statusSuccess = "success"
	statusError   = "error"
)

// Error codes sent to the client.
const (
	codeParseError         = "PARSE_ERROR"
	codeInvalidMessageType = "INVALID_MESSAGE_TYPE"
	codeUnknownCommand     = "UNKNOWN_COMMAND"
	codeMissingParameters  = "MISSING_PARAMETERS"
	codeRoomNotFound       = "ROOM_NOT_FOUND"
	codeFetchError         = "FETCH_ERROR"
	codeBookingError       = "BOOKING_ERROR"
	codeCancellationError  = "CANCELLATION_ERROR"
	codeCalendarError      = "CALENDAR_ERROR"
)

// request is one incoming message. The id is echoed back verbatim on every
// response, so it stays raw JSON; clients may use strings or numbers.
type request struct {
	ID         json.RawMessage `json:"id"`
	Type       string          `json:"type"`
	Command    string          `json:"command"`
	Parameters json.RawMessage `json:"parameters"`
}

type response struct {
	ID     json.RawMessage `json:"id"`
	Type   string          `json:"type"`
	Status string          `json:"status"`
	Result any             `json:"result,omitempty"`
	Error  *errorBody      `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type progressEvent struct {
	ID       json.RawMessage `json:"id"`
	Type     string          `json:"type"`
	Progress progressBody    `json:"progress"`
}

type progressBody struct {
	Message    string `json:"message"`
	Percentage int    `json:"percentage"`
}

// Command parameter shapes.

type bookParams struct {
	RoomName  string `json:"roomName"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type cancelParams struct {
	BookingID string `json:"bookingId"`
}

type dateParams struct {
	Date string `json:"date"`
}

// Result shapes.

type roomResult struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Floor       string `json:"floor"`
	HourlyPrice string `json:"hourlyPrice"`
	Available   bool   `json:"available"`
	Description string `json:"description"`
}

type bookingResult struct {
	ID       string `json:"id"`
	RoomName string `json:"roomName"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Price    string `json:"price"`
}

type confirmationResult struct {
	RoomName  string   `json:"roomName"`
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Price     string   `json:"price"`
	Warnings  []string `json:"warnings,omitempty"`
	Message   string   `json:"message"`
}

type calendarResult struct {
	Date  string             `json:"date"`
	Rooms []calendarRoomData `json:"rooms"`
}

type calendarRoomData struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Capacity  int            `json:"capacity"`
	Floor     string         `json:"floor"`
	Available bool           `json:"available"`
	Slots     []calendarSlot `json:"slots"`
}

type calendarSlot struct {
	Time  string `json:"time"`
	State string `json:"state"`
	Past  bool   `json:"past,omitempty"`
}

// toolDescriptor describes one command for list_tools.
type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

func toolCatalog() []toolDescriptor {
	return []toolDescriptor{
		{
			Name:        "list",
			Description: "List all available meeting rooms",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "book",
			Description: "Book a meeting room",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"roomName":  map[string]any{"type": "string", "description": "Name of the room to book"},
					"date":      map[string]any{"type": "string", "description": "Date in YYYY-MM-DD format"},
					"startTime": map[string]any{"type": "string", "description": "Start time in HH:MM format"},
					"endTime":   map[string]any{"type": "string", "description": "End time in HH:MM format"},
				},
				"required": []string{"roomName", "date", "startTime", "endTime"},
			},
		},
		{
			Name:        "cancel",
			Description: "Cancel a booking by ID",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"bookingId": map[string]any{"type": "string", "description": "ID of the booking to cancel"},
				},
				"required": []string{"bookingId"},
			},
		},
		{
			Name:        "my-bookings",
			Description: "List your current and upcoming bookings",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"date": map[string]any{"type": "string", "description": "Optional date filter in YYYY-MM-DD format"},
				},
			},
		},
		{
			Name:        "calendar",
			Description: "View calendar for a specific date",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"date": map[string]any{"type": "string", "description": "Date in YYYY-MM-DD format (default: today)"},
				},
			},
		},
	}
}
