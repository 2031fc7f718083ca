package booking

import "time"

// Request is one booking intent prior to submission. Field names match the
// JSON batch-file format.
type Request struct {
	RoomName  string `json:"roomName" validate:"required"`
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"startTime" validate:"required,clocktime"`
	EndTime   string `json:"endTime" validate:"required,clocktime"`
}

// Confirmation is the structured result of a successful booking. Warnings
// carry non-fatal signals (zero cart total, silent payment success) the
// caller should surface without treating the booking as failed.
type Confirmation struct {
	Room      string   `json:"room"`
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Price     string   `json:"price"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Room is a normalized catalog entry. ID is a local sequence number used
// for display and coloring; APIID is the remote identifier every endpoint
// expects.
type Room struct {
	ID          int
	APIID       string
	Name        string
	Capacity    int
	HourlyPrice string
	Floor       string
	Available   bool
	Description string
	Equipments  []string
}

// Reservation is a normalized existing booking of the current user.
type Reservation struct {
	ID       string
	RoomID   string
	Room     string
	Start    time.Time
	End      time.Time
	Date     string // YYYY-MM-DD, for display and filtering
	Time     string // "HH:MM - HH:MM"
	Price    string
	Capacity int
}
