package cosoft

// Response mirrors for the CoSoft v2 API. Field names follow the remote
// payloads, which mix PascalCase and camelCase; Go's case-insensitive JSON
// matching also covers the lowercase variants some endpoints emit
// ("status", "success").

// AuthResponse mirrors /users/auth and /users/login.
type AuthResponse struct {
	IsAuth  bool   `json:"isAuth"`
	Message string `json:"Message"`
	User    *User  `json:"User"`
}

// User carries the identity fields the CLI cares about.
type User struct {
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
	JwtToken  string `json:"JwtToken"`
}

// DisplayName returns the best available human-readable identity.
func (u *User) DisplayName() string {
	if u == nil {
		return "Unknown user"
	}
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.Email != "" {
		return u.Email
	}
	return "Unknown user"
}

// RoomsResponse mirrors the category items listing. Rooms the user has
// already visited and the rest arrive in two separate arrays.
type RoomsResponse struct {
	VisitedItems   []RoomItem `json:"VisitedItems"`
	UnvisitedItems []RoomItem `json:"UnvisitedItems"`
}

// RoomItem is one bookable room as the API describes it.
type RoomItem struct {
	ID               string      `json:"Id"`
	Name             string      `json:"Name"`
	NbUsers          int         `json:"NbUsers"`
	Floor            string      `json:"Floor"`
	IsLocked         bool        `json:"IsLocked"`
	ShortDescription string      `json:"ShortDescription"`
	Equipments       []string    `json:"Equipments"`
	Prices           []RoomPrice `json:"Prices"`
}

// RoomPrice is one pricing option for a room.
type RoomPrice struct {
	DurationType string  `json:"DurationType"`
	Description  string  `json:"Description"`
	EuroHT       float64 `json:"EuroHT"`
	EuroTTC      float64 `json:"EuroTTC"`
	Credits      float64 `json:"Credits"`
}

// ReservationsResponse mirrors /Reservations/get-current-and-incoming.
type ReservationsResponse struct {
	Data []ReservationItem `json:"data"`
}

// ReservationItem is one existing reservation of the current user.
type ReservationItem struct {
	OrderResourceRentID string            `json:"OrderResourceRentId"`
	ItemID              string            `json:"ItemId"`
	ItemName            string            `json:"ItemName"`
	Start               string            `json:"Start"`
	End                 string            `json:"End"`
	Capacity            int               `json:"Capacity"`
	Prices              *ReservationPrice `json:"Prices"`
}

// ReservationPrice carries the total paid for a reservation.
type ReservationPrice struct {
	EuroTTC float64 `json:"EuroTTC"`
}

// BusyTimesResponse mirrors the per-room busytimes endpoint.
type BusyTimesResponse struct {
	Data []BusyWindow `json:"data"`
}

// BusyWindow is one occupied interval of a room.
type BusyWindow struct {
	ID    string `json:"Id"`
	Start string `json:"Start"`
	End   string `json:"End"`
	Title string `json:"Title"`
}

// CartResponse mirrors the cart-addition endpoint. The interesting signals
// for outcome classification live on the per-item flags, not the top-level
// error fields; see the booking package for the precedence rules.
type CartResponse struct {
	ItemsCategory []CartCategory `json:"ItemsCategory"`
	Total         *CartTotal     `json:"Total"`
	CartHasError  bool           `json:"CartHasError"`
	Error         string         `json:"Error"`
	ErrorMessage  string         `json:"ErrorMessage"`
}

// CartCategory groups cart items by room category.
type CartCategory struct {
	Items []CartItem `json:"Items"`
}

// CartItem is one staged reservation inside the cart.
type CartItem struct {
	ItemName          string `json:"ItemName"`
	HasAlreadyOrdered bool   `json:"HasAlreadyOrdered"`
	DisabledItem      bool   `json:"DisabledItem"`
	InfoMessage       string `json:"InfoMessage"`
	IsBlocked         bool   `json:"IsBlocked"`
	IsUnavailable     bool   `json:"IsUnavailable"`
}

// CartTotal is the computed cart price in both billing units.
type CartTotal struct {
	EuroTTC float64 `json:"EuroTTC"`
	Credits float64 `json:"Credits"`
}

// PaymentResponse mirrors /Payment/pay.
type PaymentResponse struct {
	RedirectURL   string `json:"RedirectUrl"`
	Error         string `json:"Error"`
	ErrorMessage  string `json:"ErrorMessage"`
	Status        string `json:"Status"`
	BookingFailed bool   `json:"BookingFailed"`
	Success       bool   `json:"Success"`
	IsSuccess     bool   `json:"IsSuccess"`
}

// TimeRange is a clock-time window (HH:MM).
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DatedTimes is the redundant date+times form the cart endpoint wants
// alongside the timestamp spans.
type DatedTimes struct {
	Date  string      `json:"date"`
	Times []TimeRange `json:"times"`
}

// SlotSpan is the timestamped form of the reservation window.
type SlotSpan struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Type       string  `json:"type"`
	TimeSlotID *string `json:"timeSlotId"`
	ID         string  `json:"id"`
}

// CartOrder is one reservation intent as both the cart and payment
// endpoints expect it. The same window must be sent twice in different
// shapes; the remote frontend does the same.
type CartOrder struct {
	CoworkingSpaceID string     `json:"coworkingSpaceId"`
	CategoryID       string     `json:"categoryId"`
	ItemID           string     `json:"itemId"`
	DatedTimes       DatedTimes `json:"startenddate_"`
	Spans            []SlotSpan `json:"startenddate"`
	CartID           string     `json:"cartId"`
}

type cartPayload struct {
	Orders []CartOrder `json:"orders"`
}

// paymentPayload wraps an order for /Payment/pay. The identity and billing
// fields must be present but are accepted blank for the credit flow.
type paymentPayload struct {
	IsUser           bool        `json:"isUser"`
	IsPerson         bool        `json:"isPerson"`
	IsVatRequired    bool        `json:"isVatRequired"`
	IsStatusRequired bool        `json:"isStatusRequired"`
	CGV              bool        `json:"cgv"`
	SocietyName      string      `json:"societyname"`
	SocietyVAT       string      `json:"societyvat"`
	SocietySiret     string      `json:"societysiret"`
	SocietyStatus    string      `json:"societystatus"`
	FirstName        string      `json:"firstname"`
	LastName         string      `json:"lastname"`
	Address          string      `json:"address"`
	City             string      `json:"city"`
	ZipCode          string      `json:"zipCode"`
	Phone            string      `json:"phone"`
	Email            string      `json:"email"`
	Cart             []CartOrder `json:"cart"`
	PaymentType      string      `json:"paymentType"`
}

type cancellationPayload struct {
	ID string `json:"Id"`
}

type roomsFilterPayload struct {
	Price any `json:"price"`
}

type busyTimesPayload struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
