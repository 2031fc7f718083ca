package cosoft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coworkcli/cowork/internal/auth"
)

// ReservationAPI defines the remote surface the booking core consumes.
// This interface is implemented by *Client and can be used for testing.
type ReservationAPI interface {
	FetchRooms(ctx context.Context, session auth.Session) (*RoomsResponse, error)
	FetchReservations(ctx context.Context, session auth.Session) (*ReservationsResponse, error)
	SubmitCart(ctx context.Context, session auth.Session, order CartOrder) (*CartResponse, error)
	SubmitPayment(ctx context.Context, session auth.Session, order CartOrder) (*PaymentResponse, error)
	CancelReservation(ctx context.Context, session auth.Session, bookingID string) error
	NewOrder(itemID, date, startTime, endTime, cartID string) CartOrder
}

// Ensure Client implements ReservationAPI at compile time.
var _ ReservationAPI = (*Client)(nil)

// Client talks to the CoSoft v2 HTTP API. All calls take an explicit
// session; the client never acquires or refreshes credentials itself.
type Client struct {
	base       string
	spaceID    string
	categoryID string
	http       *http.Client
	userAgent  string
	log        *zap.Logger
}

const defaultUserAgent = "cowork/0.1"

// NewClient builds a Client for the given instance. No request timeout is
// set: booking calls are never retried, and phase two must not be abandoned
// while phase one's cart may already exist remotely.
func NewClient(baseURL, spaceID, categoryID string, log *zap.Logger) (*Client, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:       base,
		spaceID:    spaceID,
		categoryID: categoryID,
		http:       &http.Client{},
		userAgent:  defaultUserAgent,
		log:        log,
	}, nil
}

// Login authenticates with email and password, returning the session token
// pair. The auth token arrives in the response body, the refresh token as a
// w_auth_refresh cookie.
func (c *Client) Login(ctx context.Context, email, password string) (auth.Session, *User, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	payload, err := json.Marshal(body)
	if err != nil {
		return auth.Session{}, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/users/login"), bytes.NewReader(payload))
	if err != nil {
		return auth.Session{}, nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req, auth.Session{}, "/v2/login")

	resp, err := c.http.Do(req)
	if err != nil {
		return auth.Session{}, nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return auth.Session{}, nil, fmt.Errorf("authentication failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var decoded AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return auth.Session{}, nil, fmt.Errorf("decode login response: %w", err)
	}
	if !decoded.IsAuth || decoded.User == nil || decoded.User.JwtToken == "" {
		msg := decoded.Message
		if msg == "" {
			msg = "authentication failed"
		}
		return auth.Session{}, nil, fmt.Errorf("%s", msg)
	}

	refresh := ""
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "w_auth_refresh" {
			refresh = cookie.Value
		}
	}

	session := auth.Session{Token: decoded.User.JwtToken, Refresh: refresh}
	return session, decoded.User, nil
}

// CheckAuth verifies the stored session is still accepted by the API and
// returns the authenticated user.
func (c *Client) CheckAuth(ctx context.Context, session auth.Session) (*User, error) {
	raw, err := c.do(ctx, session, http.MethodGet, c.endpoint("/users/auth"), "/v2/", nil)
	if err != nil {
		return nil, err
	}
	var decoded AuthResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if !decoded.IsAuth {
		return nil, fmt.Errorf("invalid authentication response")
	}
	return decoded.User, nil
}

// FetchRooms retrieves the raw room listing for the configured category.
func (c *Client) FetchRooms(ctx context.Context, session auth.Session) (*RoomsResponse, error) {
	endpoint := c.endpoint(fmt.Sprintf("/CoworkingSpace/%s/category/%s/items?price=null", c.spaceID, c.categoryID))
	referer := fmt.Sprintf("/v2/new-reservation/%s/%s", c.spaceID, c.categoryID)

	// The endpoint requires a {"price": null} body even without a filter.
	raw, err := c.do(ctx, session, http.MethodPost, endpoint, referer, roomsFilterPayload{Price: nil})
	if err != nil {
		return nil, err
	}
	var decoded RoomsResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode rooms response: %w", err)
	}
	return &decoded, nil
}

// FetchReservations retrieves the user's current and upcoming reservations.
func (c *Client) FetchReservations(ctx context.Context, session auth.Session) (*ReservationsResponse, error) {
	endpoint := c.endpoint("/Reservations/get-current-and-incoming?PerPage=100&Page=1")
	raw, err := c.do(ctx, session, http.MethodGet, endpoint, "/v2/my-reservations", nil)
	if err != nil {
		return nil, err
	}
	var decoded ReservationsResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode reservations response: %w", err)
	}
	return &decoded, nil
}

// FetchBusyTimes retrieves the occupied windows of one room on one day
// (date in YYYY-MM-DD form).
func (c *Client) FetchBusyTimes(ctx context.Context, session auth.Session, itemID, date string) (*BusyTimesResponse, error) {
	endpoint := c.endpoint(fmt.Sprintf("/CoworkingSpace/%s/category/%s/item/%s/busytimes", c.spaceID, c.categoryID, itemID))
	referer := fmt.Sprintf("/v2/new-reservation/%s/%s/%s", c.spaceID, c.categoryID, itemID)

	body := busyTimesPayload{
		StartDate: date + "T00:00:00",
		EndDate:   date + "T23:59:00",
	}
	raw, err := c.do(ctx, session, http.MethodPost, endpoint, referer, body)
	if err != nil {
		return nil, err
	}
	var decoded BusyTimesResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode busytimes response: %w", err)
	}
	return &decoded, nil
}

// SubmitCart stages one reservation intent remotely. A nil response with a
// nil error means the endpoint answered with an empty body; classification
// of that case belongs to the booking package.
func (c *Client) SubmitCart(ctx context.Context, session auth.Session, order CartOrder) (*CartResponse, error) {
	// The literal braces in the path are sent escaped, as the frontend does.
	endpoint := c.endpoint("/Cart/%7BSkipVisibleFilter%7D")
	referer := fmt.Sprintf("/v2/new-reservation/%s/%s/%s", c.spaceID, c.categoryID, order.ItemID)

	raw, err := c.do(ctx, session, http.MethodPost, endpoint, referer, cartPayload{Orders: []CartOrder{order}})
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var decoded CartResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode cart response: %w", err)
	}
	return &decoded, nil
}

// SubmitPayment confirms a staged cart with the credit payment flow. As with
// SubmitCart, an empty response body yields (nil, nil).
func (c *Client) SubmitPayment(ctx context.Context, session auth.Session, order CartOrder) (*PaymentResponse, error) {
	body := paymentPayload{
		IsUser:           true,
		IsPerson:         true,
		IsVatRequired:    true,
		IsStatusRequired: true,
		CGV:              true,
		Cart:             []CartOrder{order},
		PaymentType:      "credit",
	}

	raw, err := c.do(ctx, session, http.MethodPost, c.endpoint("/Payment/pay"), "/v2/cart/validate", body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var decoded PaymentResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}
	return &decoded, nil
}

// CancelReservation cancels one reservation by id. The endpoint returns no
// structured payload; success is the call completing without a transport or
// HTTP error.
func (c *Client) CancelReservation(ctx context.Context, session auth.Session, bookingID string) error {
	endpoint := c.endpoint("/Reservation/cancel-order")
	_, err := c.do(ctx, session, http.MethodPost, endpoint, "/v2/my-reservations", cancellationPayload{ID: bookingID})
	return err
}

// NewOrder assembles a CartOrder for one room/date/time window. The window
// is sent twice in the shapes the API wants; the span id is a fresh UUID as
// the frontend generates per selected slot.
func (c *Client) NewOrder(itemID, date, startTime, endTime, cartID string) CartOrder {
	startStamp := date + "T" + startTime + ":00"
	endStamp := date + "T" + endTime + ":00"
	return CartOrder{
		CoworkingSpaceID: c.spaceID,
		CategoryID:       c.categoryID,
		ItemID:           itemID,
		DatedTimes: DatedTimes{
			Date:  startStamp,
			Times: []TimeRange{{Start: startTime, End: endTime}},
		},
		Spans: []SlotSpan{{
			Start:      startStamp,
			End:        endStamp,
			Type:       "hour",
			TimeSlotID: nil,
			ID:         uuid.NewString(),
		}},
		CartID: cartID,
	}
}

func (c *Client) do(ctx context.Context, session auth.Session, method, endpoint, referer string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req, session, referer)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.ByteString("response", raw),
	)

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api request failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return raw, nil
}

func (c *Client) setHeaders(req *http.Request, session auth.Session, referer string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", c.base)
	req.Header.Set("User-Agent", c.userAgent)
	if referer != "" {
		req.Header.Set("Referer", c.base+referer)
	}
	if session.Token != "" {
		req.Header.Set("Cookie", fmt.Sprintf("w_auth=%s; w_auth_refresh=%s", session.Token, session.Refresh))
	}
}

func (c *Client) endpoint(path string) string {
	return c.base + "/v2/api/api" + path
}

func normalizeBaseURL(baseURL string) (string, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return "", fmt.Errorf("base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
