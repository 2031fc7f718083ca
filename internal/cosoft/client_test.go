package cosoft

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coworkcli/cowork/internal/auth"
)

func testSession() auth.Session {
	return auth.Session{Token: "tok", Refresh: "ref"}
}

func TestNormalizeBaseURL_DefaultsToHTTPSAndStripsPath(t *testing.T) {
	base, err := normalizeBaseURL("spaces.example.com")
	if err != nil {
		t.Fatalf("normalizeBaseURL returned error: %v", err)
	}
	if base != "https://spaces.example.com" {
		t.Fatalf("base = %q, want %q", base, "https://spaces.example.com")
	}

	base, err = normalizeBaseURL("http://example.com/path?x=1#frag")
	if err != nil {
		t.Fatalf("normalizeBaseURL returned error: %v", err)
	}
	if base != "http://example.com" {
		t.Fatalf("base = %q, want path/query/fragment stripped", base)
	}
}

func TestClient_SendsCookiesRefererAndBodies(t *testing.T) {
	t.Parallel()

	var gotCookie, gotReferer, gotOrigin string
	var gotRoomsBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotReferer = r.Header.Get("Referer")
		gotOrigin = r.Header.Get("Origin")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.Contains(r.URL.Path, "/items"):
			gotRoomsBody, _ = io.ReadAll(r.Body)
			_ = json.NewEncoder(w).Encode(RoomsResponse{
				VisitedItems: []RoomItem{{ID: "api-1", Name: "CALL BOX 3"}},
			})
		case strings.Contains(r.URL.Path, "/Reservations/"):
			_ = json.NewEncoder(w).Encode(ReservationsResponse{
				Data: []ReservationItem{{OrderResourceRentID: "res-1", ItemName: "CALL BOX 3"}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "space-1", "cat-1", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	rooms, err := c.FetchRooms(ctx, testSession())
	if err != nil {
		t.Fatalf("FetchRooms returned error: %v", err)
	}
	if len(rooms.VisitedItems) != 1 || rooms.VisitedItems[0].Name != "CALL BOX 3" {
		t.Fatalf("FetchRooms payload = %#v", rooms)
	}
	if gotCookie != "w_auth=tok; w_auth_refresh=ref" {
		t.Fatalf("Cookie = %q, want session cookie pair", gotCookie)
	}
	if want := "/v2/new-reservation/space-1/cat-1"; !strings.HasSuffix(gotReferer, want) {
		t.Fatalf("Referer = %q, want suffix %q", gotReferer, want)
	}
	if gotOrigin != server.URL {
		t.Fatalf("Origin = %q, want %q", gotOrigin, server.URL)
	}
	if want := `{"price":null}`; strings.TrimSpace(string(gotRoomsBody)) != want {
		t.Fatalf("rooms body = %q, want %q", gotRoomsBody, want)
	}

	reservations, err := c.FetchReservations(ctx, testSession())
	if err != nil {
		t.Fatalf("FetchReservations returned error: %v", err)
	}
	if len(reservations.Data) != 1 || reservations.Data[0].OrderResourceRentID != "res-1" {
		t.Fatalf("FetchReservations payload = %#v", reservations)
	}
}

func TestSubmitCart_EmptyBodyYieldsNilResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "space-1", "cat-1", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	order := c.NewOrder("room-1", "2025-09-03", "13:30", "14:30", "cart-1")
	resp, err := c.SubmitCart(context.Background(), testSession(), order)
	if err != nil {
		t.Fatalf("SubmitCart returned error: %v", err)
	}
	if resp != nil {
		t.Fatalf("SubmitCart = %#v, want nil for empty body", resp)
	}
}

func TestCancelReservation_PostsIDAndSurfacesHTTPErrors(t *testing.T) {
	t.Parallel()

	var gotBody []byte
	fail := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "space-1", "cat-1", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if err := c.CancelReservation(context.Background(), testSession(), "bkg-42"); err != nil {
		t.Fatalf("CancelReservation returned error: %v", err)
	}
	if want := `{"Id":"bkg-42"}`; strings.TrimSpace(string(gotBody)) != want {
		t.Fatalf("cancel body = %q, want %q", gotBody, want)
	}

	fail = true
	err = c.CancelReservation(context.Background(), testSession(), "bkg-42")
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Fatalf("CancelReservation error = %v, want HTTP 500 surfaced", err)
	}
}

func TestLogin_ExtractsTokenPair(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "w_auth_refresh", Value: "fresh"})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AuthResponse{
			IsAuth: true,
			User:   &User{Email: "me@example.com", JwtToken: "jwt-1"},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "space-1", "cat-1", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	session, user, err := c.Login(context.Background(), "me@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Token != "jwt-1" || session.Refresh != "fresh" {
		t.Fatalf("session = %+v, want jwt-1/fresh", session)
	}
	if user.Email != "me@example.com" {
		t.Fatalf("user = %+v", user)
	}
}

func TestNewOrder_SendsWindowTwice(t *testing.T) {
	c, err := NewClient("https://example.com", "space-1", "cat-1", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	order := c.NewOrder("room-1", "2025-09-03", "13:30", "14:30", "cart-1")
	if order.DatedTimes.Date != "2025-09-03T13:30:00" {
		t.Fatalf("DatedTimes.Date = %q", order.DatedTimes.Date)
	}
	if len(order.DatedTimes.Times) != 1 || order.DatedTimes.Times[0] != (TimeRange{Start: "13:30", End: "14:30"}) {
		t.Fatalf("DatedTimes.Times = %#v", order.DatedTimes.Times)
	}
	if len(order.Spans) != 1 {
		t.Fatalf("Spans = %#v, want one span", order.Spans)
	}
	span := order.Spans[0]
	if span.Start != "2025-09-03T13:30:00" || span.End != "2025-09-03T14:30:00" || span.Type != "hour" {
		t.Fatalf("span = %#v", span)
	}
	if span.TimeSlotID != nil {
		t.Fatalf("TimeSlotID = %v, want nil key", span.TimeSlotID)
	}
	if span.ID == "" {
		t.Fatalf("span id empty, want generated uuid")
	}
	if order.CartID != "cart-1" {
		t.Fatalf("CartID = %q", order.CartID)
	}
}
