package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/middleware"
	"clinicbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockBookingService struct {
	availableSlotsFunc func(ctx context.Context, from, to time.Time) ([]model.Slot, error)
	bookFunc           func(ctx context.Context, slotID string, userID string) (*model.Booking, error)
	listByUserFunc     func(ctx context.Context, userID string) ([]*model.Booking, error)
	listAllFunc        func(ctx context.Context, limit int, offset int64) ([]*model.AdminBooking, int64, error)
}

func (m *mockBookingService) AvailableSlots(ctx context.Context, from, to time.Time) ([]model.Slot, error) {
	if m.availableSlotsFunc != nil {
		return m.availableSlotsFunc(ctx, from, to)
	}
	return []model.Slot{}, nil
}

func (m *mockBookingService) Book(ctx context.Context, slotID string, userID string) (*model.Booking, error) {
	if m.bookFunc != nil {
		return m.bookFunc(ctx, slotID, userID)
	}
	return &model.Booking{ID: "booking-1", UserID: userID, SlotStartTime: slotID}, nil
}

func (m *mockBookingService) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingService) ListAll(ctx context.Context, limit int, offset int64) ([]*model.AdminBooking, int64, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx, limit, offset)
	}
	return []*model.AdminBooking{}, 0, nil
}

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		JWTSecret: testSecret,
		JWTTTL:    time.Hour,
	}
}

func newTestRouter(service *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(service, testConfig()).RegisterRoutes(router)
	return router
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := middleware.GenerateToken(&model.User{ID: userID, Role: role}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func decodeError(t *testing.T, body *strings.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

func TestGetSlots_MissingParams(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	cases := []string{
		"/api/v1/slots",
		"/api/v1/slots?from=2025-01-01T00:00:00Z",
		"/api/v1/slots?to=2025-01-02T00:00:00Z",
	}

	for _, target := range cases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestGetSlots_InvalidFormat(t *testing.T) {
	called := false
	service := &mockBookingService{
		availableSlotsFunc: func(ctx context.Context, from, to time.Time) ([]model.Slot, error) {
			called = true
			return nil, nil
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?from=yesterday&to=2025-01-02T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if called {
		t.Error("service must not be reached on malformed input")
	}
}

func TestGetSlots_Success(t *testing.T) {
	service := &mockBookingService{
		availableSlotsFunc: func(ctx context.Context, from, to time.Time) ([]model.Slot, error) {
			return []model.Slot{
				{
					ID:        "2025-01-01T09:00:00.000Z",
					StartTime: "2025-01-01T09:00:00.000Z",
					EndTime:   "2025-01-01T09:30:00.000Z",
				},
			}, nil
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?from=2025-01-01T00:00:00Z&to=2025-01-02T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data []model.Slot `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(resp.Data))
	}
	if resp.Data[0].ID != "2025-01-01T09:00:00.000Z" {
		t.Errorf("unexpected slot id: %s", resp.Data[0].ID)
	}
}

func TestGetSlots_NoAuthRequired(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?from=2025-01-01T00:00:00Z&to=2025-01-02T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("slot listing must be public, got %d", rec.Code)
	}
}

func TestBook_RequiresAuth(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{"slot_id":"2025-01-01T10:00:00.000Z"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestBook_Created(t *testing.T) {
	var gotUserID string
	service := &mockBookingService{
		bookFunc: func(ctx context.Context, slotID string, userID string) (*model.Booking, error) {
			gotUserID = userID
			return &model.Booking{ID: "booking-1", UserID: userID, SlotStartTime: slotID}, nil
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{"slot_id":"2025-01-01T10:00:00.000Z"}`))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-1", model.RolePatient))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != "user-1" {
		t.Errorf("expected caller identity from token, got %q", gotUserID)
	}
}

func TestBook_Conflict(t *testing.T) {
	service := &mockBookingService{
		bookFunc: func(ctx context.Context, slotID string, userID string) (*model.Booking, error) {
			return nil, apperrors.SlotTaken()
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{"slot_id":"2025-01-01T10:00:00.000Z"}`))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-1", model.RolePatient))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	resp := decodeError(t, strings.NewReader(rec.Body.String()))
	if resp["code"] != apperrors.CodeSlotTaken {
		t.Errorf("expected code %s, got %v", apperrors.CodeSlotTaken, resp["code"])
	}
}

func TestBook_InvalidBody(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{not json`))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-1", model.RolePatient))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMyBookings_ReturnsOwnBookingsOnly(t *testing.T) {
	var gotUserID string
	service := &mockBookingService{
		listByUserFunc: func(ctx context.Context, userID string) ([]*model.Booking, error) {
			gotUserID = userID
			return []*model.Booking{
				{ID: "booking-1", UserID: userID, SlotStartTime: "2025-01-01T09:00:00.000Z"},
			}, nil
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-7", model.RolePatient))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID != "user-7" {
		t.Errorf("expected user-7 from token, got %q", gotUserID)
	}
}

func TestAllBookings_RejectsNonAdmin(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-1", model.RolePatient))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestAllBookings_AdminGetsPaginatedList(t *testing.T) {
	service := &mockBookingService{
		listAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.AdminBooking, int64, error) {
			return []*model.AdminBooking{
				{
					ID:            "booking-1",
					SlotStartTime: "2025-01-01T09:00:00.000Z",
					PatientName:   "Jane Doe",
					PatientEmail:  "jane@example.com",
				},
			}, 27, nil
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?limit=10&offset=0", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "admin-1", model.RoleAdmin))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data       []*model.AdminBooking `json:"data"`
		TotalCount int64                 `json:"total_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalCount != 27 {
		t.Errorf("expected total 27, got %d", resp.TotalCount)
	}
	if len(resp.Data) != 1 || resp.Data[0].PatientName != "Jane Doe" {
		t.Errorf("unexpected data: %+v", resp.Data)
	}
}
