package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"clinicbook/internal/bookings/service"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	httputil "clinicbook/pkg/http"
	"clinicbook/pkg/middleware"
	"clinicbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	cfg     *config.Config
}

func NewBookingHandler(service service.BookingService, cfg *config.Config) *BookingHandler {
	return &BookingHandler{
		service: service,
		cfg:     cfg,
	}
}

// GetSlots lists available slots for a range. Both bounds are required and
// must parse as RFC3339 instants; validation failures surface before any
// storage access.
func (h *BookingHandler) GetSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	fromStr := query.Get("from")
	toStr := query.Get("to")

	if fromStr == "" || toStr == "" {
		h.writeError(w, "GetSlots", apperrors.InvalidInput("Both 'from' and 'to' query parameters are required"))
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		h.writeError(w, "GetSlots", apperrors.InvalidInput("invalid 'from' format, must be RFC3339"))
		return
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		h.writeError(w, "GetSlots", apperrors.InvalidInput("invalid 'to' format, must be RFC3339"))
		return
	}

	slots, err := h.service.AvailableSlots(r.Context(), from, to)
	if err != nil {
		h.writeError(w, "GetSlots", err)
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.cfg.Log.Error("failed to write success response", "handler", "GetSlots", "error", err)
	}
}

// Book attempts to reserve a slot for the authenticated caller. The
// requester identity comes from the verified token, never from the body.
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Book", apperrors.InvalidInput("Invalid request body"))
		return
	}

	userID := middleware.UserIDFromContext(r.Context())

	booking, err := h.service.Book(r.Context(), req.SlotID, userID)
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.cfg.Log.Error("failed to write created response", "handler", "Book", "error", err)
	}
}

func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.UserIDFromContext(r.Context())

	bookings, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, "MyBookings", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.cfg.Log.Error("failed to write success response", "handler", "MyBookings", "error", err)
	}
}

func (h *BookingHandler) AllBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "AllBookings", err)
		return
	}

	bookings, total, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "AllBookings", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.cfg.Log.Error("failed to write paginated response", "handler", "AllBookings", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.cfg.Log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	protect := middleware.Protect(h.cfg.JWTSecret, h.cfg.Log)

	router.GET("/api/v1/slots", h.GetSlots)
	router.POST("/api/v1/bookings", protect(h.Book))
	router.GET("/api/v1/bookings/me", protect(h.MyBookings))
	router.GET("/api/v1/bookings", protect(middleware.AdminOnly(h.AllBookings)))
}
