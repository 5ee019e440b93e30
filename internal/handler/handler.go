// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the booking engine.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ravikiranj23/event-ticketing/internal/model"
)

// Service is the engine contract the HTTP layer binds to.
type Service interface {
	Purchase(ctx context.Context, req model.PurchaseRequest) (*model.BookingSummary, error)
	Cancel(ctx context.Context, bookingID string) error
	ListBookingsForUser(ctx context.Context, userID string) ([]model.BookingSummary, error)
	RevenueAndTicketsForEvent(ctx context.Context, eventID string) (*model.EventRevenue, error)
	AddToWallet(ctx context.Context, userID string, amount decimal.Decimal) error
}

// BookingHandler holds all HTTP handlers for the booking API.
type BookingHandler struct {
	svc Service
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc Service) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeEngineError maps an error kind onto the HTTP status space.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case model.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case model.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case model.IsKind(err, model.KindInsufficientCapacity),
		model.IsKind(err, model.KindInsufficientWalletBalance),
		model.IsKind(err, model.KindInvalidBookingStatus):
		writeError(w, http.StatusConflict, err.Error())
	case model.IsTransient(err):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "temporary conflict, please retry")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// Purchase handles POST /bookings
// Books tickets for a user and charges the wallet.
func (h *BookingHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req model.PurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	summary, err := h.svc.Purchase(r.Context(), req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, summary)
}

// Cancel handles POST /bookings/{id}/cancel
// Cancels a confirmed booking, restoring capacity and refunding 50%.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Cancel(r.Context(), id); err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "booking cancelled"})
}

// ListUserBookings handles GET /users/{id}/bookings
// Returns every booking the user has made, enriched with event and payment
// details.
func (h *BookingHandler) ListUserBookings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	summaries, err := h.svc.ListBookingsForUser(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if summaries == nil {
		summaries = []model.BookingSummary{}
	}

	writeJSON(w, http.StatusOK, summaries)
}

// EventRevenue handles GET /events/{id}/revenue
// Returns gross booked revenue and total tickets sold for the event.
func (h *BookingHandler) EventRevenue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	revenue, err := h.svc.RevenueAndTicketsForEvent(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, revenue)
}

// TopUpWallet handles POST /users/{id}/wallet/topup
// Credits the user's wallet with a positive amount.
func (h *BookingHandler) TopUpWallet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.TopUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.AddToWallet(r.Context(), id, req.Amount); err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "wallet credited"})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
