package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ravikiranj23/event-ticketing/internal/model"
)

// revenueCacheTTL bounds staleness if an invalidation is ever missed.
const revenueCacheTTL = 30 * time.Second

func revenueCacheKey(eventID string) string {
	return fmt.Sprintf("revenue:%s", eventID)
}

// ListBookingsForUser returns all bookings made by the user, enriched with
// the event name and, where a payment record exists, the amount paid.
// Ordering follows store iteration order; callers must not rely on it.
// A user with no bookings gets an empty list, not an error.
func (s *BookingService) ListBookingsForUser(ctx context.Context, userID string) ([]model.BookingSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, model.NewError(model.KindValidation, "user id is required")
	}

	user, err := s.catalog.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.ledger.BookingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		summary := model.BookingSummary{
			BookingID:   b.BookingID,
			EventID:     b.EventID,
			FullName:    user.FullName,
			TicketCount: b.TicketCount,
			Status:      b.Status,
			BookedAt:    b.BookedAt,
		}

		event, err := s.catalog.EventByID(ctx, b.EventID)
		if err != nil && !model.IsNotFound(err) {
			return nil, err
		}
		if event != nil {
			summary.EventName = event.Name
		}

		payment, err := s.ledger.PaymentForBooking(ctx, b.BookingID)
		if err != nil {
			return nil, err
		}
		if payment != nil {
			summary.TotalPrice = payment.Amount
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// RevenueAndTicketsForEvent reports gross booked revenue and total tickets
// for an event. Cancelled bookings count: their payments are never deleted,
// so this is historical gross revenue, not a net figure. An event with no
// bookings yields zeroes. Results are served through a short-lived cache
// that purchase and cancel invalidate.
func (s *BookingService) RevenueAndTicketsForEvent(ctx context.Context, eventID string) (*model.EventRevenue, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, model.NewError(model.KindValidation, "event id is required")
	}

	key := revenueCacheKey(eventID)
	if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
		var revenue model.EventRevenue
		if json.Unmarshal([]byte(cached), &revenue) == nil {
			return &revenue, nil
		}
	}

	totalRevenue, err := s.ledger.SumPaymentsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	totalTickets, err := s.ledger.SumTicketsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	revenue := &model.EventRevenue{
		TotalRevenue:     totalRevenue,
		TotalTicketsSold: totalTickets,
	}
	if data, err := json.Marshal(revenue); err == nil {
		// Cache write failures only cost a recomputation on the next read.
		s.cache.Set(ctx, key, data, revenueCacheTTL)
	}
	return revenue, nil
}

// invalidateRevenue drops the cached aggregate after a committed purchase or
// cancellation. The TTL covers a failed delete, so the committed operation is
// never failed over cache state.
func (s *BookingService) invalidateRevenue(ctx context.Context, eventID string) {
	s.cache.Del(ctx, revenueCacheKey(eventID))
}
