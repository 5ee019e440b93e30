// Package service implements the booking engine: ticket purchase,
// cancellation, wallet top-up, booking listings, and per-event revenue
// aggregation. All invariants are enforced here; the engine never partially
// commits and never swallows an error.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ravikiranj23/event-ticketing/internal/identifier"
	"github.com/ravikiranj23/event-ticketing/internal/model"
	"github.com/ravikiranj23/event-ticketing/internal/ports"
)

// refundRate is the fixed cancellation refund policy: exactly 50% of the
// original payment amount, regardless of elapsed time or event status.
var refundRate = decimal.NewFromFloat(0.5)

// BookingService orchestrates all booking-related operations against the
// catalog and ledger stores. It holds no state of its own; cross-request
// consistency comes from the ledger's atomic units of work.
type BookingService struct {
	catalog ports.Catalog
	ledger  ports.Ledger
	ids     ports.IDGenerator
	cache   *redis.Client
}

// NewBookingService constructs a BookingService with its dependencies.
func NewBookingService(catalog ports.Catalog, ledger ports.Ledger, ids ports.IDGenerator, cache *redis.Client) *BookingService {
	return &BookingService{catalog: catalog, ledger: ledger, ids: ids, cache: cache}
}

// Purchase books tickets for a user against an event's capacity pool, paid
// from the user's wallet. All preconditions are checked before any write;
// the booking, payment, capacity decrement, and wallet debit land in one
// atomic unit or not at all.
func (s *BookingService) Purchase(ctx context.Context, req model.PurchaseRequest) (*model.BookingSummary, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, model.NewError(model.KindValidation, "user id is required")
	}
	if strings.TrimSpace(req.EventID) == "" {
		return nil, model.NewError(model.KindValidation, "event id is required")
	}
	if req.TicketCount <= 0 {
		return nil, model.NewError(model.KindValidation, "ticket count must be greater than zero")
	}

	user, err := s.catalog.UserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	event, err := s.catalog.EventByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	var summary *model.BookingSummary
	err = s.ledger.Atomic(ctx, func(tx ports.LedgerTx) error {
		venue, err := tx.VenueForEvent(ctx, req.EventID)
		if err != nil {
			return err
		}
		if venue == nil || venue.Capacity < req.TicketCount {
			return model.NewError(model.KindInsufficientCapacity, "not enough capacity available for the venue")
		}

		price, err := s.catalog.TicketPriceByID(ctx, req.TicketPriceID)
		if err != nil {
			return err
		}
		if price.EventID != req.EventID {
			return model.NewError(model.KindTicketPriceNotFound, "ticket price does not belong to this event")
		}
		totalPrice := price.Price.Mul(decimal.NewFromInt(int64(req.TicketCount)))

		wallet, err := tx.WalletForUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		if wallet == nil || wallet.Balance.LessThan(totalPrice) {
			return model.Errorf(model.KindInsufficientWalletBalance, "insufficient wallet balance for user: %s", req.UserID)
		}

		// Every check passed against the row-locked values; now the writes.
		booking := &model.Booking{
			BookingID:   s.ids.NextID(identifier.BookingPrefix),
			EventID:     req.EventID,
			UserID:      req.UserID,
			BookedAt:    time.Now().UTC(),
			Status:      model.BookingConfirmed,
			TicketCount: req.TicketCount,
		}
		if err := tx.InsertBooking(ctx, booking); err != nil {
			return err
		}

		payment := &model.BookingPayment{
			PaymentID: s.ids.NextID(identifier.PaymentPrefix),
			BookingID: booking.BookingID,
			Amount:    totalPrice,
			Status:    model.PaymentSuccess,
		}
		if err := tx.InsertPayment(ctx, payment); err != nil {
			return err
		}

		if err := tx.UpdateVenueCapacity(ctx, venue.VenueID, venue.Capacity-req.TicketCount); err != nil {
			return err
		}
		if err := tx.UpdateWalletBalance(ctx, wallet.WalletID, wallet.Balance.Sub(totalPrice)); err != nil {
			return err
		}

		summary = &model.BookingSummary{
			BookingID:   booking.BookingID,
			EventID:     event.EventID,
			EventName:   event.Name,
			Location:    venue.Location,
			FullName:    user.FullName,
			TicketCount: booking.TicketCount,
			TotalPrice:  totalPrice,
			Status:      booking.Status,
			BookedAt:    booking.BookedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRevenue(ctx, req.EventID)
	return summary, nil
}

// Cancel cancels a confirmed booking: flips its status, restores the venue's
// capacity, and refunds half the original payment to the booker's wallet.
// The payment record itself is never touched. A booking can be cancelled at
// most once.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) error {
	if strings.TrimSpace(bookingID) == "" {
		return model.NewError(model.KindValidation, "booking id is required")
	}

	var eventID string
	err := s.ledger.Atomic(ctx, func(tx ports.LedgerTx) error {
		booking, err := tx.BookingByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return model.Errorf(model.KindBookingNotFound, "booking not found with ID: %s", bookingID)
		}
		if !booking.IsConfirmed() {
			return model.NewError(model.KindInvalidBookingStatus, "only confirmed bookings can be cancelled")
		}

		if err := tx.UpdateBookingStatus(ctx, booking.BookingID, model.BookingCancelled); err != nil {
			return err
		}

		venue, err := tx.VenueForEvent(ctx, booking.EventID)
		if err != nil {
			return err
		}
		if venue == nil {
			return model.Errorf(model.KindInternal, "no venue found for event: %s", booking.EventID)
		}
		if err := tx.UpdateVenueCapacity(ctx, venue.VenueID, venue.Capacity+booking.TicketCount); err != nil {
			return err
		}

		payment, err := tx.PaymentForBooking(ctx, booking.BookingID)
		if err != nil {
			return err
		}
		if payment == nil {
			return model.Errorf(model.KindInternal, "no payment found for booking: %s", booking.BookingID)
		}
		refund := payment.Amount.Mul(refundRate)

		wallet, err := tx.WalletForUser(ctx, booking.UserID)
		if err != nil {
			return err
		}
		if wallet == nil {
			return model.Errorf(model.KindWalletNotFound, "wallet not found for user: %s", booking.UserID)
		}
		if err := tx.UpdateWalletBalance(ctx, wallet.WalletID, wallet.Balance.Add(refund)); err != nil {
			return err
		}

		eventID = booking.EventID
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateRevenue(ctx, eventID)
	return nil
}

// AddToWallet credits a user's wallet. The sole top-up path; amounts must be
// strictly positive.
func (s *BookingService) AddToWallet(ctx context.Context, userID string, amount decimal.Decimal) error {
	if strings.TrimSpace(userID) == "" {
		return model.NewError(model.KindValidation, "user id is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return model.NewError(model.KindValidation, "amount must be greater than zero")
	}

	if _, err := s.catalog.UserByID(ctx, userID); err != nil {
		return err
	}

	return s.ledger.Atomic(ctx, func(tx ports.LedgerTx) error {
		wallet, err := tx.WalletForUser(ctx, userID)
		if err != nil {
			return err
		}
		if wallet == nil {
			return model.Errorf(model.KindWalletNotFound, "wallet not found for user: %s", userID)
		}
		return tx.UpdateWalletBalance(ctx, wallet.WalletID, wallet.Balance.Add(amount))
	})
}
