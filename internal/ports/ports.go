// Package ports declares the narrow store contracts the booking engine
// consumes. The engine receives implementations by constructor injection;
// production implementations live in internal/repository.
package ports

import (
	"context"

	"github.com/ravikiranj23/event-ticketing/internal/model"
	"github.com/shopspring/decimal"
)

// Catalog resolves read-only records by ID. Lookup misses come back as
// tagged not-found errors.
type Catalog interface {
	UserByID(ctx context.Context, userID string) (*model.UserAccount, error)
	EventByID(ctx context.Context, eventID string) (*model.Event, error)
	TicketPriceByID(ctx context.Context, ticketPriceID string) (*model.TicketPrice, error)
}

// LedgerTx is the transactional view over the mutable records. Loads lock the
// row for the duration of the transaction; absent records are (nil, nil) so
// the engine decides their business meaning.
type LedgerTx interface {
	VenueForEvent(ctx context.Context, eventID string) (*model.Venue, error)
	WalletForUser(ctx context.Context, userID string) (*model.Wallet, error)
	BookingByID(ctx context.Context, bookingID string) (*model.Booking, error)
	PaymentForBooking(ctx context.Context, bookingID string) (*model.BookingPayment, error)
	InsertBooking(ctx context.Context, b *model.Booking) error
	InsertPayment(ctx context.Context, p *model.BookingPayment) error
	UpdateVenueCapacity(ctx context.Context, venueID string, capacity int) error
	UpdateWalletBalance(ctx context.Context, walletID string, balance decimal.Decimal) error
	UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) error
}

// Ledger is the durable store for venues, wallets, bookings, and payments.
// Atomic runs fn as one all-or-nothing unit of work; if fn returns an error
// nothing is committed.
type Ledger interface {
	Atomic(ctx context.Context, fn func(tx LedgerTx) error) error
	BookingsByUser(ctx context.Context, userID string) ([]model.Booking, error)
	PaymentForBooking(ctx context.Context, bookingID string) (*model.BookingPayment, error)
	SumPaymentsByEvent(ctx context.Context, eventID string) (decimal.Decimal, error)
	SumTicketsByEvent(ctx context.Context, eventID string) (int64, error)
}

// IDGenerator produces short unique identifiers with a type-specific prefix.
type IDGenerator interface {
	NextID(prefix string) string
}
