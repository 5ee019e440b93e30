// Package model defines the core domain types for the event ticketing backend.
// All monetary values use shopspring/decimal, never float64.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle state of a booking.
// The only legal transition is CONFIRMED → CANCELLED.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// PaymentSuccess is the only status a booking payment is ever created with.
// Payment records are immutable after creation; refunds touch the wallet only.
const PaymentSuccess = "SUCCESS"

// UserAccount is the slice of a user record the booking core needs.
type UserAccount struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Event represents a published event. Metadata CRUD lives outside the core;
// the engine only resolves events by ID.
type Event struct {
	EventID     string `json:"event_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Venue holds the mutable capacity pool for exactly one event (1:1).
// Capacity is the number of tickets still sellable; it is decremented by
// purchases and incremented by cancellations, and by nothing else.
type Venue struct {
	VenueID  string `json:"venue_id"`
	EventID  string `json:"event_id"`
	Location string `json:"location"`
	MapsLink string `json:"maps_link"`
	Capacity int    `json:"capacity"`
}

// TicketPrice is a priced ticket category for an event. Read-only to the core.
type TicketPrice struct {
	TicketPriceID string          `json:"ticket_price_id"`
	EventID       string          `json:"event_id"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
}

// Wallet is a user's internal balance, the sole payment instrument.
// Balance is never negative after any committed operation.
type Wallet struct {
	WalletID string          `json:"wallet_id"`
	UserID   string          `json:"user_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// Booking records the outcome of a ticket purchase.
type Booking struct {
	BookingID   string        `json:"booking_id"`
	EventID     string        `json:"event_id"`
	UserID      string        `json:"user_id"`
	BookedAt    time.Time     `json:"booked_at"`
	Status      BookingStatus `json:"status"`
	TicketCount int           `json:"ticket_count"`
}

// IsConfirmed reports whether the booking still holds capacity.
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingConfirmed
}

// BookingPayment is the immutable charge record created 1:1 with a booking
// at purchase time. Amount equals ticketCount × unit price at booking time.
type BookingPayment struct {
	PaymentID string          `json:"payment_id"`
	BookingID string          `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
}

// PurchaseRequest is the payload for booking tickets.
type PurchaseRequest struct {
	UserID        string `json:"user_id"`
	EventID       string `json:"event_id"`
	TicketPriceID string `json:"ticket_price_id"`
	TicketCount   int    `json:"ticket_count"`
}

// TopUpRequest is the payload for crediting a wallet.
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// BookingSummary is the enriched view of a booking returned to callers.
type BookingSummary struct {
	BookingID   string          `json:"booking_id"`
	EventID     string          `json:"event_id"`
	EventName   string          `json:"event_name"`
	Location    string          `json:"location,omitempty"`
	FullName    string          `json:"full_name"`
	TicketCount int             `json:"ticket_count"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Status      BookingStatus   `json:"status"`
	BookedAt    time.Time       `json:"booked_at"`
}

// EventRevenue reports gross booked revenue and tickets sold for one event.
// Payments of cancelled bookings are included: payment records are never
// deleted or reversed, so this is a historical gross figure, not a net one.
type EventRevenue struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalTicketsSold int64           `json:"total_tickets_sold"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
