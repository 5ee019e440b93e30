package service_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ravikiranj23/event-ticketing/internal/model"
	"github.com/ravikiranj23/event-ticketing/internal/ports"
)

// fakeCatalog serves read-only records from maps, reporting lookup misses
// with the same tagged kinds the pgx catalog uses.
type fakeCatalog struct {
	users  map[string]model.UserAccount
	events map[string]model.Event
	prices map[string]model.TicketPrice
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		users:  make(map[string]model.UserAccount),
		events: make(map[string]model.Event),
		prices: make(map[string]model.TicketPrice),
	}
}

func (c *fakeCatalog) UserByID(_ context.Context, userID string) (*model.UserAccount, error) {
	u, ok := c.users[userID]
	if !ok {
		return nil, model.Errorf(model.KindUserNotFound, "user not found with ID: %s", userID)
	}
	return &u, nil
}

func (c *fakeCatalog) EventByID(_ context.Context, eventID string) (*model.Event, error) {
	e, ok := c.events[eventID]
	if !ok {
		return nil, model.Errorf(model.KindEventNotFound, "event not found with ID: %s", eventID)
	}
	return &e, nil
}

func (c *fakeCatalog) TicketPriceByID(_ context.Context, ticketPriceID string) (*model.TicketPrice, error) {
	tp, ok := c.prices[ticketPriceID]
	if !ok {
		return nil, model.NewError(model.KindTicketPriceNotFound, "ticket price not found for the selected category")
	}
	return &tp, nil
}

// fakeLedger keeps all mutable records in maps. Atomic snapshots the maps
// before running the callback and restores them when it fails, mirroring the
// all-or-nothing commit of the real store.
type fakeLedger struct {
	venues   map[string]model.Venue          // by event ID
	wallets  map[string]model.Wallet         // by user ID
	bookings map[string]model.Booking        // by booking ID
	payments map[string]model.BookingPayment // by booking ID

	// failOn injects a write failure by method name to exercise rollback.
	failOn string
}

var errInjected = errors.New("injected store failure")

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		venues:   make(map[string]model.Venue),
		wallets:  make(map[string]model.Wallet),
		bookings: make(map[string]model.Booking),
		payments: make(map[string]model.BookingPayment),
	}
}

func (l *fakeLedger) snapshot() [4]any {
	return [4]any{
		copyMap(l.venues), copyMap(l.wallets), copyMap(l.bookings), copyMap(l.payments),
	}
}

func (l *fakeLedger) restore(snap [4]any) {
	l.venues = snap[0].(map[string]model.Venue)
	l.wallets = snap[1].(map[string]model.Wallet)
	l.bookings = snap[2].(map[string]model.Booking)
	l.payments = snap[3].(map[string]model.BookingPayment)
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (l *fakeLedger) Atomic(_ context.Context, fn func(tx ports.LedgerTx) error) error {
	snap := l.snapshot()
	if err := fn(&fakeTx{l: l}); err != nil {
		l.restore(snap)
		return err
	}
	return nil
}

func (l *fakeLedger) BookingsByUser(_ context.Context, userID string) ([]model.Booking, error) {
	var bookings []model.Booking
	for _, b := range l.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (l *fakeLedger) PaymentForBooking(_ context.Context, bookingID string) (*model.BookingPayment, error) {
	p, ok := l.payments[bookingID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (l *fakeLedger) SumPaymentsByEvent(_ context.Context, eventID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for bookingID, p := range l.payments {
		if b, ok := l.bookings[bookingID]; ok && b.EventID == eventID {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (l *fakeLedger) SumTicketsByEvent(_ context.Context, eventID string) (int64, error) {
	var total int64
	for _, b := range l.bookings {
		if b.EventID == eventID {
			total += int64(b.TicketCount)
		}
	}
	return total, nil
}

// fakeTx mutates the ledger maps directly; Atomic's snapshot handles rollback.
type fakeTx struct {
	l *fakeLedger
}

func (t *fakeTx) VenueForEvent(_ context.Context, eventID string) (*model.Venue, error) {
	v, ok := t.l.venues[eventID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (t *fakeTx) WalletForUser(_ context.Context, userID string) (*model.Wallet, error) {
	w, ok := t.l.wallets[userID]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (t *fakeTx) BookingByID(_ context.Context, bookingID string) (*model.Booking, error) {
	b, ok := t.l.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (t *fakeTx) PaymentForBooking(ctx context.Context, bookingID string) (*model.BookingPayment, error) {
	return t.l.PaymentForBooking(ctx, bookingID)
}

func (t *fakeTx) InsertBooking(_ context.Context, b *model.Booking) error {
	if t.l.failOn == "InsertBooking" {
		return errInjected
	}
	t.l.bookings[b.BookingID] = *b
	return nil
}

func (t *fakeTx) InsertPayment(_ context.Context, p *model.BookingPayment) error {
	if t.l.failOn == "InsertPayment" {
		return errInjected
	}
	t.l.payments[p.BookingID] = *p
	return nil
}

func (t *fakeTx) UpdateVenueCapacity(_ context.Context, venueID string, capacity int) error {
	if t.l.failOn == "UpdateVenueCapacity" {
		return errInjected
	}
	for eventID, v := range t.l.venues {
		if v.VenueID == venueID {
			v.Capacity = capacity
			t.l.venues[eventID] = v
			return nil
		}
	}
	return fmt.Errorf("no venue %s", venueID)
}

func (t *fakeTx) UpdateWalletBalance(_ context.Context, walletID string, balance decimal.Decimal) error {
	if t.l.failOn == "UpdateWalletBalance" {
		return errInjected
	}
	for userID, w := range t.l.wallets {
		if w.WalletID == walletID {
			w.Balance = balance
			t.l.wallets[userID] = w
			return nil
		}
	}
	return fmt.Errorf("no wallet %s", walletID)
}

func (t *fakeTx) UpdateBookingStatus(_ context.Context, bookingID string, status model.BookingStatus) error {
	if t.l.failOn == "UpdateBookingStatus" {
		return errInjected
	}
	b, ok := t.l.bookings[bookingID]
	if !ok {
		return fmt.Errorf("no booking %s", bookingID)
	}
	b.Status = status
	t.l.bookings[bookingID] = b
	return nil
}

// seqIDs hands out deterministic prefixed IDs for assertions.
type seqIDs struct {
	n int
}

func (s *seqIDs) NextID(prefix string) string {
	s.n++
	return fmt.Sprintf("%s%06d", prefix, s.n)
}
