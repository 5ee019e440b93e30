package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ravikiranj23/event-ticketing/internal/model"
	"github.com/ravikiranj23/event-ticketing/internal/ports"
	"github.com/shopspring/decimal"
)

var (
	_ ports.Ledger   = (*Ledger)(nil)
	_ ports.LedgerTx = (*Tx)(nil)
)

// Ledger persists the mutable records of the booking engine: venues, wallets,
// bookings, and booking payments. Every purchase or cancellation runs as one
// Atomic unit of work; the row-locked loads on Tx serialize concurrent
// operations per venue and per wallet without any global lock.
type Ledger struct {
	db *pgxpool.Pool
}

// NewLedger constructs a Ledger.
func NewLedger(db *pgxpool.Pool) *Ledger {
	return &Ledger{db: db}
}

// Tx is the transactional view handed to Atomic callbacks. Loads acquire
// row-level locks (SELECT ... FOR UPDATE), so a concurrent transaction
// touching the same venue or wallet blocks until this one resolves.
type Tx struct {
	tx pgx.Tx
}

// Atomic runs fn inside a single database transaction with all-or-nothing
// commit. A statement-level lock_timeout bounds how long any row lock is
// waited on; a timeout or conflict surfaces as a transient (retryable) error
// with nothing committed.
func (l *Ledger) Atomic(ctx context.Context, fn func(tx ports.LedgerTx) error) error {
	pgtx, err := l.db.Begin(ctx)
	if err != nil {
		return model.WrapError(model.KindTransient, "begin transaction", err)
	}
	// Rollback is a no-op once the transaction has committed.
	defer pgtx.Rollback(ctx)

	if _, err := pgtx.Exec(ctx, `SET LOCAL lock_timeout = '3s'`); err != nil {
		return fmt.Errorf("set lock timeout: %w", err)
	}

	if err := fn(&Tx{tx: pgtx}); err != nil {
		return err
	}

	if err := pgtx.Commit(ctx); err != nil {
		return asStoreError("commit transaction", err)
	}
	return nil
}

// asStoreError tags lock timeouts, deadlocks, and serialization conflicts as
// transient so callers know the whole operation is safe to retry.
func asStoreError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", "40001", "40P01": // lock_not_available, serialization_failure, deadlock_detected
			return model.WrapError(model.KindTransient, op, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return model.WrapError(model.KindTransient, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ── Transactional view ───────────────────────────────────────────────────────

// VenueForEvent loads and locks the venue row for an event.
// Returns (nil, nil) when the event has no venue.
func (t *Tx) VenueForEvent(ctx context.Context, eventID string) (*model.Venue, error) {
	var v model.Venue
	err := t.tx.QueryRow(ctx,
		`SELECT venue_id, event_id, location, maps_link, capacity
		 FROM venues WHERE event_id = $1
		 FOR UPDATE`,
		eventID,
	).Scan(&v.VenueID, &v.EventID, &v.Location, &v.MapsLink, &v.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, asStoreError("lock venue row", err)
	}
	return &v, nil
}

// WalletForUser loads and locks the wallet row for a user.
// Returns (nil, nil) when the user has no wallet.
func (t *Tx) WalletForUser(ctx context.Context, userID string) (*model.Wallet, error) {
	var w model.Wallet
	err := t.tx.QueryRow(ctx,
		`SELECT wallet_id, user_id, balance
		 FROM wallets WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).Scan(&w.WalletID, &w.UserID, &w.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, asStoreError("lock wallet row", err)
	}
	return &w, nil
}

// BookingByID loads and locks a booking row.
// Returns (nil, nil) when no such booking exists.
func (t *Tx) BookingByID(ctx context.Context, bookingID string) (*model.Booking, error) {
	var b model.Booking
	err := t.tx.QueryRow(ctx,
		`SELECT booking_id, event_id, user_id, booked_at, status, ticket_count
		 FROM bookings WHERE booking_id = $1
		 FOR UPDATE`,
		bookingID,
	).Scan(&b.BookingID, &b.EventID, &b.UserID, &b.BookedAt, &b.Status, &b.TicketCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, asStoreError("lock booking row", err)
	}
	return &b, nil
}

// PaymentForBooking loads the immutable payment record linked to a booking.
// Returns (nil, nil) when the booking has no payment.
func (t *Tx) PaymentForBooking(ctx context.Context, bookingID string) (*model.BookingPayment, error) {
	return scanPayment(t.tx.QueryRow(ctx,
		`SELECT payment_id, booking_id, amount, status
		 FROM booking_payments WHERE booking_id = $1`,
		bookingID,
	))
}

// InsertBooking persists a new booking record.
func (t *Tx) InsertBooking(ctx context.Context, b *model.Booking) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO bookings (booking_id, event_id, user_id, booked_at, status, ticket_count)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		b.BookingID, b.EventID, b.UserID, b.BookedAt, b.Status, b.TicketCount,
	)
	if err != nil {
		return asStoreError("insert booking", err)
	}
	return nil
}

// InsertPayment persists a new booking payment record.
func (t *Tx) InsertPayment(ctx context.Context, p *model.BookingPayment) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO booking_payments (payment_id, booking_id, amount, status)
		 VALUES ($1, $2, $3, $4)`,
		p.PaymentID, p.BookingID, p.Amount, p.Status,
	)
	if err != nil {
		return asStoreError("insert payment", err)
	}
	return nil
}

// UpdateVenueCapacity writes the new remaining capacity for a venue.
func (t *Tx) UpdateVenueCapacity(ctx context.Context, venueID string, capacity int) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE venues SET capacity = $1 WHERE venue_id = $2`,
		capacity, venueID,
	)
	if err != nil {
		return asStoreError("update venue capacity", err)
	}
	return nil
}

// UpdateWalletBalance writes the new balance for a wallet.
func (t *Tx) UpdateWalletBalance(ctx context.Context, walletID string, balance decimal.Decimal) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE wallets SET balance = $1 WHERE wallet_id = $2`,
		balance, walletID,
	)
	if err != nil {
		return asStoreError("update wallet balance", err)
	}
	return nil
}

// UpdateBookingStatus writes the new status for a booking.
func (t *Tx) UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE bookings SET status = $1 WHERE booking_id = $2`,
		status, bookingID,
	)
	if err != nil {
		return asStoreError("update booking status", err)
	}
	return nil
}

// ── Non-transactional reads ──────────────────────────────────────────────────

// BookingsByUser returns all bookings made by a user in store iteration order.
func (l *Ledger) BookingsByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	rows, err := l.db.Query(ctx,
		`SELECT booking_id, event_id, user_id, booked_at, status, ticket_count
		 FROM bookings WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.BookingID, &b.EventID, &b.UserID, &b.BookedAt, &b.Status, &b.TicketCount); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// PaymentForBooking loads the payment linked to a booking outside any
// transaction. Returns (nil, nil) when the booking has no payment.
func (l *Ledger) PaymentForBooking(ctx context.Context, bookingID string) (*model.BookingPayment, error) {
	return scanPayment(l.db.QueryRow(ctx,
		`SELECT payment_id, booking_id, amount, status
		 FROM booking_payments WHERE booking_id = $1`,
		bookingID,
	))
}

// SumPaymentsByEvent sums payment amounts over all bookings of an event,
// cancelled bookings included. Zero when the event has no bookings.
func (l *Ledger) SumPaymentsByEvent(ctx context.Context, eventID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := l.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(bp.amount), 0)
		 FROM booking_payments bp
		 JOIN bookings b ON b.booking_id = bp.booking_id
		 WHERE b.event_id = $1`,
		eventID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return total, nil
}

// SumTicketsByEvent sums ticket counts over all bookings of an event.
// Zero when the event has no bookings.
func (l *Ledger) SumTicketsByEvent(ctx context.Context, eventID string) (int64, error) {
	var total int64
	err := l.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(ticket_count), 0) FROM bookings WHERE event_id = $1`,
		eventID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum tickets: %w", err)
	}
	return total, nil
}

func scanPayment(row pgx.Row) (*model.BookingPayment, error) {
	var p model.BookingPayment
	err := row.Scan(&p.PaymentID, &p.BookingID, &p.Amount, &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}
