// Package repository implements all database access for the ticketing system.
// It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ravikiranj23/event-ticketing/internal/model"
	"github.com/ravikiranj23/event-ticketing/internal/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog resolves read-only records: users, events, and ticket prices.
// The booking engine never mutates any of these.
type Catalog struct {
	db *pgxpool.Pool
}

// NewCatalog constructs a Catalog.
func NewCatalog(db *pgxpool.Pool) *Catalog {
	return &Catalog{db: db}
}

// UserByID returns the user account or a user_not_found error.
func (c *Catalog) UserByID(ctx context.Context, userID string) (*model.UserAccount, error) {
	var u model.UserAccount
	err := c.db.QueryRow(ctx,
		`SELECT user_id, full_name, email FROM users WHERE user_id = $1`,
		userID,
	).Scan(&u.UserID, &u.FullName, &u.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.Errorf(model.KindUserNotFound, "user not found with ID: %s", userID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// EventByID returns the event or an event_not_found error.
func (c *Catalog) EventByID(ctx context.Context, eventID string) (*model.Event, error) {
	var e model.Event
	err := c.db.QueryRow(ctx,
		`SELECT event_id, event_name, description FROM events WHERE event_id = $1`,
		eventID,
	).Scan(&e.EventID, &e.Name, &e.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.Errorf(model.KindEventNotFound, "event not found with ID: %s", eventID)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// TicketPriceByID returns the ticket price category or a
// ticket_price_not_found error.
func (c *Catalog) TicketPriceByID(ctx context.Context, ticketPriceID string) (*model.TicketPrice, error) {
	var tp model.TicketPrice
	err := c.db.QueryRow(ctx,
		`SELECT ticket_price_id, event_id, category, price
		 FROM ticket_prices WHERE ticket_price_id = $1`,
		ticketPriceID,
	).Scan(&tp.TicketPriceID, &tp.EventID, &tp.Category, &tp.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewError(model.KindTicketPriceNotFound, "ticket price not found for the selected category")
		}
		return nil, fmt.Errorf("get ticket price: %w", err)
	}
	return &tp, nil
}
