// Package identifier produces the short type-prefixed identifiers used for
// every record in the system, e.g. BKI-3F09A1 for a booking.
package identifier

import (
	"strings"

	"github.com/google/uuid"
)

// Well-known prefixes, one per record type.
const (
	UserPrefix        = "UDI-"
	EventPrefix       = "EVE-"
	VenuePrefix       = "VEI-"
	TicketPricePrefix = "TPI-"
	WalletPrefix      = "WLI-"
	BookingPrefix     = "BKI-"
	PaymentPrefix     = "BPI-"
)

const randomLength = 6

// New returns prefix followed by 6 uppercase hex characters drawn from a
// fresh UUID. Uniqueness is probabilistic but ample for the ID space here.
func New(prefix string) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + strings.ToUpper(raw[:randomLength])
}

// Generator satisfies the engine's ID dependency with New.
type Generator struct{}

// NextID implements the engine's IDGenerator interface.
func (Generator) NextID(prefix string) string {
	return New(prefix)
}
