package identifier_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ravikiranj23/event-ticketing/internal/identifier"
)

func TestNew_PrefixAndShape(t *testing.T) {
	id := identifier.New(identifier.BookingPrefix)

	assert.True(t, strings.HasPrefix(id, "BKI-"))
	assert.Len(t, id, len("BKI-")+6)

	suffix := strings.TrimPrefix(id, "BKI-")
	assert.Equal(t, strings.ToUpper(suffix), suffix)
	for _, c := range suffix {
		assert.Contains(t, "0123456789ABCDEF", string(c))
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := identifier.New(identifier.PaymentPrefix)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerator_NextID(t *testing.T) {
	id := identifier.Generator{}.NextID(identifier.WalletPrefix)
	assert.True(t, strings.HasPrefix(id, "WLI-"))
}
