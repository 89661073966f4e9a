package payment_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/checkout-api/internal/domain/payment"
)

func TestNewReference_FormatoYUnicidad(t *testing.T) {
	ref := payment.NewReference("tx-1")

	assert.True(t, strings.HasPrefix(ref, "TXN-tx-1-"), "la referencia conserva el id de la transacción: %s", ref)
	parts := strings.Split(ref, "-")
	assert.GreaterOrEqual(t, len(parts), 4)

	// Dos referencias para la misma transacción nunca chocan: el pago se puede
	// reintentar sin reutilizar referencia en la pasarela.
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		r := payment.NewReference("tx-1")
		assert.False(t, seen[r], "referencia duplicada: %s", r)
		seen[r] = true
	}
}
