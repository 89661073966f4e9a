package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/entity"
)

func newPendingTx() entity.Transaction {
	tx := entity.NewTransaction("cust-1", "prod-1", 1_150_000, 35_000, 5_000, entity.PaymentCreditCard)
	tx.ID = "tx-1"
	return tx
}

func TestNewTransaction_TotalYEstadoInicial(t *testing.T) {
	tx := newPendingTx()

	assert.Equal(t, entity.StatusPending, tx.Status)
	assert.InDelta(t, 1_190_000.0, tx.TotalAmount, 1e-9)
	assert.True(t, tx.IsAmountValid())
	assert.Nil(t, tx.CompletedAt)
	assert.Empty(t, tx.ProviderTransactionID)
}

func TestIsAmountValid_ToleranciaInclusiva(t *testing.T) {
	tx := newPendingTx()

	tx.TotalAmount = tx.CalculateTotal() + 0.01
	assert.True(t, tx.IsAmountValid(), "una discrepancia de exactamente 0.01 es válida")

	tx.TotalAmount = tx.CalculateTotal() + 0.02
	assert.False(t, tx.IsAmountValid())
}

func TestMarkAsCompleted_DesdePending(t *testing.T) {
	tx := newPendingTx()

	done, err := tx.MarkAsCompleted("wompi-123", "TXN-ref")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusCompleted, done.Status)
	assert.Equal(t, "wompi-123", done.ProviderTransactionID)
	assert.Equal(t, "TXN-ref", done.ProviderReference)
	require.NotNil(t, done.CompletedAt)

	// Transición funcional: el valor original no se muta.
	assert.Equal(t, entity.StatusPending, tx.Status)
}

func TestMarkAsCompleted_DesdeTerminalEsIlegal(t *testing.T) {
	tx := newPendingTx()
	done, err := tx.MarkAsCompleted("wompi-123", "TXN-ref")
	require.NoError(t, err)

	_, err = done.MarkAsCompleted("wompi-456", "TXN-ref-2")
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Contains(t, err.Error(), "cannot be completed")
}

func TestMarkAsFailed_DesdePending(t *testing.T) {
	tx := newPendingTx()

	failed, err := tx.MarkAsFailed("insufficient funds")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusFailed, failed.Status)
	assert.Equal(t, "insufficient funds", failed.StatusMessage)
	assert.Nil(t, failed.CompletedAt)
}

func TestMarkAsFailed_DesdeCompletedEsIlegal(t *testing.T) {
	tx := newPendingTx()
	done, err := tx.MarkAsCompleted("wompi-123", "ref")
	require.NoError(t, err)

	_, err = done.MarkAsFailed("late decline")
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

// MarkAsPending no tiene guarda: es la vía de reintento cuando el proveedor
// reporta PENDING tras un envío que localmente quedó en otro estado.
func TestMarkAsPending_SinGuardaYConservaDatos(t *testing.T) {
	tx := newPendingTx()
	failed, err := tx.MarkAsFailed("timeout")
	require.NoError(t, err)

	retried := failed.MarkAsPending("wompi-789", "ref-retry")
	assert.Equal(t, entity.StatusPending, retried.Status)
	assert.Equal(t, "wompi-789", retried.ProviderTransactionID)

	// Argumentos vacíos conservan los datos de proveedor existentes.
	again := retried.MarkAsPending("", "")
	assert.Equal(t, "wompi-789", again.ProviderTransactionID)
	assert.Equal(t, "ref-retry", again.ProviderReference)
}

func TestWithCard_SoloEnmascarado(t *testing.T) {
	tx := newPendingTx().WithCard("4242", "VISA")
	assert.Equal(t, "4242", tx.CardLastFour)
	assert.Equal(t, "VISA", tx.CardBrand)
}

func TestTransactionFromPersistence_StatusVerbatim(t *testing.T) {
	tx := entity.TransactionFromPersistence(newPendingTx(), "COMPLETED")
	assert.Equal(t, entity.StatusCompleted, tx.Status)

	// Un status desconocido se conserva tal cual y las guardas lo tratan
	// como no-PENDING.
	weird := entity.TransactionFromPersistence(newPendingTx(), "REFUNDED")
	assert.Equal(t, entity.Status("REFUNDED"), weird.Status)
	_, err := weird.MarkAsCompleted("wompi-1", "ref")
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}
