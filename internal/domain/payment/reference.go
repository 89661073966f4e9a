package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewReference genera la referencia de idempotencia hacia la pasarela:
// TXN-<id>-<unix ms>-<sufijo aleatorio>. El sufijo evita colisiones cuando
// dos reintentos caen en el mismo milisegundo.
func NewReference(transactionID string) string {
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("TXN-%s-%d-%s", transactionID, time.Now().UnixMilli(), suffix)
}
