package wompi

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// IntegritySignature calcula la firma de integridad que autentica el payload
// del pago ante la pasarela sin exponer la llave secreta al cliente.
// Fórmula (sin separadores): reference + amount_in_cents + currency + secret.
// Algoritmo: SHA-256, salida hexadecimal.
func IntegritySignature(reference string, amountInCents int64, currency, secret string) string {
	chain := reference + strconv.FormatInt(amountInCents, 10) + currency + secret
	sum := sha256.Sum256([]byte(chain))
	return hex.EncodeToString(sum[:])
}
