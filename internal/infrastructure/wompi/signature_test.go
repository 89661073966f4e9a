package wompi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/checkout-api/internal/infrastructure/wompi"
)

// ──────────────────────────────────────────────────────────────────────────────
// La firma de integridad es SHA-256 en hex de la concatenación
// referencia + monto en centavos + moneda + llave secreta, sin separadores.
// Vectores calculados manualmente con sha256sum.
// ──────────────────────────────────────────────────────────────────────────────

func TestIntegritySignature_VectorExacto(t *testing.T) {
	got := wompi.IntegritySignature("TXN-1-1700000000000-ab12", 1190000, "COP", "test_integrity_key")
	assert.Equal(t,
		"4080273bdd64540d744dabb1502d289ee664a3a97448b57c849c90741d6da8e6",
		got, "la firma debe coincidir con el vector SHA-256 de referencia")
}

func TestIntegritySignature_SegundoVector(t *testing.T) {
	got := wompi.IntegritySignature("ref-001", 5000000, "COP", "stagtest_8765")
	assert.Equal(t,
		"6959306562088c93dc087c97fcd65a381d4ca35d89647ab7c488d3824d82adb1",
		got)
}

func TestIntegritySignature_SensibleACadaCampo(t *testing.T) {
	base := wompi.IntegritySignature("ref-001", 5000000, "COP", "secret")
	assert.NotEqual(t, base, wompi.IntegritySignature("ref-002", 5000000, "COP", "secret"))
	assert.NotEqual(t, base, wompi.IntegritySignature("ref-001", 5000001, "COP", "secret"))
	assert.NotEqual(t, base, wompi.IntegritySignature("ref-001", 5000000, "USD", "secret"))
	assert.NotEqual(t, base, wompi.IntegritySignature("ref-001", 5000000, "COP", "other"))
}

func TestIntegritySignature_Determinista(t *testing.T) {
	a := wompi.IntegritySignature("ref-001", 5000000, "COP", "secret")
	b := wompi.IntegritySignature("ref-001", 5000000, "COP", "secret")
	assert.Equal(t, a, b)
}
