// Package money concentra las conversiones de montos del checkout:
// pesos ↔ centavos (la pasarela trabaja en centavos), formateo para
// visualización en es-CO y la comparación con tolerancia de redondeo.
package money

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Tolerance discrepancia máxima admitida al comparar un total calculado
// contra uno almacenado (redondeo de punto flotante). Inclusiva: 0.01 es válido.
const Tolerance = 0.01

// epsilon absorbe el error de representación binaria en la frontera exacta
// (ej. 100.01 - 100.00 produce 0.010000000000005...).
const epsilon = 1e-9

var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

// ToCents convierte pesos a centavos redondeando al centavo más cercano.
func ToCents(pesos float64) int64 {
	return int64(math.Round(pesos * 100))
}

// FromCents convierte centavos a pesos.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// CentsFromDecimal convierte un monto decimal (precio de producto) a centavos.
func CentsFromDecimal(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// EqualWithinTolerance compara dos montos en pesos admitiendo la tolerancia de redondeo.
func EqualWithinTolerance(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance+epsilon
}

// FormatCOP formatea un monto en pesos colombianos para visualización:
// separador de miles es-CO y símbolo de moneda (ej. "$ 1.500.000").
// COP no usa decimales en retail; se redondea al peso.
func FormatCOP(pesos float64) string {
	return copPrinter.Sprintf("$ %v", number.Decimal(math.Round(pesos), number.MaxFractionDigits(0)))
}
