package wompi

import "strings"

// TestCard tarjeta de prueba del sandbox de la pasarela.
type TestCard struct {
	Number  string
	Brand   string
	Outcome string // estado que produce en sandbox
}

// testCards tarjetas documentadas del sandbox Wompi.
var testCards = []TestCard{
	{Number: "4242424242424242", Brand: "VISA", Outcome: "APPROVED"},
	{Number: "4111111111111111", Brand: "VISA", Outcome: "DECLINED"},
	{Number: "5555555555554444", Brand: "MASTERCARD", Outcome: "APPROVED"},
}

// TestCards devuelve las tarjetas de prueba del sandbox (copia).
func TestCards() []TestCard {
	out := make([]TestCard, len(testCards))
	copy(out, testCards)
	return out
}

// IsTestCard indica si el número (con o sin espacios) es una tarjeta de prueba conocida.
func IsTestCard(number string) bool {
	clean := strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	for _, tc := range testCards {
		if tc.Number == clean {
			return true
		}
	}
	return false
}
