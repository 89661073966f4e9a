package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. Read-only desde el core del checkout:
// se administra vía endpoints protegidos y el seed; el único cambio que el
// flujo de pago le aplica es el descuento de stock al aprobarse la compra.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta en pesos (COP)
	Stock       int             // unidades disponibles, nunca negativo
	BaseFee     decimal.Decimal // fee base que el producto aporta al total
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAvailable indica si el producto puede venderse (stock positivo).
func (p *Product) IsAvailable() bool {
	return p.Stock > 0
}
