// Package checkout orquesta el flujo de compra: creación de la transacción,
// pago con tarjeta contra la pasarela y sincronización del estado final.
package checkout

import (
	"context"
	"errors"

	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una misma transacción
// de base de datos. La implementación vive en infrastructure/postgres.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		deliveryRepo repository.DeliveryRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// wrapInternal envuelve errores de infraestructura como Internal; los errores
// de dominio ya etiquetados pasan sin tocar para conservar su mapeo HTTP.
func wrapInternal(msg string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Internal(msg, err)
}
