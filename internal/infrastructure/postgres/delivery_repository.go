package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador de persistencia para envíos. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste los datos de envío de una transacción.
func (r *DeliveryRepo) Create(d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (id, transaction_id, address, city, postal_code, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.TransactionID, d.Address, d.City, d.PostalCode, d.Phone, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetByTransactionID obtiene el envío asociado a una transacción. Devuelve nil, nil si no existe.
func (r *DeliveryRepo) GetByTransactionID(transactionID string) (*entity.Delivery, error) {
	query := `SELECT id, transaction_id, address, city, postal_code, phone, created_at FROM deliveries WHERE transaction_id = $1`
	var d entity.Delivery
	err := r.q.QueryRow(context.Background(), query, transactionID).Scan(
		&d.ID, &d.TransactionID, &d.Address, &d.City, &d.PostalCode, &d.Phone, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return &d, nil
}
