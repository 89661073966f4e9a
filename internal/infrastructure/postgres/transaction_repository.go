package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// Los opcionales de proveedor se almacenan NULL hasta el primer envío;
// COALESCE los mapea al cero de la entidad al reconstruir.
const transactionColumns = `
	id, customer_id, product_id, product_amount, base_fee, delivery_fee, total_amount,
	status, payment_method,
	COALESCE(provider_transaction_id, ''), COALESCE(provider_reference, ''),
	COALESCE(card_last_four, ''), COALESCE(card_brand, ''), COALESCE(status_message, ''),
	created_at, updated_at, completed_at`

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de persistencia para transacciones. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una nueva transacción.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, customer_id, product_id, product_amount, base_fee, delivery_fee, total_amount,
			status, payment_method, provider_transaction_id, provider_reference,
			card_last_four, card_brand, status_message, created_at, updated_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.CustomerID, t.ProductID, t.ProductAmount, t.BaseFee, t.DeliveryFee, t.TotalAmount,
		string(t.Status), string(t.PaymentMethod),
		nullable(t.ProviderTransactionID), nullable(t.ProviderReference),
		nullable(t.CardLastFour), nullable(t.CardBrand), nullable(t.StatusMessage),
		t.CreatedAt, t.UpdatedAt, t.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID. Devuelve nil, nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	return r.get(`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
}

// GetByProviderID obtiene una transacción por el id asignado por la pasarela.
func (r *TransactionRepo) GetByProviderID(providerID string) (*entity.Transaction, error) {
	return r.get(`SELECT `+transactionColumns+` FROM transactions WHERE provider_transaction_id = $1`, providerID)
}

func (r *TransactionRepo) get(query, arg string) (*entity.Transaction, error) {
	var t entity.Transaction
	var status, method string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&t.ID, &t.CustomerID, &t.ProductID, &t.ProductAmount, &t.BaseFee, &t.DeliveryFee, &t.TotalAmount,
		&status, &method,
		&t.ProviderTransactionID, &t.ProviderReference,
		&t.CardLastFour, &t.CardBrand, &t.StatusMessage,
		&t.CreatedAt, &t.UpdatedAt, &t.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	t = entity.TransactionFromPersistence(t, status)
	t.PaymentMethod = entity.PaymentMethod(method)
	return &t, nil
}

// Update persiste el resultado de una transición de estado.
func (r *TransactionRepo) Update(t *entity.Transaction) error {
	query := `
		UPDATE transactions SET
			status = $2, provider_transaction_id = $3, provider_reference = $4,
			card_last_four = $5, card_brand = $6, status_message = $7,
			updated_at = $8, completed_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, string(t.Status),
		nullable(t.ProviderTransactionID), nullable(t.ProviderReference),
		nullable(t.CardLastFour), nullable(t.CardBrand), nullable(t.StatusMessage),
		t.UpdatedAt, t.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// ListByCustomer lista las transacciones de un cliente, más recientes primero.
func (r *TransactionRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		var status, method string
		if err := rows.Scan(
			&t.ID, &t.CustomerID, &t.ProductID, &t.ProductAmount, &t.BaseFee, &t.DeliveryFee, &t.TotalAmount,
			&status, &method,
			&t.ProviderTransactionID, &t.ProviderReference,
			&t.CardLastFour, &t.CardBrand, &t.StatusMessage,
			&t.CreatedAt, &t.UpdatedAt, &t.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t = entity.TransactionFromPersistence(t, status)
		t.PaymentMethod = entity.PaymentMethod(method)
		list = append(list, &t)
	}
	return list, rows.Err()
}

// nullable convierte "" en NULL para columnas de texto opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
