package repository

import "github.com/jhoicas/checkout-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia para Transaction.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	GetByProviderID(providerID string) (*entity.Transaction, error)
	Update(tx *entity.Transaction) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Transaction, error)
}

// DeliveryRepository define el puerto de persistencia para Delivery (1:1 con la transacción).
type DeliveryRepository interface {
	Create(d *entity.Delivery) error
	GetByTransactionID(transactionID string) (*entity.Delivery, error)
}
