// Package receipt genera el comprobante PDF de una transacción completada.
package receipt

import (
	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
)

// Data datos resueltos para el comprobante.
type Data struct {
	Transaction entity.Transaction
	Customer    entity.Customer
	Product     entity.Product
	Delivery    *entity.Delivery
}

// Generator puerto hacia el generador de PDF (infrastructure/pdf).
type Generator interface {
	GenerateReceipt(data Data) ([]byte, error)
}

// UseCase arma los datos del comprobante y delega el render.
type UseCase struct {
	txRepo       repository.TransactionRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	deliveryRepo repository.DeliveryRepository
	gen          Generator
}

// New construye el caso de uso.
func New(
	txRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	deliveryRepo repository.DeliveryRepository,
	gen Generator,
) *UseCase {
	return &UseCase{
		txRepo:       txRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		deliveryRepo: deliveryRepo,
		gen:          gen,
	}
}

// Execute genera el PDF del comprobante. Solo transacciones COMPLETED tienen comprobante.
func (uc *UseCase) Execute(transactionID string) ([]byte, error) {
	t, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, domain.Internal("load transaction", err)
	}
	if t == nil {
		return nil, domain.NotFound("Transaction %s not found", transactionID)
	}
	if t.Status != entity.StatusCompleted {
		return nil, domain.Conflict("Transaction %s has no receipt (current status %s)", t.ID, t.Status)
	}

	customer, err := uc.customerRepo.GetByID(t.CustomerID)
	if err != nil {
		return nil, domain.Internal("load customer", err)
	}
	if customer == nil {
		return nil, domain.NotFound("Customer %s not found", t.CustomerID)
	}
	product, err := uc.productRepo.GetByID(t.ProductID)
	if err != nil {
		return nil, domain.Internal("load product", err)
	}
	if product == nil {
		return nil, domain.NotFound("Product %s not found", t.ProductID)
	}
	delivery, err := uc.deliveryRepo.GetByTransactionID(t.ID)
	if err != nil {
		return nil, domain.Internal("load delivery", err)
	}

	pdf, err := uc.gen.GenerateReceipt(Data{
		Transaction: *t,
		Customer:    *customer,
		Product:     *product,
		Delivery:    delivery,
	})
	if err != nil {
		return nil, domain.Internal("generate receipt pdf", err)
	}
	return pdf, nil
}
