package checkout

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
	"github.com/jhoicas/checkout-api/pkg/logger"
)

// CreateTransactionUseCase crea una transacción PENDING con su comprador y
// datos de entrega en una sola operación atómica.
type CreateTransactionUseCase struct {
	runner       TxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	deliveryFee  float64
	log          *logger.Logger
}

// NewCreateTransactionUseCase construye el caso de uso.
func NewCreateTransactionUseCase(
	runner TxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	deliveryFee float64,
	log *logger.Logger,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		runner:       runner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		deliveryFee:  deliveryFee,
		log:          log.Component("checkout"),
	}
}

// Execute valida producto, comprador y entrega, y persiste la transacción
// PENDING junto con la entrega (y el comprador si es nuevo) en una sola
// transacción de base de datos.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.InvalidInput("product_id is required")
	}
	if strings.TrimSpace(in.Delivery.Address) == "" {
		return nil, domain.InvalidInput("delivery address is required")
	}
	if strings.TrimSpace(in.Delivery.City) == "" {
		return nil, domain.InvalidInput("delivery city is required")
	}

	// Valida y normaliza siempre los datos del comprador, exista o no.
	candidate, err := entity.NewCustomer(in.Customer.Name, in.Customer.Email, in.Customer.Phone)
	if err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, wrapInternal("load product", err)
	}
	if product == nil {
		return nil, domain.NotFound("Product %s not found", in.ProductID)
	}
	if !product.IsAvailable() {
		return nil, domain.Conflict("Product %s is not available: out of stock", product.ID)
	}

	// Compradores recurrentes se identifican por email normalizado.
	customer, err := uc.customerRepo.GetByEmail(candidate.Email)
	if err != nil {
		return nil, wrapInternal("load customer", err)
	}
	newCustomer := customer == nil
	customerChanged := false
	if newCustomer {
		candidate.ID = uuid.NewString()
		customer = candidate
	} else if customer.Name != candidate.Name || customer.Phone != candidate.Phone {
		// Un comprador recurrente puede llegar con teléfono o nombre nuevos;
		// se refrescan sus datos de contacto junto con la compra.
		customer.Name = candidate.Name
		customer.Phone = candidate.Phone
		customerChanged = true
	}

	tx := entity.NewTransaction(
		customer.ID, product.ID,
		product.Price.InexactFloat64(), product.BaseFee.InexactFloat64(), uc.deliveryFee,
		entity.PaymentCreditCard,
	)
	tx.ID = uuid.NewString()

	delivery := entity.Delivery{
		ID:            uuid.NewString(),
		TransactionID: tx.ID,
		Address:       strings.TrimSpace(in.Delivery.Address),
		City:          strings.TrimSpace(in.Delivery.City),
		PostalCode:    strings.TrimSpace(in.Delivery.PostalCode),
		Phone:         strings.TrimSpace(in.Delivery.Phone),
		CreatedAt:     tx.CreatedAt,
	}

	err = uc.runner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		deliveryRepo repository.DeliveryRepository,
		_ repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if newCustomer {
			if err := customerRepo.Create(customer); err != nil {
				return err
			}
		} else if customerChanged {
			if err := customerRepo.Update(customer); err != nil {
				return err
			}
		}
		if err := txRepo.Create(&tx); err != nil {
			return err
		}
		return deliveryRepo.Create(&delivery)
	})
	if err != nil {
		return nil, wrapInternal("create transaction", err)
	}

	uc.log.Info().
		Str("transaction_id", tx.ID).
		Str("product_id", product.ID).
		Str("customer_email", customer.MaskedEmail()).
		Float64("total_amount", tx.TotalAmount).
		Msg("transacción creada")

	resp := toTransactionResponse(tx)
	return &resp, nil
}
