package checkout_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/checkout-api/internal/application/checkout"
	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/internal/domain/payment"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
	"github.com/jhoicas/checkout-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products     map[string]*entity.Product
	customers    map[string]*entity.Customer
	transactions map[string]*entity.Transaction
	deliveries   map[string]*entity.Delivery // por transaction_id
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:     map[string]*entity.Product{},
		customers:    map[string]*entity.Customer{},
		transactions: map[string]*entity.Transaction{},
		deliveries:   map[string]*entity.Delivery{},
	}
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}
func (r *fakeProductRepo) DecrementStock(productID string, units int) error {
	p, ok := r.s.products[productID]
	if !ok || p.Stock < units {
		return domain.Conflict("product %s is not available: insufficient stock", productID)
	}
	p.Stock -= units
	return nil
}
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error)          { return nil, nil }
func (r *fakeProductRepo) ListAvailable(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) CountAll() (int, error)                                     { return len(r.s.products), nil }
func (r *fakeProductRepo) Delete(id string) error                                     { delete(r.s.products, id); return nil }

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

type fakeTxRepo struct{ s *fakeStore }

func (r *fakeTxRepo) Create(t *entity.Transaction) error {
	cp := *t
	r.s.transactions[t.ID] = &cp
	return nil
}
func (r *fakeTxRepo) GetByID(id string) (*entity.Transaction, error) {
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}
func (r *fakeTxRepo) GetByProviderID(providerID string) (*entity.Transaction, error) {
	for _, t := range r.s.transactions {
		if t.ProviderTransactionID == providerID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeTxRepo) Update(t *entity.Transaction) error {
	cp := *t
	r.s.transactions[t.ID] = &cp
	return nil
}
func (r *fakeTxRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.s.transactions {
		if t.CustomerID == customerID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

type fakeDeliveryRepo struct{ s *fakeStore }

func (r *fakeDeliveryRepo) Create(d *entity.Delivery) error {
	cp := *d
	r.s.deliveries[d.TransactionID] = &cp
	return nil
}
func (r *fakeDeliveryRepo) GetByTransactionID(transactionID string) (*entity.Delivery, error) {
	d, ok := r.s.deliveries[transactionID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

// fakeRunner ejecuta el callback directamente sobre los repos en memoria
// (sin semántica transaccional; los casos de uso no la distinguen).
type fakeRunner struct{ s *fakeStore }

func (r *fakeRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	deliveryRepo repository.DeliveryRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return fn(&fakeTxRepo{r.s}, &fakeDeliveryRepo{r.s}, &fakeProductRepo{r.s}, &fakeCustomerRepo{r.s})
}

// fakeGateway devuelve respuestas programadas.
type fakeGateway struct {
	resp      *payment.Response
	token     *payment.CardToken
	err       error
	statusErr error
	status    *payment.Response
	lastReq   payment.NewCardPayment
}

func (g *fakeGateway) GetAcceptanceToken(context.Context) (string, error) { return "tok-acc", nil }
func (g *fakeGateway) CreateCardToken(context.Context, payment.CardData) (*payment.CardToken, error) {
	return g.token, nil
}
func (g *fakeGateway) ProcessPayment(context.Context, payment.Request) (*payment.Response, error) {
	return g.resp, g.err
}
func (g *fakeGateway) GetTransactionStatus(context.Context, string) (*payment.Response, error) {
	return g.status, g.statusErr
}
func (g *fakeGateway) ProcessPaymentWithNewCard(_ context.Context, p payment.NewCardPayment) (*payment.Response, *payment.CardToken, error) {
	g.lastReq = p
	if g.err != nil {
		return nil, nil, g.err
	}
	return g.resp, g.token, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func seedProduct(s *fakeStore, id string, priceCOP int64, stock int) {
	s.products[id] = &entity.Product{
		ID:      id,
		Name:    "Producto " + id,
		Price:   decimal.NewFromInt(priceCOP),
		Stock:   stock,
		BaseFee: decimal.NewFromInt(35_000),
	}
}

func validCreateRequest(productID string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		ProductID: productID,
		Customer: dto.CustomerInput{
			Name:  "Juan Pérez",
			Email: "juan@example.com",
			Phone: "+57 300 123 4567",
		},
		Delivery: dto.DeliveryInput{
			Address:    "Calle 123 #45-67",
			City:       "Bogotá",
			PostalCode: "110111",
		},
	}
}

const deliveryFee = 5_000.0

func buildCreateUC(s *fakeStore) *checkout.CreateTransactionUseCase {
	return checkout.NewCreateTransactionUseCase(
		&fakeRunner{s}, &fakeProductRepo{s}, &fakeCustomerRepo{s}, deliveryFee, testLogger())
}

func buildPaymentUC(s *fakeStore, gw payment.Gateway) *checkout.ProcessPaymentUseCase {
	return checkout.NewProcessPaymentUseCase(
		&fakeRunner{s}, &fakeTxRepo{s}, &fakeCustomerRepo{s}, gw, "COP", testLogger())
}

func createPendingTx(t *testing.T, s *fakeStore) dto.TransactionResponse {
	t.Helper()
	out, err := buildCreateUC(s).Execute(context.Background(), validCreateRequest("prod-1"))
	require.NoError(t, err)
	return *out
}

func validPaymentRequest() dto.PaymentRequest {
	return dto.PaymentRequest{
		Card: dto.CardInput{
			Number: "4242424242424242", CVC: "123",
			ExpMonth: "12", ExpYear: "29", CardHolder: "Juan Pérez",
		},
		Installments: 1,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de la transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTransaction_Exitosa(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)

	out, err := buildCreateUC(s).Execute(context.Background(), validCreateRequest("prod-1"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusPending), out.Status)
	assert.True(t, out.IsPending)
	assert.False(t, out.IsCompleted)
	assert.False(t, out.IsFailed)
	assert.InDelta(t, 1_190_000.0, out.TotalAmount, 1e-9)
	assert.Equal(t, "$ 1.190.000", out.FormattedTotal)

	// Se persistieron transacción, entrega y comprador en el mismo Run.
	assert.Len(t, s.transactions, 1)
	assert.Len(t, s.customers, 1)
	require.Contains(t, s.deliveries, out.ID)
	assert.Equal(t, "Bogotá", s.deliveries[out.ID].City)

	// Crear no toca el stock: solo el pago aprobado lo descuenta.
	assert.Equal(t, 10, s.products["prod-1"].Stock)
}

func TestCreateTransaction_ProductoInexistente(t *testing.T) {
	s := newFakeStore()

	_, err := buildCreateUC(s).Execute(context.Background(), validCreateRequest("nope"))
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestCreateTransaction_SinStock(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 0)

	_, err := buildCreateUC(s).Execute(context.Background(), validCreateRequest("prod-1"))
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Contains(t, err.Error(), "not available")
}

func TestCreateTransaction_CompradorInvalido(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)

	in := validCreateRequest("prod-1")
	in.Customer.Phone = "3001234567" // sin prefijo +57
	_, err := buildCreateUC(s).Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

func TestCreateTransaction_CompradorRecurrenteNoSeDuplica(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	uc := buildCreateUC(s)

	first, err := uc.Execute(context.Background(), validCreateRequest("prod-1"))
	require.NoError(t, err)

	in := validCreateRequest("prod-1")
	in.Customer.Email = "  JUAN@example.com " // mismo email, distinta forma
	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Len(t, s.customers, 1, "el comprador se identifica por email normalizado")
	assert.Equal(t, first.CustomerID, second.CustomerID)
}

func TestCreateTransaction_CompradorRecurrenteRefrescaContacto(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	uc := buildCreateUC(s)

	first, err := uc.Execute(context.Background(), validCreateRequest("prod-1"))
	require.NoError(t, err)

	in := validCreateRequest("prod-1")
	in.Customer.Phone = "+57 310 999 8877"
	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	require.Equal(t, first.CustomerID, second.CustomerID)
	assert.Equal(t, "+57 310 999 8877", s.customers[first.CustomerID].Phone,
		"el teléfono nuevo queda persistido junto con la compra")
}

func TestCreateTransaction_SinDireccion(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)

	in := validCreateRequest("prod-1")
	in.Delivery.Address = "  "
	_, err := buildCreateUC(s).Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Pago
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessPayment_Aprobado(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	gw := &fakeGateway{
		resp:  &payment.Response{ProviderID: "wompi-1", Status: payment.StatusApproved, Reference: "ref-1"},
		token: &payment.CardToken{ID: "tok_card_1", Brand: "VISA", LastFour: "4242"},
	}

	out, err := buildPaymentUC(s, gw).Execute(context.Background(), created.ID, validPaymentRequest())
	require.NoError(t, err)

	assert.Equal(t, payment.StatusApproved, out.GatewayStatus)
	assert.Equal(t, string(entity.StatusCompleted), out.Transaction.Status)
	assert.True(t, out.Transaction.IsCompleted)
	assert.False(t, out.Transaction.IsPending)
	assert.Equal(t, "wompi-1", out.Transaction.ProviderTransactionID)
	assert.Equal(t, "4242", out.Transaction.CardLastFour)
	assert.NotNil(t, out.Transaction.CompletedAt)

	// El monto viaja en centavos a la pasarela.
	assert.Equal(t, int64(119_000_000), gw.lastReq.AmountInCents)

	// Stock descontado junto con la transición, y estado persistido.
	assert.Equal(t, 9, s.products["prod-1"].Stock)
	assert.Equal(t, entity.StatusCompleted, s.transactions[created.ID].Status)
}

func TestProcessPayment_Declinado(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	gw := &fakeGateway{
		resp:  &payment.Response{ProviderID: "wompi-2", Status: payment.StatusDeclined, StatusMessage: "insufficient funds"},
		token: &payment.CardToken{ID: "tok_card_2", Brand: "VISA", LastFour: "1111"},
	}

	out, err := buildPaymentUC(s, gw).Execute(context.Background(), created.ID, validPaymentRequest())
	require.NoError(t, err, "un rechazo del proveedor no es un error de la operación")

	assert.Equal(t, string(entity.StatusFailed), out.Transaction.Status)
	assert.True(t, out.Transaction.IsFailed)
	assert.Equal(t, "insufficient funds", out.Transaction.StatusMessage)
	assert.Equal(t, 10, s.products["prod-1"].Stock, "un pago rechazado no toca el stock")
}

// Un error estructurado del proveedor llega como Status=ERROR y también
// termina en FAILED, conservando el mensaje.
func TestProcessPayment_ErrorDelProveedor(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	gw := &fakeGateway{
		resp:  &payment.Response{Status: payment.StatusError, StatusMessage: "invalid acceptance token"},
		token: &payment.CardToken{ID: "tok_card_3", Brand: "VISA", LastFour: "4242"},
	}

	out, err := buildPaymentUC(s, gw).Execute(context.Background(), created.ID, validPaymentRequest())
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusFailed), out.Transaction.Status)
	assert.Equal(t, "invalid acceptance token", out.Transaction.StatusMessage)
}

func TestProcessPayment_PendienteEnElProveedor(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	gw := &fakeGateway{
		resp:  &payment.Response{ProviderID: "wompi-4", Status: payment.StatusPending},
		token: &payment.CardToken{ID: "tok_card_4", Brand: "VISA", LastFour: "4242"},
	}

	out, err := buildPaymentUC(s, gw).Execute(context.Background(), created.ID, validPaymentRequest())
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusPending), out.Transaction.Status)
	assert.Equal(t, "wompi-4", out.Transaction.ProviderTransactionID, "los datos del proveedor quedan registrados para el sync")
	assert.Equal(t, 10, s.products["prod-1"].Stock)
}

func TestProcessPayment_TransaccionInexistente(t *testing.T) {
	s := newFakeStore()
	gw := &fakeGateway{}

	_, err := buildPaymentUC(s, gw).Execute(context.Background(), "nope", validPaymentRequest())
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestProcessPayment_EstadoNoPendiente(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	gw := &fakeGateway{
		resp:  &payment.Response{ProviderID: "wompi-1", Status: payment.StatusApproved},
		token: &payment.CardToken{ID: "tok", Brand: "VISA", LastFour: "4242"},
	}
	uc := buildPaymentUC(s, gw)
	_, err := uc.Execute(context.Background(), created.ID, validPaymentRequest())
	require.NoError(t, err)

	// Segundo intento sobre una transacción ya COMPLETED.
	_, err = uc.Execute(context.Background(), created.ID, validPaymentRequest())
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Contains(t, err.Error(), "cannot be paid")
}

func TestProcessPayment_MontoInconsistente(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	// Corromper el total almacenado más allá de la tolerancia.
	tx := s.transactions[created.ID]
	tx.TotalAmount += 0.02

	gw := &fakeGateway{}
	_, err := buildPaymentUC(s, gw).Execute(context.Background(), created.ID, validPaymentRequest())
	require.Error(t, err)
	assert.Equal(t, domain.KindUnprocessable, domain.KindOf(err))
}

func TestProcessPayment_FallaDeTransporte(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	gw := &fakeGateway{err: errors.New("dial tcp: connection refused")}
	_, err := buildPaymentUC(s, gw).Execute(context.Background(), created.ID, validPaymentRequest())
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))

	// La transacción sigue PENDING: se puede reintentar el pago.
	assert.Equal(t, entity.StatusPending, s.transactions[created.ID].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sincronización con la pasarela
// ──────────────────────────────────────────────────────────────────────────────

func buildSyncUC(s *fakeStore, gw payment.Gateway) *checkout.SyncStatusUseCase {
	return checkout.NewSyncStatusUseCase(&fakeRunner{s}, &fakeTxRepo{s}, gw, testLogger())
}

func TestSyncStatus_PendingAprobadoDescuentaStock(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	// Primer envío quedó PENDING en el proveedor.
	gwPay := &fakeGateway{
		resp:  &payment.Response{ProviderID: "wompi-7", Status: payment.StatusPending},
		token: &payment.CardToken{ID: "tok", Brand: "VISA", LastFour: "4242"},
	}
	_, err := buildPaymentUC(s, gwPay).Execute(context.Background(), created.ID, validPaymentRequest())
	require.NoError(t, err)

	// El sync encuentra el pago ya aprobado.
	gwSync := &fakeGateway{status: &payment.Response{ProviderID: "wompi-7", Status: payment.StatusApproved}}
	out, err := buildSyncUC(s, gwSync).Execute(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusCompleted), out.Status)
	assert.Equal(t, 9, s.products["prod-1"].Stock)
}

func TestSyncStatus_SinEnvioPrevio(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	gw := &fakeGateway{}
	_, err := buildSyncUC(s, gw).Execute(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Contains(t, err.Error(), "has not been submitted")
}

// Vía de reintento: un envío que localmente quedó FAILED por un ERROR
// transitorio puede volver a PENDING si el proveedor lo reporta así.
func TestSyncStatus_FailedVuelveAPending(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	gwPay := &fakeGateway{
		resp:  &payment.Response{ProviderID: "wompi-8", Status: payment.StatusError, StatusMessage: "gateway timeout"},
		token: &payment.CardToken{ID: "tok", Brand: "VISA", LastFour: "4242"},
	}
	_, err := buildPaymentUC(s, gwPay).Execute(context.Background(), created.ID, validPaymentRequest())
	require.NoError(t, err)
	require.Equal(t, entity.StatusFailed, s.transactions[created.ID].Status)

	gwSync := &fakeGateway{status: &payment.Response{ProviderID: "wompi-8", Status: payment.StatusPending}}
	out, err := buildSyncUC(s, gwSync).Execute(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusPending), out.Status)
}

func TestSyncStatus_IdempotenteSobreCompleted(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	gwPay := &fakeGateway{
		resp:  &payment.Response{ProviderID: "wompi-9", Status: payment.StatusApproved},
		token: &payment.CardToken{ID: "tok", Brand: "VISA", LastFour: "4242"},
	}
	_, err := buildPaymentUC(s, gwPay).Execute(context.Background(), created.ID, validPaymentRequest())
	require.NoError(t, err)

	gwSync := &fakeGateway{status: &payment.Response{ProviderID: "wompi-9", Status: payment.StatusApproved}}
	out, err := buildSyncUC(s, gwSync).Execute(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusCompleted), out.Status)
	assert.Equal(t, 9, s.products["prod-1"].Stock, "el stock no se descuenta dos veces")
}

// ──────────────────────────────────────────────────────────────────────────────
// Detalle
// ──────────────────────────────────────────────────────────────────────────────

func TestGetTransaction_ConEntrega(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)

	uc := checkout.NewGetTransactionUseCase(&fakeTxRepo{s}, &fakeDeliveryRepo{s}, &fakeCustomerRepo{s})
	out, err := uc.Execute(created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, out.Transaction.ID)
	require.NotNil(t, out.Delivery)
	assert.Equal(t, "Calle 123 #45-67", out.Delivery.Address)
}

func TestGetTransaction_Inexistente(t *testing.T) {
	s := newFakeStore()
	uc := checkout.NewGetTransactionUseCase(&fakeTxRepo{s}, &fakeDeliveryRepo{s}, &fakeCustomerRepo{s})

	_, err := uc.Execute("nope")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestListByCustomerEmail(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	createPendingTx(t, s)
	createPendingTx(t, s)

	uc := checkout.NewGetTransactionUseCase(&fakeTxRepo{s}, &fakeDeliveryRepo{s}, &fakeCustomerRepo{s})

	// El email se normaliza igual que al crear el comprador.
	out, err := uc.ListByCustomerEmail("  JUAN@example.com ", 0, 0)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = uc.ListByCustomerEmail("nadie@example.com", 0, 0)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = uc.ListByCustomerEmail("   ", 0, 0)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Webhook de la pasarela
// ──────────────────────────────────────────────────────────────────────────────

func buildEventUC(s *fakeStore, gw payment.Gateway) *checkout.ProviderEventUseCase {
	return checkout.NewProviderEventUseCase(&fakeRunner{s}, &fakeTxRepo{s}, gw, testLogger())
}

// submitPendingAtProvider deja la transacción PENDING con el pago enviado al
// proveedor bajo el id dado.
func submitPendingAtProvider(t *testing.T, s *fakeStore, txID, providerID string) {
	t.Helper()
	gwPay := &fakeGateway{
		resp:  &payment.Response{ProviderID: providerID, Status: payment.StatusPending},
		token: &payment.CardToken{ID: "tok", Brand: "VISA", LastFour: "4242"},
	}
	_, err := buildPaymentUC(s, gwPay).Execute(context.Background(), txID, validPaymentRequest())
	require.NoError(t, err)
}

func TestProviderEvent_AprobadoDescuentaStock(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)
	submitPendingAtProvider(t, s, created.ID, "wompi-10")

	// La pasarela confirma el pago aprobado cuando se consulta.
	uc := buildEventUC(s, &fakeGateway{
		status: &payment.Response{ProviderID: "wompi-10", Status: payment.StatusApproved},
	})
	out, err := uc.Execute(context.Background(), "wompi-10")
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusCompleted), out.Status)
	assert.True(t, out.IsCompleted)
	assert.Equal(t, 9, s.products["prod-1"].Stock)

	// El proveedor reintenta la entrega del evento: sin doble descuento.
	again, err := uc.Execute(context.Background(), "wompi-10")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusCompleted), again.Status)
	assert.Equal(t, 9, s.products["prod-1"].Stock)
}

// El endpoint del webhook es público: un POST forjado que afirma APPROVED no
// puede completar la transacción, porque el estado se confirma con la
// pasarela y no con el cuerpo del evento.
func TestProviderEvent_EventoForjadoNoCompleta(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)
	submitPendingAtProvider(t, s, created.ID, "wompi-x")

	// La pasarela sigue reportando PENDING: no hubo pago real.
	uc := buildEventUC(s, &fakeGateway{
		status: &payment.Response{ProviderID: "wompi-x", Status: payment.StatusPending},
	})
	out, err := uc.Execute(context.Background(), "wompi-x")
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusPending), out.Status)
	assert.False(t, out.IsCompleted)
	assert.Equal(t, 10, s.products["prod-1"].Stock, "sin confirmación de la pasarela no se descuenta stock")
	assert.Equal(t, entity.StatusPending, s.transactions[created.ID].Status)
}

func TestProviderEvent_FallaAlConfirmarNoAsienta(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-1", 1_150_000, 10)
	created := createPendingTx(t, s)
	submitPendingAtProvider(t, s, created.ID, "wompi-11")

	uc := buildEventUC(s, &fakeGateway{statusErr: errors.New("dial tcp: connection refused")})
	_, err := uc.Execute(context.Background(), "wompi-11")
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	assert.Equal(t, entity.StatusPending, s.transactions[created.ID].Status)
}

func TestProviderEvent_TransaccionDesconocida(t *testing.T) {
	s := newFakeStore()
	uc := buildEventUC(s, &fakeGateway{})

	_, err := uc.Execute(context.Background(), "wompi-fantasma")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = uc.Execute(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}
