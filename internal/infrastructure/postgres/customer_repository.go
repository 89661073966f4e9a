package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("customer with email %s already exists", customer.Email)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve nil, nil si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.get(`SELECT id, name, email, phone, created_at FROM customers WHERE id = $1`, id)
}

// GetByEmail obtiene un cliente por email (normalizado en minúsculas al crear).
func (r *CustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	return r.get(`SELECT id, name, email, phone, created_at FROM customers WHERE email = $1`, email)
}

func (r *CustomerRepo) get(query, arg string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Update actualiza nombre y teléfono de un cliente existente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE customers SET name = $2, phone = $3 WHERE id = $1`,
		customer.ID, customer.Name, customer.Phone,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}
