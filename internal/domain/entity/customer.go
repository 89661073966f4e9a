package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/checkout-api/internal/domain"
)

// phoneRe formato móvil colombiano exigido por el checkout: +57 XXX XXX XXXX.
var phoneRe = regexp.MustCompile(`^\+57 \d{3} \d{3} \d{4}$`)

// Customer comprador del checkout. Inmutable tras construcción: los factories
// validan y normalizan; FromPersistence confía en lo almacenado.
type Customer struct {
	ID        string // vacío hasta persistir
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// NewCustomer valida y normaliza los datos del comprador.
// Normaliza: nombre con trim, email en minúsculas.
func NewCustomer(name, email, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, domain.InvalidInput("customer name must have at least 2 characters")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	c := &Customer{
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now(),
	}
	if !c.IsValidEmail() {
		return nil, domain.InvalidInput("customer email %q is invalid", email)
	}
	if !c.IsValidPhone() {
		return nil, domain.InvalidInput("customer phone must match +57 XXX XXX XXXX format")
	}
	return c, nil
}

// CustomerFromPersistence reconstruye el cliente desde la fila almacenada sin re-validar.
func CustomerFromPersistence(id, name, email, phone string, createdAt time.Time) *Customer {
	return &Customer{ID: id, Name: name, Email: email, Phone: phone, CreatedAt: createdAt}
}

// IsValidEmail chequeo de forma local@dominio.tld: parte local no vacía,
// un solo "@" y dominio con al menos un punto interior.
func (c *Customer) IsValidEmail() bool {
	parts := strings.Split(c.Email, "@")
	if len(parts) != 2 {
		return false
	}
	local, host := parts[0], parts[1]
	if local == "" {
		return false
	}
	dot := strings.LastIndex(host, ".")
	return dot > 0 && dot < len(host)-1
}

// IsValidPhone valida el formato móvil colombiano +57 DDD DDD DDDD.
func (c *Customer) IsValidPhone() bool {
	return phoneRe.MatchString(c.Phone)
}

// MaskedEmail enmascara el interior de la parte local conservando primer y último
// carácter ("juan" -> "j**n"). Partes locales de 2 caracteres o menos se dejan intactas.
func (c *Customer) MaskedEmail() string {
	at := strings.Index(c.Email, "@")
	if at < 0 {
		return c.Email
	}
	local := c.Email[:at]
	if len(local) <= 2 {
		return c.Email
	}
	masked := local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:]
	return masked + c.Email[at:]
}
