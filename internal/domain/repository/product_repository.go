package repository

import "github.com/jhoicas/checkout-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// DecrementStock descuenta unidades de forma atómica; falla si el stock quedaría negativo.
	DecrementStock(productID string, units int) error
	// List pagina el catálogo completo; CountAll soporta el cálculo de hasMore.
	List(limit, offset int) ([]*entity.Product, error)
	ListAvailable(limit, offset int) ([]*entity.Product, error)
	CountAll() (int, error)
	Delete(id string) error
}
