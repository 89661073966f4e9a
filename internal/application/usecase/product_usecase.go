// Package usecase contiene los casos de uso del catálogo de productos.
package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
)

// maxPageSize tope de página del catálogo.
const maxPageSize = 100

// ProductUseCase casos de uso del catálogo: listado público paginado y
// gestión admin (crear/actualizar).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// ListProducts lista el catálogo. Con limit <= 0 devuelve todo lo que queda
// desde offset y hasMore siempre es false; con limit explícito se recorta a
// maxPageSize y hasMore indica si quedan filas después de la página.
// onlyAvailable filtra los productos sin stock; Total siempre es el tamaño
// del catálogo completo.
func (uc *ProductUseCase) ListProducts(limit, offset int, onlyAvailable bool) (*dto.ProductListResponse, error) {
	if offset < 0 {
		offset = 0
	}
	total, err := uc.repo.CountAll()
	if err != nil {
		return nil, wrapInternal("count products", err)
	}

	lister := uc.repo.List
	if onlyAvailable {
		lister = uc.repo.ListAvailable
	}

	var products []*entity.Product
	hasMore := false
	if limit <= 0 {
		limit = total - offset
		if limit < 0 {
			limit = 0
		}
		products, err = lister(limit, offset)
	} else {
		if limit > maxPageSize {
			limit = maxPageSize
		}
		// Se pide una fila extra para saber si hay página siguiente sin un
		// segundo COUNT sobre el filtro.
		products, err = lister(limit+1, offset)
		if err == nil && len(products) > limit {
			hasMore = true
			products = products[:limit]
		}
	}
	if err != nil {
		return nil, wrapInternal("list products", err)
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Pagination: dto.Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
		},
	}, nil
}

// GetProduct obtiene un producto por ID.
func (uc *ProductUseCase) GetProduct(id string) (*dto.ProductResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.InvalidInput("product id is required")
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, wrapInternal("load product", err)
	}
	if p == nil {
		return nil, domain.NotFound("Product %s not found", id)
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// CreateProduct alta de producto (panel admin).
func (uc *ProductUseCase) CreateProduct(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return nil, domain.InvalidInput("product name must have at least 2 characters")
	}
	if !in.Price.IsPositive() {
		return nil, domain.InvalidInput("product price must be greater than zero")
	}
	if in.Stock < 0 {
		return nil, domain.InvalidInput("product stock cannot be negative")
	}
	if in.BaseFee.IsNegative() {
		return nil, domain.InvalidInput("product base fee cannot be negative")
	}

	now := time.Now()
	p := &entity.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Stock:       in.Stock,
		BaseFee:     in.BaseFee,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, wrapInternal("create product", err)
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// UpdateProduct actualización parcial de producto (panel admin). El stock no
// se toca por aquí: solo lo mueve el descuento atómico del pago aprobado.
func (uc *ProductUseCase) UpdateProduct(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, wrapInternal("load product", err)
	}
	if p == nil {
		return nil, domain.NotFound("Product %s not found", id)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 2 {
			return nil, domain.InvalidInput("product name must have at least 2 characters")
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, domain.InvalidInput("product price must be greater than zero")
		}
		p.Price = *in.Price
	}
	if in.BaseFee != nil {
		if in.BaseFee.IsNegative() {
			return nil, domain.InvalidInput("product base fee cannot be negative")
		}
		p.BaseFee = *in.BaseFee
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(p); err != nil {
		return nil, wrapInternal("update product", err)
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// DeleteProduct retira un producto del catálogo (panel admin).
func (uc *ProductUseCase) DeleteProduct(id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return wrapInternal("load product", err)
	}
	if p == nil {
		return domain.NotFound("Product %s not found", id)
	}
	if err := uc.repo.Delete(id); err != nil {
		return wrapInternal("delete product", err)
	}
	return nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		BaseFee:     p.BaseFee,
		ImageURL:    p.ImageURL,
		Available:   p.IsAvailable(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func wrapInternal(msg string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Internal(msg, err)
}
