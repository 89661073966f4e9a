package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (panel admin).
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	BaseFee     decimal.Decimal `json:"base_fee"`
	ImageURL    string          `json:"image_url"`
}

// UpdateProductRequest entrada para actualizar un producto (sin tocar stock).
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	BaseFee     *decimal.Decimal `json:"base_fee"`
	ImageURL    *string          `json:"image_url"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	BaseFee     decimal.Decimal `json:"base_fee"`
	ImageURL    string          `json:"image_url"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Pagination Pagination        `json:"pagination"`
}
