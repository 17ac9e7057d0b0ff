package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	SKU           string `json:"sku_code" validate:"required,min=1,max=100"`
	CategoryID    string `json:"category_id" validate:"required,uuid"`
	UnitOfMeasure string `json:"unit_of_measure" validate:"required"`
	InitialStock  int64  `json:"initial_stock"`
	ReorderPoint  int64  `json:"reorder_point"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost ni Stock).
type UpdateProductRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	SKU           *string `json:"sku_code"`
	CategoryID    *string `json:"category_id"`
	UnitOfMeasure *string `json:"unit_of_measure"`
	InitialStock  *int64  `json:"initial_stock"`
	ReorderPoint  *int64  `json:"reorder_point"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	SKU           string            `json:"sku_code"`
	CategoryID    string            `json:"category_id"`
	Category      *CategoryResponse `json:"category,omitempty"`
	UnitOfMeasure string            `json:"unit_of_measure"`
	InitialStock  int64             `json:"initial_stock"`
	ReorderPoint  int64             `json:"reorder_point"`
	Cost          decimal.Decimal   `json:"cost"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductListRequest query de GET /api/products.
type ProductListRequest struct {
	CategoryID string `query:"category_id"`
	SKU        string `query:"sku_code"`
	Search     string `query:"search"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}
