package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterProductRequest body para POST /api/products.
// ReorderThreshold nil toma el umbral por defecto (5).
type RegisterProductRequest struct {
	SKU              string          `json:"sku" validate:"required,max=64"`
	Name             string          `json:"name" validate:"required,max=200"`
	Category         string          `json:"category" validate:"max=100"`
	Brand            string          `json:"brand" validate:"max=100"`
	PurchasePrice    decimal.Decimal `json:"purchase_price" swaggertype:"number"`
	SalePrice        decimal.Decimal `json:"sale_price" swaggertype:"number"`
	InitialStock     int             `json:"initial_stock" validate:"min=0"`
	ReorderThreshold *int            `json:"reorder_threshold,omitempty" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Brand            string          `json:"brand"`
	PurchasePrice    decimal.Decimal `json:"purchase_price" swaggertype:"number"`
	SalePrice        decimal.Decimal `json:"sale_price" swaggertype:"number"`
	Stock            int             `json:"stock"`
	ReorderThreshold int             `json:"reorder_threshold"`
	LowStock         bool            `json:"low_stock"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse resultado de búsqueda del catálogo.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// StockResponse salida de GET /api/products/:sku/stock.
type StockResponse struct {
	SKU   string `json:"sku"`
	Stock int    `json:"stock"`
}
