package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReorderThreshold umbral de reposición cuando el registro no indica uno.
const DefaultReorderThreshold = 5

// Product representa un producto del catálogo identificado por su SKU.
// El SKU es único e inmutable; Stock solo lo modifica el libro de movimientos y nunca es negativo.
type Product struct {
	SKU              string
	Name             string
	Category         string
	Brand            string
	PurchasePrice    decimal.Decimal // precio de compra
	SalePrice        decimal.Decimal // precio de venta
	Stock            int
	ReorderThreshold int // stock mínimo antes de generar alerta
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InventoryValue devuelve purchase_price * stock.
func (p Product) InventoryValue() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// IsLowStock indica si el stock está por debajo del umbral de reposición.
func (p Product) IsLowStock() bool {
	return p.Stock < p.ReorderThreshold
}
