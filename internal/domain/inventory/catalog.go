package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// DiscountedProduct proyección de un producto con descuento aplicado al precio de venta.
type DiscountedProduct struct {
	entity.Product
	DiscountedSalePrice decimal.Decimal
	DiscountPct         decimal.Decimal
}

// ProjectDiscount devuelve sale_price * (1 - pct/100) para cada producto, sin modificar el catálogo.
func ProjectDiscount(products []entity.Product, pct decimal.Decimal) []DiscountedProduct {
	factor := decimal.NewFromInt(1).Sub(pct.Div(hundred))
	out := make([]DiscountedProduct, 0, len(products))
	for _, p := range products {
		out = append(out, DiscountedProduct{
			Product:             p,
			DiscountedSalePrice: p.SalePrice.Mul(factor),
			DiscountPct:         pct,
		})
	}
	return out
}

// FilterCritical devuelve los productos con stock < threshold, en el mismo orden.
func FilterCritical(products []entity.Product, threshold int) []entity.Product {
	out := make([]entity.Product, 0)
	for _, p := range products {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	return out
}

// TotalValue acumula purchase_price * stock sobre el catálogo.
func TotalValue(products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.InventoryValue())
	}
	return total
}
