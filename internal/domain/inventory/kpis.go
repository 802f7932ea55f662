package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// KPIs indicadores clave calculados sobre un snapshot del catálogo.
type KPIs struct {
	TotalItems     int
	TotalValue     float64 // Σ purchase_price * stock
	LowStockAlerts int     // productos con stock < reorder_threshold
}

// CategoryStats agregados de una categoría.
type CategoryStats struct {
	Count                int
	TotalStock           int
	AveragePurchasePrice float64
	TotalValue           float64
}

// ComputeKPIs agrega el snapshot. Un catálogo vacío produce todos los campos en cero.
func ComputeKPIs(products []entity.Product) KPIs {
	total := decimal.Zero
	alerts := 0
	for _, p := range products {
		total = total.Add(p.InventoryValue())
		if p.IsLowStock() {
			alerts++
		}
	}
	return KPIs{
		TotalItems:     len(products),
		TotalValue:     total.InexactFloat64(),
		LowStockAlerts: alerts,
	}
}

// GroupByCategory agrupa por categoría; los productos sin categoría quedan fuera.
func GroupByCategory(products []entity.Product) map[string]CategoryStats {
	type acc struct {
		count, stock int
		priceSum     decimal.Decimal
		value        decimal.Decimal
	}
	groups := make(map[string]*acc)
	for _, p := range products {
		if strings.TrimSpace(p.Category) == "" {
			continue
		}
		g, ok := groups[p.Category]
		if !ok {
			g = &acc{}
			groups[p.Category] = g
		}
		g.count++
		g.stock += p.Stock
		g.priceSum = g.priceSum.Add(p.PurchasePrice)
		g.value = g.value.Add(p.InventoryValue())
	}

	out := make(map[string]CategoryStats, len(groups))
	for cat, g := range groups {
		out[cat] = CategoryStats{
			Count:                g.count,
			TotalStock:           g.stock,
			AveragePurchasePrice: g.priceSum.Div(decimal.NewFromInt(int64(g.count))).InexactFloat64(),
			TotalValue:           g.value.InexactFloat64(),
		}
	}
	return out
}
