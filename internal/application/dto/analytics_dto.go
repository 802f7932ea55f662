package dto

import "github.com/shopspring/decimal"

// ── KPIs ──────────────────────────────────────────────────────────────────────

// KPIsResponse indicadores del catálogo. Todo en cero si está vacío.
type KPIsResponse struct {
	TotalItems     int     `json:"total_items"`
	TotalValue     float64 `json:"total_value"`      // Σ purchase_price * stock
	LowStockAlerts int     `json:"low_stock_alerts"` // stock < reorder_threshold
}

// CategoryStatsDTO agregados por categoría.
type CategoryStatsDTO struct {
	Count                int     `json:"count"`
	TotalStock           int     `json:"total_stock"`
	AveragePurchasePrice float64 `json:"average_purchase_price"`
	TotalValue           float64 `json:"total_value"`
}

// ConsolidatedReportResponse KPIs más el desglose por categoría.
type ConsolidatedReportResponse struct {
	Summary    KPIsResponse                `json:"summary"`
	Categories map[string]CategoryStatsDTO `json:"categories"`
}

// ── Estadística descriptiva ──────────────────────────────────────────────────

// PriceSummaryDTO resumen de una serie de precios.
type PriceSummaryDTO struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"` // poblacional
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
}

// PriceStatisticsResponse salida de GET /api/analytics/prices.
type PriceStatisticsResponse struct {
	Purchase               PriceSummaryDTO `json:"purchase"`
	Sale                   PriceSummaryDTO `json:"sale"`
	AverageMarginPct       float64         `json:"average_margin_pct"` // solo productos con purchase_price > 0
	TotalMargin            float64         `json:"total_margin"`
	TotalInventoryValue    float64         `json:"total_inventory_value"`
	AverageValuePerProduct float64         `json:"average_value_per_product"`
}

// OutlierDTO producto con precio de venta fuera de [lower, upper].
type OutlierDTO struct {
	Product       ProductResponse `json:"product"`
	Direction     string          `json:"direction"` // bajo | alto
	ObservedPrice float64         `json:"observed_price"`
	LowerBound    float64         `json:"lower_bound"`
	UpperBound    float64         `json:"upper_bound"`
}

// FeatureVectorDTO un valor por columna de la matriz (compra, venta, stock).
type FeatureVectorDTO struct {
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price"`
	Stock         float64 `json:"stock"`
}

// CorrelationsResponse correlaciones de Pearson y resumen de la matriz de características.
type CorrelationsResponse struct {
	PurchaseVsSale  float64          `json:"purchase_vs_sale"`
	PurchaseVsStock float64          `json:"purchase_vs_stock"`
	Samples         int              `json:"samples"`
	FeatureMeans    FeatureVectorDTO `json:"feature_means"`
	FeatureStds     FeatureVectorDTO `json:"feature_stds"`
}

// ── Transformaciones del catálogo ────────────────────────────────────────────

// DiscountedProductDTO precio de venta proyectado con descuento.
type DiscountedProductDTO struct {
	SKU                 string          `json:"sku"`
	Name                string          `json:"name"`
	SalePrice           decimal.Decimal `json:"sale_price" swaggertype:"number"`
	DiscountedSalePrice decimal.Decimal `json:"discounted_sale_price" swaggertype:"number"`
}

// DiscountProjectionResponse salida de GET /api/analytics/discounts.
type DiscountProjectionResponse struct {
	DiscountPct decimal.Decimal        `json:"discount_pct" swaggertype:"number"`
	Items       []DiscountedProductDTO `json:"items"`
}

// CriticalProductsResponse productos con stock < threshold.
type CriticalProductsResponse struct {
	Threshold int               `json:"threshold"`
	Items     []ProductResponse `json:"items"`
}

// InventoryValueResponse valor total del inventario a precio de compra.
type InventoryValueResponse struct {
	TotalValue decimal.Decimal `json:"total_value" swaggertype:"number"`
}
