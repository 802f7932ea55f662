package dto

import "time"

// CategoryRowDTO fila del desglose por categoría en el reporte (ordenado por nombre).
type CategoryRowDTO struct {
	Category string `json:"category"`
	CategoryStatsDTO
}

// InventoryReportDTO datos del reporte consolidado de inventario (PDF).
type InventoryReportDTO struct {
	Title       string                  `json:"title"`
	GeneratedAt time.Time               `json:"generated_at"`
	Summary     KPIsResponse            `json:"summary"`
	Categories  []CategoryRowDTO        `json:"categories"`
	Prices      PriceStatisticsResponse `json:"prices"`
	LowStock    []ProductResponse       `json:"low_stock"`
	Outliers    []OutlierDTO            `json:"outliers"`
}
