package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/techinventory-api/internal/application/catalog"
	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/inventory"
)

// ReportUseCase genera el reporte consolidado de inventario en PDF.
type ReportUseCase struct {
	src   SnapshotSource
	gen   ReportPDFGenerator
	title string
	now   func() time.Time
}

// NewReportUseCase construye el caso de uso. title encabeza el documento.
func NewReportUseCase(src SnapshotSource, gen ReportPDFGenerator, title string) *ReportUseCase {
	if title == "" {
		title = "Reporte de inventario"
	}
	return &ReportUseCase{src: src, gen: gen, title: title, now: time.Now}
}

// Build arma el reporte sobre un único snapshot.
//
// Tres cálculos en paralelo:
//  1. KPIs + categorías
//  2. Estadística de precios
//  3. Stock bajo + atípicos
func (uc *ReportUseCase) Build(ctx context.Context) (*dto.InventoryReportDTO, error) {
	products, err := uc.src.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: snapshot: %w", err)
	}

	type summaryResult struct {
		kpis       dto.KPIsResponse
		categories []dto.CategoryRowDTO
	}
	type alertsResult struct {
		lowStock []dto.ProductResponse
		outliers []dto.OutlierDTO
	}

	summaryCh := make(chan summaryResult, 1)
	pricesCh := make(chan *dto.PriceStatisticsResponse, 1)
	alertsCh := make(chan alertsResult, 1)

	go func() {
		summaryCh <- summaryResult{
			kpis:       kpisDTO(inventory.ComputeKPIs(products)),
			categories: categoryRows(inventory.GroupByCategory(products)),
		}
	}()
	go func() {
		pricesCh <- priceStatistics(products)
	}()
	go func() {
		low := make([]entity.Product, 0)
		for _, p := range products {
			if p.IsLowStock() {
				low = append(low, p)
			}
		}
		alertsCh <- alertsResult{
			lowStock: catalog.ToProductResponses(low),
			outliers: detectOutliers(products),
		}
	}()

	summary := <-summaryCh
	prices := <-pricesCh
	alerts := <-alertsCh

	return &dto.InventoryReportDTO{
		Title:       uc.title,
		GeneratedAt: uc.now(),
		Summary:     summary.kpis,
		Categories:  summary.categories,
		Prices:      *prices,
		LowStock:    alerts.lowStock,
		Outliers:    alerts.outliers,
	}, nil
}

// InventoryPDF genera el PDF del reporte consolidado.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context) ([]byte, error) {
	report, err := uc.Build(ctx)
	if err != nil {
		return nil, err
	}
	b, err := uc.gen.GenerateInventoryReport(report)
	if err != nil {
		return nil, fmt.Errorf("reporte: pdf: %w", err)
	}
	return b, nil
}

func categoryRows(groups map[string]inventory.CategoryStats) []dto.CategoryRowDTO {
	stats := categoriesDTO(groups)
	rows := make([]dto.CategoryRowDTO, 0, len(stats))
	for cat, s := range stats {
		rows = append(rows, dto.CategoryRowDTO{Category: cat, CategoryStatsDTO: s})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}
