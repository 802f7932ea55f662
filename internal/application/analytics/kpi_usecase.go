package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/techinventory-api/internal/application/catalog"
	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/inventory"
)

// KPIUseCase indicadores y transformaciones sobre el snapshot del catálogo.
type KPIUseCase struct {
	src               SnapshotSource
	criticalThreshold int
}

// NewKPIUseCase construye el caso de uso. criticalThreshold es el umbral por defecto de CriticalProducts.
func NewKPIUseCase(src SnapshotSource, criticalThreshold int) *KPIUseCase {
	if criticalThreshold <= 0 {
		criticalThreshold = entity.DefaultReorderThreshold
	}
	return &KPIUseCase{src: src, criticalThreshold: criticalThreshold}
}

// Compute total de productos, valor del inventario y alertas de stock bajo.
func (uc *KPIUseCase) Compute(ctx context.Context) (*dto.KPIsResponse, error) {
	products, err := uc.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	k := kpisDTO(inventory.ComputeKPIs(products))
	return &k, nil
}

// ByCategory agregados por categoría; las categorías vacías se excluyen.
func (uc *KPIUseCase) ByCategory(ctx context.Context) (map[string]dto.CategoryStatsDTO, error) {
	products, err := uc.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return categoriesDTO(inventory.GroupByCategory(products)), nil
}

// ConsolidatedReport KPIs y categorías calculados sobre el mismo snapshot.
func (uc *KPIUseCase) ConsolidatedReport(ctx context.Context) (*dto.ConsolidatedReportResponse, error) {
	products, err := uc.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ConsolidatedReportResponse{
		Summary:    kpisDTO(inventory.ComputeKPIs(products)),
		Categories: categoriesDTO(inventory.GroupByCategory(products)),
	}, nil
}

// DiscountProjection precio de venta con descuento pct (0..100) por producto. No persiste nada.
func (uc *KPIUseCase) DiscountProjection(ctx context.Context, pct decimal.Decimal) (*dto.DiscountProjectionResponse, error) {
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: el descuento debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	products, err := uc.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	projected := inventory.ProjectDiscount(products, pct)
	items := make([]dto.DiscountedProductDTO, 0, len(projected))
	for _, p := range projected {
		items = append(items, dto.DiscountedProductDTO{
			SKU:                 p.SKU,
			Name:                p.Name,
			SalePrice:           p.SalePrice,
			DiscountedSalePrice: p.DiscountedSalePrice.Round(2),
		})
	}
	return &dto.DiscountProjectionResponse{DiscountPct: pct, Items: items}, nil
}

// CriticalProducts productos con stock < threshold. threshold <= 0 usa el umbral por defecto.
func (uc *KPIUseCase) CriticalProducts(ctx context.Context, threshold int) (*dto.CriticalProductsResponse, error) {
	if threshold <= 0 {
		threshold = uc.criticalThreshold
	}
	products, err := uc.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CriticalProductsResponse{
		Threshold: threshold,
		Items:     catalog.ToProductResponses(inventory.FilterCritical(products, threshold)),
	}, nil
}

// InventoryValue Σ purchase_price * stock.
func (uc *KPIUseCase) InventoryValue(ctx context.Context) (*dto.InventoryValueResponse, error) {
	products, err := uc.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.InventoryValueResponse{TotalValue: inventory.TotalValue(products)}, nil
}

func kpisDTO(k inventory.KPIs) dto.KPIsResponse {
	return dto.KPIsResponse{
		TotalItems:     k.TotalItems,
		TotalValue:     k.TotalValue,
		LowStockAlerts: k.LowStockAlerts,
	}
}

func categoriesDTO(groups map[string]inventory.CategoryStats) map[string]dto.CategoryStatsDTO {
	out := make(map[string]dto.CategoryStatsDTO, len(groups))
	for cat, g := range groups {
		out[cat] = dto.CategoryStatsDTO{
			Count:                g.Count,
			TotalStock:           g.TotalStock,
			AveragePurchasePrice: g.AveragePurchasePrice,
			TotalValue:           g.TotalValue,
		}
	}
	return out
}
