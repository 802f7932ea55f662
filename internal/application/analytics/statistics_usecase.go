package analytics

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/application/catalog"
	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/stats"
)

// StatisticsUseCase estadística descriptiva sobre el snapshot.
// Los datos degenerados (catálogo vacío, varianza cero) dan ceros o listas vacías, nunca error.
type StatisticsUseCase struct {
	src SnapshotSource
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(src SnapshotSource) *StatisticsUseCase {
	return &StatisticsUseCase{src: src}
}

// PriceStatistics resumen de precios de compra y venta, márgenes y valor del inventario.
func (uc *StatisticsUseCase) PriceStatistics(ctx context.Context) (*dto.PriceStatisticsResponse, error) {
	products, err := uc.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return priceStatistics(products), nil
}

// DetectOutliers productos con precio de venta fuera de los límites IQR, en orden del snapshot.
func (uc *StatisticsUseCase) DetectOutliers(ctx context.Context) ([]dto.OutlierDTO, error) {
	products, err := uc.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return detectOutliers(products), nil
}

// FeatureCorrelations Pearson compra/venta y compra/stock, con medias y desviaciones por columna.
func (uc *StatisticsUseCase) FeatureCorrelations(ctx context.Context) (*dto.CorrelationsResponse, error) {
	products, err := uc.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return featureCorrelations(products), nil
}

type features struct {
	purchase, sale, stock, value []float64
}

func columns(products []entity.Product) features {
	f := features{
		purchase: make([]float64, len(products)),
		sale:     make([]float64, len(products)),
		stock:    make([]float64, len(products)),
		value:    make([]float64, len(products)),
	}
	for i, p := range products {
		f.purchase[i] = p.PurchasePrice.InexactFloat64()
		f.sale[i] = p.SalePrice.InexactFloat64()
		f.stock[i] = float64(p.Stock)
		f.value[i] = p.InventoryValue().InexactFloat64()
	}
	return f
}

func summarize(xs []float64) dto.PriceSummaryDTO {
	return dto.PriceSummaryDTO{
		Mean:   stats.Mean(xs),
		Median: stats.Median(xs),
		Std:    stats.PopulationStd(xs),
		Min:    stats.Min(xs),
		Max:    stats.Max(xs),
		P25:    stats.Percentile(xs, 25),
		P75:    stats.Percentile(xs, 75),
	}
}

func priceStatistics(products []entity.Product) *dto.PriceStatisticsResponse {
	f := columns(products)

	margins := make([]float64, 0, len(products))
	var totalMargin float64
	for i := range products {
		totalMargin += f.sale[i] - f.purchase[i]
		if f.purchase[i] > 0 {
			margins = append(margins, (f.sale[i]-f.purchase[i])/f.purchase[i]*100)
		}
	}

	return &dto.PriceStatisticsResponse{
		Purchase:               summarize(f.purchase),
		Sale:                   summarize(f.sale),
		AverageMarginPct:       stats.Mean(margins),
		TotalMargin:            totalMargin,
		TotalInventoryValue:    stats.Sum(f.value),
		AverageValuePerProduct: stats.Mean(f.value),
	}
}

func detectOutliers(products []entity.Product) []dto.OutlierDTO {
	out := make([]dto.OutlierDTO, 0)
	sale := columns(products).sale
	b, ok := stats.IQRBounds(sale)
	if !ok {
		return out
	}
	for i, p := range products {
		dir := b.Classify(sale[i])
		if dir == "" {
			continue
		}
		out = append(out, dto.OutlierDTO{
			Product:       catalog.ToProductResponse(p),
			Direction:     string(dir),
			ObservedPrice: sale[i],
			LowerBound:    b.Lower,
			UpperBound:    b.Upper,
		})
	}
	return out
}

func featureCorrelations(products []entity.Product) *dto.CorrelationsResponse {
	f := columns(products)
	return &dto.CorrelationsResponse{
		PurchaseVsSale:  stats.Pearson(f.purchase, f.sale),
		PurchaseVsStock: stats.Pearson(f.purchase, f.stock),
		Samples:         len(products),
		FeatureMeans: dto.FeatureVectorDTO{
			PurchasePrice: stats.Mean(f.purchase),
			SalePrice:     stats.Mean(f.sale),
			Stock:         stats.Mean(f.stock),
		},
		FeatureStds: dto.FeatureVectorDTO{
			PurchasePrice: stats.PopulationStd(f.purchase),
			SalePrice:     stats.PopulationStd(f.sale),
			Stock:         stats.PopulationStd(f.stock),
		},
	}
}
