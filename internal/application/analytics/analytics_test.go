package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/techinventory-api/internal/application/analytics"
	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

const eps = 1e-9

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type staticSource struct {
	products []entity.Product
	err      error
}

func (s staticSource) Snapshot(context.Context) ([]entity.Product, error) { return s.products, s.err }

func p(sku, category string, purchase, sale float64, stock, threshold int) entity.Product {
	return entity.Product{
		SKU: sku, Name: "Producto " + sku, Category: category,
		PurchasePrice: decimal.NewFromFloat(purchase), SalePrice: decimal.NewFromFloat(sale),
		Stock: stock, ReorderThreshold: threshold,
	}
}

func withSalePrices(prices ...float64) []entity.Product {
	out := make([]entity.Product, 0, len(prices))
	for i, sp := range prices {
		out = append(out, p(string(rune('A'+i)), "X", 1, sp, 1, 0))
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// KPIs
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_Ejemplo(t *testing.T) {
	uc := analytics.NewKPIUseCase(staticSource{products: []entity.Product{
		p("A", "", 10, 12, 5, 10),
		p("B", "", 20, 25, 3, 2),
	}}, 5)

	k, err := uc.Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, k.TotalItems)
	assert.InDelta(t, 110.0, k.TotalValue, eps)
	assert.Equal(t, 1, k.LowStockAlerts)
}

func TestCompute_CatalogoVacio(t *testing.T) {
	k, err := analytics.NewKPIUseCase(staticSource{}, 5).Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.KPIsResponse{}, *k)
}

func TestCompute_PropagaErrorDeAlmacen(t *testing.T) {
	_, err := analytics.NewKPIUseCase(staticSource{err: domain.ErrStorage}, 5).Compute(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestConsolidatedReport(t *testing.T) {
	uc := analytics.NewKPIUseCase(staticSource{products: []entity.Product{
		p("A", "Laptops", 1000, 1200, 2, 5),
		p("B", "Laptops", 500, 700, 4, 5),
		p("C", "", 10, 20, 1, 5),
	}}, 5)

	r, err := uc.ConsolidatedReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, r.Summary.TotalItems)
	assert.Equal(t, 3, r.Summary.LowStockAlerts)
	require.Len(t, r.Categories, 1)
	lap := r.Categories["Laptops"]
	assert.Equal(t, 2, lap.Count)
	assert.Equal(t, 6, lap.TotalStock)
	assert.InDelta(t, 750.0, lap.AveragePurchasePrice, eps)
	assert.InDelta(t, 4000.0, lap.TotalValue, eps)

	byCat, err := uc.ByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, r.Categories, byCat)
}

func TestDiscountCriticalYValor(t *testing.T) {
	ctx := context.Background()
	uc := analytics.NewKPIUseCase(staticSource{products: []entity.Product{
		p("A", "", 10, 100, 2, 5),
		p("B", "", 20, 50, 8, 5),
	}}, 0)

	d, err := uc.DiscountProjection(ctx, decimal.NewFromInt(15))
	require.NoError(t, err)
	require.Len(t, d.Items, 2)
	assert.True(t, d.Items[0].DiscountedSalePrice.Equal(decimal.NewFromInt(85)))
	assert.True(t, d.Items[1].DiscountedSalePrice.Equal(decimal.RequireFromString("42.5")))

	_, err = uc.DiscountProjection(ctx, decimal.NewFromInt(101))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := uc.CriticalProducts(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultReorderThreshold, c.Threshold)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "A", c.Items[0].SKU)

	c, err = uc.CriticalProducts(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)

	v, err := uc.InventoryValue(ctx)
	require.NoError(t, err)
	assert.True(t, v.TotalValue.Equal(decimal.NewFromInt(180)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Estadística
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceStatistics_CatalogoVacio(t *testing.T) {
	s, err := analytics.NewStatisticsUseCase(staticSource{}).PriceStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.PriceStatisticsResponse{}, *s)
}

func TestPriceStatistics_Valores(t *testing.T) {
	s, err := analytics.NewStatisticsUseCase(staticSource{products: []entity.Product{
		p("A", "", 10, 15, 2, 5),
		p("B", "", 20, 30, 1, 5),
		p("C", "", 0, 5, 4, 5), // sin precio de compra: fuera del margen promedio
	}}).PriceStatistics(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 10.0, s.Purchase.Mean, eps)
	assert.InDelta(t, 10.0, s.Purchase.Median, eps)
	assert.InDelta(t, 8.16496580927726, s.Purchase.Std, 1e-9)
	assert.InDelta(t, 0.0, s.Purchase.Min, eps)
	assert.InDelta(t, 20.0, s.Purchase.Max, eps)
	assert.InDelta(t, 5.0, s.Purchase.P25, eps)
	assert.InDelta(t, 15.0, s.Purchase.P75, eps)

	assert.InDelta(t, 50.0, s.AverageMarginPct, eps)
	assert.InDelta(t, 20.0, s.TotalMargin, eps)
	assert.InDelta(t, 40.0, s.TotalInventoryValue, eps)
	assert.InDelta(t, 40.0/3, s.AverageValuePerProduct, eps)
}

func TestPriceStatistics_SinPreciosDeCompraMargenCero(t *testing.T) {
	s, err := analytics.NewStatisticsUseCase(staticSource{products: []entity.Product{
		p("A", "", 0, 15, 2, 5),
	}}).PriceStatistics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.AverageMarginPct)
}

func TestDetectOutliers_MenosDeTres(t *testing.T) {
	out, err := analytics.NewStatisticsUseCase(staticSource{products: withSalePrices(1, 1000)}).DetectOutliers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDetectOutliers_IQRCero(t *testing.T) {
	out, err := analytics.NewStatisticsUseCase(staticSource{products: withSalePrices(50, 50, 50, 50)}).DetectOutliers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

// Con interpolación lineal Q1=12 y Q3=12.75, así que además del 300 (alto)
// el 10 cae bajo el límite inferior 10.875.
func TestDetectOutliers_Ejemplo(t *testing.T) {
	out, err := analytics.NewStatisticsUseCase(staticSource{products: withSalePrices(10, 12, 12, 13, 12, 300)}).DetectOutliers(context.Background())
	require.NoError(t, err)

	byPrice := map[float64]dto.OutlierDTO{}
	for _, o := range out {
		byPrice[o.ObservedPrice] = o
	}
	high, ok := byPrice[300]
	require.True(t, ok)
	assert.Equal(t, "alto", high.Direction)
	assert.InDelta(t, 10.875, high.LowerBound, eps)
	assert.InDelta(t, 13.875, high.UpperBound, eps)

	low, ok := byPrice[10]
	require.True(t, ok)
	assert.Equal(t, "bajo", low.Direction)

	assert.Len(t, out, 2)
	for _, price := range []float64{12, 13} {
		_, flagged := byPrice[price]
		assert.False(t, flagged)
	}
}

func TestFeatureCorrelations_UnSoloProducto(t *testing.T) {
	c, err := analytics.NewStatisticsUseCase(staticSource{products: []entity.Product{p("A", "", 10, 15, 2, 5)}}).FeatureCorrelations(context.Background())
	require.NoError(t, err)
	assert.Zero(t, c.PurchaseVsSale)
	assert.Zero(t, c.PurchaseVsStock)
	assert.Equal(t, 1, c.Samples)
	assert.InDelta(t, 10.0, c.FeatureMeans.PurchasePrice, eps)
}

func TestFeatureCorrelations_Valores(t *testing.T) {
	c, err := analytics.NewStatisticsUseCase(staticSource{products: []entity.Product{
		p("A", "", 10, 20, 5, 5),
		p("B", "", 20, 40, 5, 5),
		p("C", "", 30, 60, 5, 5),
	}}).FeatureCorrelations(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.PurchaseVsSale, eps)
	assert.Zero(t, c.PurchaseVsStock, "stock con varianza cero")
	assert.InDelta(t, 40.0, c.FeatureMeans.SalePrice, eps)
	assert.Zero(t, c.FeatureStds.Stock)
}

func TestStatistics_PropagaErrorDeAlmacen(t *testing.T) {
	uc := analytics.NewStatisticsUseCase(staticSource{err: errors.New("conexión perdida")})
	_, err := uc.PriceStatistics(context.Background())
	assert.Error(t, err)
	_, err = uc.DetectOutliers(context.Background())
	assert.Error(t, err)
	_, err = uc.FeatureCorrelations(context.Background())
	assert.Error(t, err)
}
