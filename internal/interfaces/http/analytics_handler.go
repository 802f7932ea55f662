package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/techinventory-api/internal/application/analytics"
	"github.com/jhoicas/techinventory-api/internal/domain"
)

// AnalyticsHandler KPIs, estadística y transformaciones del catálogo.
type AnalyticsHandler struct {
	kpis  *analytics.KPIUseCase
	stats *analytics.StatisticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(kpis *analytics.KPIUseCase, stats *analytics.StatisticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{kpis: kpis, stats: stats}
}

// KPIs godoc
// @Summary      Indicadores del catálogo
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.KPIsResponse
// @Router       /api/analytics/kpis [get]
func (h *AnalyticsHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.kpis.Compute(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Agregados por categoría
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]dto.CategoryStatsDTO
// @Router       /api/analytics/categories [get]
func (h *AnalyticsHandler) Categories(c *fiber.Ctx) error {
	out, err := h.kpis.ByCategory(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte consolidado (KPIs + categorías)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ConsolidatedReportResponse
// @Router       /api/analytics/report [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	out, err := h.kpis.ConsolidatedReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Prices godoc
// @Summary      Estadística de precios
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PriceStatisticsResponse
// @Router       /api/analytics/prices [get]
func (h *AnalyticsHandler) Prices(c *fiber.Ctx) error {
	out, err := h.stats.PriceStatistics(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Outliers godoc
// @Summary      Precios de venta atípicos (IQR)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OutlierDTO
// @Router       /api/analytics/outliers [get]
func (h *AnalyticsHandler) Outliers(c *fiber.Ctx) error {
	out, err := h.stats.DetectOutliers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Correlations godoc
// @Summary      Correlaciones de Pearson
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CorrelationsResponse
// @Router       /api/analytics/correlations [get]
func (h *AnalyticsHandler) Correlations(c *fiber.Ctx) error {
	out, err := h.stats.FeatureCorrelations(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Discounts godoc
// @Summary      Proyección de precios con descuento
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        pct  query  number  true  "Porcentaje de descuento (0..100)"
// @Success      200  {object}  dto.DiscountProjectionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/discounts [get]
func (h *AnalyticsHandler) Discounts(c *fiber.Ctx) error {
	pct, err := decimal.NewFromString(c.Query("pct"))
	if err != nil {
		return writeError(c, fmt.Errorf("%w: pct debe ser numérico", domain.ErrInvalidInput))
	}
	out, err := h.kpis.DiscountProjection(c.UserContext(), pct)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Critical godoc
// @Summary      Productos con stock crítico
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral (default configurado)"
// @Success      200        {object}  dto.CriticalProductsResponse
// @Router       /api/analytics/critical [get]
func (h *AnalyticsHandler) Critical(c *fiber.Ctx) error {
	out, err := h.kpis.CriticalProducts(c.UserContext(), c.QueryInt("threshold", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Value godoc
// @Summary      Valor total del inventario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValueResponse
// @Router       /api/analytics/value [get]
func (h *AnalyticsHandler) Value(c *fiber.Ctx) error {
	out, err := h.kpis.InventoryValue(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
