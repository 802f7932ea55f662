package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/techinventory-api/internal/application/analytics"
)

// ReportHandler descarga de reportes.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventoryPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	b, err := h.uc.InventoryPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="inventario.pdf"`)
	return c.Send(b)
}
