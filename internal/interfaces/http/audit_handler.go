package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/techinventory-api/internal/application/audit"
)

// AuditHandler lectura de la bitácora.
type AuditHandler struct {
	svc *audit.Service
}

// NewAuditHandler construye el handler.
func NewAuditHandler(svc *audit.Service) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// Recent godoc
// @Summary      Últimas entradas de la bitácora
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad (max 100)"
// @Success      200    {array}  dto.AuditEntryResponse
// @Router       /api/audit [get]
func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	out, err := h.svc.Recent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
