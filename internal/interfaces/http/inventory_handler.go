package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/application/inventory"
)

// InventoryHandler maneja el libro de movimientos (protegido).
type InventoryHandler struct {
	uc *inventory.RecordMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RecordMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "sku, kind (entrada | salida), quantity, reason"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordMovementFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Recent godoc
// @Summary      Últimos movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad (default 10, max 500)"
// @Success      200    {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Recent(c *fiber.Ctx) error {
	out, err := h.uc.RecentMovements(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
