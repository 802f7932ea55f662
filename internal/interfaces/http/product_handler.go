package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/techinventory-api/internal/application/catalog"
	"github.com/jhoicas/techinventory-api/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterProductRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Find godoc
// @Summary      Buscar productos
// @Description  Subcadena sin distinguir mayúsculas en sku, nombre, categoría o marca. Sin q devuelve todo el catálogo.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Texto a buscar"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) Find(c *fiber.Ctx) error {
	out, err := h.uc.Find(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Stock actual de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku}/stock [get]
func (h *ProductHandler) Stock(c *fiber.Ctx) error {
	sku := c.Params("sku")
	stock, found, err := h.uc.GetStock(c.UserContext(), sku)
	if err != nil {
		return writeError(c, err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.StockResponse{SKU: sku, Stock: stock})
}
