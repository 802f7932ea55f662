package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/techinventory-api/internal/application/dto"
)

// Pinger lo implementan el pool de Postgres y la caché.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler estado del almacén y de la caché.
type HealthHandler struct {
	storeName string
	store     Pinger
	cache     Pinger
}

// NewHealthHandler store o cache nil se reportan como "ok" (backend en memoria / sin caché).
func NewHealthHandler(storeName string, store, cache Pinger) *HealthHandler {
	return &HealthHandler{storeName: storeName, store: store, cache: cache}
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	out := dto.HealthResponse{Status: "ok", Store: h.storeName, Cache: "ok"}
	status := fiber.StatusOK
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			out.Status = "degraded"
			out.Store = h.storeName + ": " + err.Error()
			status = fiber.StatusServiceUnavailable
		}
	}
	// La caché es opcional: su caída no cambia el status HTTP.
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			out.Cache = "unavailable"
		}
	}
	return c.Status(status).JSON(out)
}
