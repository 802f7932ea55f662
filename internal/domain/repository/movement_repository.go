package repository

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el libro de movimientos (solo anexado).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// ListRecent devuelve los últimos movimientos (más reciente primero) con el nombre del producto.
	ListRecent(ctx context.Context, limit int) ([]entity.MovementView, error)
}
