package inventory

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de movimientos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// SnapshotInvalidator avanza la generación del snapshot cacheado del catálogo tras un cambio de stock.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context) error
}
