package catalog

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a ella.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// SnapshotCache caché del snapshot completo del catálogo (cache-aside con generación).
// Invalidate avanza la generación. Get devuelve la generación vigente también en un miss,
// y Set descarta la escritura si desde entonces hubo otra invalidación.
type SnapshotCache interface {
	Get(ctx context.Context) (products []entity.Product, gen int64, ok bool, err error)
	Set(ctx context.Context, gen int64, products []entity.Product) error
	Invalidate(ctx context.Context) error
}
