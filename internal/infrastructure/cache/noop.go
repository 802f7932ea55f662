package cache

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/application/catalog"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

var _ catalog.SnapshotCache = Noop{}

// Noop caché deshabilitada: siempre miss.
type Noop struct{}

func (Noop) Get(context.Context) ([]entity.Product, int64, bool, error) { return nil, 0, false, nil }
func (Noop) Set(context.Context, int64, []entity.Product) error         { return nil }
func (Noop) Invalidate(context.Context) error                           { return nil }
func (Noop) Ping(context.Context) error                                 { return nil }
