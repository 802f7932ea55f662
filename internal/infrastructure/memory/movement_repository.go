package memory

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// MovementRepository implementa repository.MovementRepository en memoria (solo anexado).
type MovementRepository struct {
	store *Store
	tx    *state
}

// Create anexa el movimiento; el SKU debe existir.
func (r *MovementRepository) Create(_ context.Context, m *entity.Movement) error {
	return r.store.view(r.tx, func(st *state) error {
		if _, ok := st.products[m.SKU]; !ok {
			return domain.ErrNotFound
		}
		st.movements = append(st.movements, *m)
		return nil
	})
}

// ListRecent más reciente primero, unido con el nombre del producto.
func (r *MovementRepository) ListRecent(_ context.Context, limit int) ([]entity.MovementView, error) {
	out := make([]entity.MovementView, 0, limit)
	err := r.store.view(r.tx, func(st *state) error {
		for i := len(st.movements) - 1; i >= 0 && len(out) < limit; i-- {
			m := st.movements[i]
			p, ok := st.products[m.SKU]
			if !ok {
				continue
			}
			out = append(out, entity.MovementView{Movement: m, ProductName: p.Name})
		}
		return nil
	})
	return out, err
}
