package memory

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// AuditRepository implementa repository.AuditRepository en memoria.
type AuditRepository struct {
	store *Store
	tx    *state
}

func (r *AuditRepository) Create(_ context.Context, e *entity.AuditEntry) error {
	return r.store.view(r.tx, func(st *state) error {
		st.audit = append(st.audit, *e)
		return nil
	})
}

func (r *AuditRepository) ListRecent(_ context.Context, limit int) ([]entity.AuditEntry, error) {
	out := make([]entity.AuditEntry, 0, limit)
	err := r.store.view(r.tx, func(st *state) error {
		for i := len(st.audit) - 1; i >= 0 && len(out) < limit; i-- {
			out = append(out, st.audit[i])
		}
		return nil
	})
	return out, err
}
