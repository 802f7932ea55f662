package postgres

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo bitácora sobre PostgreSQL (pool o tx).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create inserta dentro de un savepoint (o una tx propia si q es el pool):
// si falla, la transacción del llamador sigue utilizable.
func (r *AuditRepo) Create(ctx context.Context, e *entity.AuditEntry) error {
	sp, err := r.q.Begin(ctx)
	if err != nil {
		return storageErr("audit savepoint", err)
	}
	defer func() { _ = sp.Rollback(ctx) }()

	_, err = sp.Exec(ctx,
		`INSERT INTO audit (id, action, detail, created_at) VALUES ($1, $2, $3, $4)`,
		e.ID, e.Action, e.Detail, e.CreatedAt,
	)
	if err != nil {
		return storageErr("insert audit", err)
	}
	if err := sp.Commit(ctx); err != nil {
		return storageErr("release audit savepoint", err)
	}
	return nil
}

// ListRecent últimas entradas, más reciente primero.
func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]entity.AuditEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, action, detail, created_at FROM audit ORDER BY created_at DESC, seq DESC LIMIT $1`, limit)
	if err != nil {
		return nil, storageErr("list audit", err)
	}
	defer rows.Close()

	out := make([]entity.AuditEntry, 0, limit)
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, storageErr("scan audit", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list audit", err)
	}
	return out, nil
}
