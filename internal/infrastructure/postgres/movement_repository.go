package postgres

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL (pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create anexa el movimiento. Un SKU inexistente (FK) devuelve domain.ErrNotFound.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, sku, kind, quantity, reason, previous_stock, new_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.SKU, string(m.Kind), m.Quantity, m.Reason, m.PreviousStock, m.NewStock, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return storageErr("insert movement", err)
	}
	return nil
}

// ListRecent últimos movimientos unidos con el nombre del producto, más reciente primero.
func (r *MovementRepo) ListRecent(ctx context.Context, limit int) ([]entity.MovementView, error) {
	query := `
		SELECT m.id, m.sku, p.name, m.kind, m.quantity, m.reason, m.previous_stock, m.new_stock, m.created_at
		FROM movements m
		JOIN products p ON p.sku = m.sku
		ORDER BY m.created_at DESC, m.seq DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, storageErr("list movements", err)
	}
	defer rows.Close()

	out := make([]entity.MovementView, 0, limit)
	for rows.Next() {
		var (
			v    entity.MovementView
			kind string
		)
		if err := rows.Scan(&v.ID, &v.SKU, &v.ProductName, &kind, &v.Quantity, &v.Reason,
			&v.PreviousStock, &v.NewStock, &v.CreatedAt); err != nil {
			return nil, storageErr("scan movement", err)
		}
		v.Kind = entity.MovementKind(kind)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list movements", err)
	}
	return out, nil
}
