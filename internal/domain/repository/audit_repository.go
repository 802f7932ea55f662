package repository

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// AuditRepository define el puerto de persistencia para la bitácora.
type AuditRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]entity.AuditEntry, error)
}
