// Package audit implementa la bitácora de acciones del catálogo y del libro de movimientos.
// Es best-effort: un fallo al escribir se registra en el log y nunca se propaga al llamador.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
	"github.com/jhoicas/techinventory-api/pkg/logger"
)

const (
	// DefaultLimit y MaxLimit para Recent.
	DefaultLimit = 100
	MaxLimit     = 100
)

// Service escribe y lee la bitácora.
type Service struct {
	repo repository.AuditRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewService construye el servicio.
func NewService(repo repository.AuditRepository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, log: log.Component("audit"), now: time.Now}
}

// Append escribe fuera de cualquier transacción.
func (s *Service) Append(ctx context.Context, action, detail string) {
	s.AppendInTx(ctx, s.repo, action, detail)
}

// AppendInTx escribe con el repositorio de la transacción en curso.
// El repositorio de Postgres aísla la inserción en un savepoint, así que un fallo no aborta la transacción externa.
func (s *Service) AppendInTx(ctx context.Context, repo repository.AuditRepository, action, detail string) {
	entry := &entity.AuditEntry{
		ID:        uuid.New().String(),
		Action:    action,
		Detail:    detail,
		CreatedAt: s.now(),
	}
	if err := repo.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("action", action).Str("detail", detail).Msg("no se pudo registrar en la bitácora")
	}
}

// Recent devuelve las últimas entradas, más reciente primero.
func (s *Service) Recent(ctx context.Context, limit int) ([]dto.AuditEntryResponse, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditEntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}
