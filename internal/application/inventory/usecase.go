package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/techinventory-api/internal/application/audit"
	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/inventory"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
	"github.com/jhoicas/techinventory-api/pkg/logger"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 500
)

// RecordMovementUseCase registra entradas y salidas de stock de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RecordMovementUseCase struct {
	txRunner  TxRunner
	movements repository.MovementRepository
	audit     *audit.Service
	cache     SnapshotInvalidator
	log       *logger.Logger
	now       func() time.Time
}

// NewRecordMovementUseCase construye el caso de uso. cache puede ser nil.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	movements repository.MovementRepository,
	auditSvc *audit.Service,
	cache SnapshotInvalidator,
	log *logger.Logger,
) *RecordMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordMovementUseCase{
		txRunner:  txRunner,
		movements: movements,
		audit:     auditSvc,
		cache:     cache,
		log:       log.Component("inventory"),
		now:       time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	SKU      string
	Kind     string // entrada | salida (también entry/in, exit/out)
	Quantity int
	Reason   string
}

// RecordMovement bloquea la fila del producto, calcula el nuevo stock y, en la misma transacción,
// actualiza el stock, anexa el movimiento y anota "movement" en la bitácora.
// Si el stock resultante sería negativo devuelve domain.ErrInsufficientStock sin escribir nada.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, in MovementInput) (*dto.RecordMovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	kind, ok := entity.ParseMovementKind(in.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Kind)
	}
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return nil, fmt.Errorf("%w: sku obligatorio", domain.ErrInvalidInput)
	}

	now := uc.now()
	mov := &entity.Movement{
		ID:        uuid.New().String(),
		SKU:       sku,
		Kind:      kind,
		Quantity:  in.Quantity,
		Reason:    strings.TrimSpace(in.Reason),
		CreatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		current, found, err := r.Products.GetStockForUpdate(ctx, sku)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}
		next, err := inventory.NextStock(current, kind, in.Quantity)
		if err != nil {
			return err
		}
		if err := r.Products.UpdateStock(ctx, sku, next, now); err != nil {
			return err
		}
		mov.PreviousStock = current
		mov.NewStock = next
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}
		uc.audit.AppendInTx(ctx, r.Audit, entity.AuditActionMovement,
			fmt.Sprintf("%s de %d para %s", kind, in.Quantity, sku))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Str("sku", sku).Msg("no se pudo invalidar el snapshot en caché")
		}
	}
	uc.log.Debug().Str("sku", sku).Str("kind", string(kind)).Int("quantity", in.Quantity).
		Int("new_stock", mov.NewStock).Msg("movimiento registrado")

	return &dto.RecordMovementResponse{
		MovementID:    mov.ID,
		SKU:           sku,
		Kind:          string(kind),
		Quantity:      in.Quantity,
		PreviousStock: mov.PreviousStock,
		NewStock:      mov.NewStock,
	}, nil
}

// RecentMovements últimos movimientos con el nombre del producto, más reciente primero.
// limit <= 0 usa 10; el máximo es 500.
func (uc *RecordMovementUseCase) RecentMovements(ctx context.Context, limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	views, err := uc.movements.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.MovementResponse{
			ID:            v.ID,
			SKU:           v.SKU,
			ProductName:   v.ProductName,
			Kind:          string(v.Kind),
			Quantity:      v.Quantity,
			Reason:        v.Reason,
			PreviousStock: v.PreviousStock,
			NewStock:      v.NewStock,
			CreatedAt:     v.CreatedAt,
		})
	}
	return out, nil
}
