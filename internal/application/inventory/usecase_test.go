package inventory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/techinventory-api/internal/application/audit"
	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/application/inventory"
	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
	"github.com/jhoicas/techinventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/techinventory-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type countingInvalidator struct{ n atomic.Int32 }

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.n.Add(1)
	return nil
}

// brokenStockRunner hace fallar UpdateStock para verificar que no se escribe nada más.
type brokenStockRunner struct{ inner inventory.TxRunner }

type brokenStock struct{ repository.ProductRepository }

func (brokenStock) UpdateStock(context.Context, string, int, time.Time) error {
	return domain.ErrStorage
}

func (r brokenStockRunner) Run(ctx context.Context, fn func(repository.TxRepos) error) error {
	return r.inner.Run(ctx, func(repos repository.TxRepos) error {
		repos.Products = brokenStock{repos.Products}
		return fn(repos)
	})
}

type failingAudit struct{}

func (failingAudit) Create(context.Context, *entity.AuditEntry) error { return errors.New("sin bitácora") }
func (failingAudit) ListRecent(context.Context, int) ([]entity.AuditEntry, error) {
	return nil, nil
}

type failingAuditRunner struct{ inner inventory.TxRunner }

func (r failingAuditRunner) Run(ctx context.Context, fn func(repository.TxRepos) error) error {
	return r.inner.Run(ctx, func(repos repository.TxRepos) error {
		repos.Audit = failingAudit{}
		return fn(repos)
	})
}

func seedProduct(t *testing.T, store *memory.Store, sku string, stock int) {
	t.Helper()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		SKU: sku, Name: "Producto " + sku, PurchasePrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(12),
		Stock: stock, ReorderThreshold: entity.DefaultReorderThreshold,
	}))
}

func newLedger(store *memory.Store, runner inventory.TxRunner, inv inventory.SnapshotInvalidator) *inventory.RecordMovementUseCase {
	auditSvc := audit.NewService(store.Audit(), logger.Nop())
	return inventory.NewRecordMovementUseCase(runner, store.Movements(), auditSvc, inv, logger.Nop())
}

func stockOf(t *testing.T, store *memory.Store, sku string) int {
	t.Helper()
	s, found, err := store.Products().GetStockForUpdate(context.Background(), sku)
	require.NoError(t, err)
	require.True(t, found)
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

// Entrada de 5 y salida de 3 sobre stock 10: stock 12, dos movimientos y dos entradas de bitácora.
func TestRecordMovement_EntradaYSalida(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "LAP-001", 10)
	inv := &countingInvalidator{}
	uc := newLedger(store, store, inv)

	res, err := uc.RecordMovement(ctx, inventory.MovementInput{SKU: "LAP-001", Kind: "entrada", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 15, res.NewStock)

	res, err = uc.RecordMovementFromRequest(ctx, dto.RecordMovementRequest{SKU: "LAP-001", Kind: "salida", Quantity: 3, Reason: "préstamo"})
	require.NoError(t, err)
	assert.Equal(t, 15, res.PreviousStock)
	assert.Equal(t, 12, res.NewStock)

	assert.Equal(t, 12, stockOf(t, store, "LAP-001"))

	movs, err := uc.RecentMovements(ctx, 10)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "salida", movs[0].Kind)
	assert.Equal(t, "préstamo", movs[0].Reason)
	assert.Equal(t, "Producto LAP-001", movs[0].ProductName)

	entries, err := store.Audit().ListRecent(ctx, 100)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, entity.AuditActionMovement, entries[0].Action)
	assert.Equal(t, "salida de 3 para LAP-001", entries[0].Detail)

	assert.EqualValues(t, 2, inv.n.Load())
}

func TestRecordMovement_StockInsuficienteNoEscribe(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "A", 2)
	uc := newLedger(store, store, nil)

	_, err := uc.RecordMovement(ctx, inventory.MovementInput{SKU: "A", Kind: "out", Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 2, stockOf(t, store, "A"))
	movs, err := uc.RecentMovements(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, movs)
	entries, err := store.Audit().ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordMovement_Validaciones(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "A", 2)
	uc := newLedger(store, store, nil)

	_, err := uc.RecordMovement(ctx, inventory.MovementInput{SKU: "A", Kind: "entrada", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = uc.RecordMovement(ctx, inventory.MovementInput{SKU: "A", Kind: "entrada", Quantity: -4})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = uc.RecordMovement(ctx, inventory.MovementInput{SKU: "A", Kind: "ajuste", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RecordMovement(ctx, inventory.MovementInput{SKU: "NOPE", Kind: "entrada", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_FalloAlActualizarStockNoDejaMovimiento(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "A", 5)
	uc := newLedger(store, brokenStockRunner{inner: store}, nil)

	_, err := uc.RecordMovement(ctx, inventory.MovementInput{SKU: "A", Kind: "entrada", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrStorage)

	movs, err := store.Movements().ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, movs)
	entries, err := store.Audit().ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordMovement_FalloDeBitacoraNoFallaElMovimiento(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "A", 5)
	uc := newLedger(store, failingAuditRunner{inner: store}, nil)

	res, err := uc.RecordMovement(ctx, inventory.MovementInput{SKU: "A", Kind: "entrada", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 6, res.NewStock)
	assert.Equal(t, 6, stockOf(t, store, "A"))
}

func TestRecordMovement_SalidasConcurrentes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "A", 10)
	uc := newLedger(store, store, nil)

	var (
		wg       sync.WaitGroup
		ok, fail atomic.Int32
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.RecordMovement(ctx, inventory.MovementInput{SKU: "A", Kind: "salida", Quantity: 1}); err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				fail.Add(1)
				return
			}
			ok.Add(1)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 10, ok.Load())
	assert.EqualValues(t, 15, fail.Load())
	assert.Equal(t, 0, stockOf(t, store, "A"))
}

func TestRecentMovements_Limites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "A", 0)
	uc := newLedger(store, store, nil)
	for i := 0; i < 12; i++ {
		_, err := uc.RecordMovement(ctx, inventory.MovementInput{SKU: "A", Kind: "in", Quantity: 1})
		require.NoError(t, err)
	}

	def, err := uc.RecentMovements(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, def, 10, "límite por defecto")

	few, err := uc.RecentMovements(ctx, 3)
	require.NoError(t, err)
	require.Len(t, few, 3)
	assert.Equal(t, 12, few[0].NewStock, "más reciente primero")
}
