package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/techinventory-api/internal/application/audit"
	"github.com/jhoicas/techinventory-api/internal/application/catalog"
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

// fakeCache caché en memoria con generación, que cuenta accesos.
type fakeCache struct {
	products    []entity.Product
	ok          bool
	gen         int64
	gets, sets  int
	invalidated int
	getErr      error
}

func (c *fakeCache) Get(context.Context) ([]entity.Product, int64, bool, error) {
	c.gets++
	return c.products, c.gen, c.ok, c.getErr
}

func (c *fakeCache) Set(_ context.Context, gen int64, p []entity.Product) error {
	if gen != c.gen {
		return nil
	}
	c.sets++
	c.products, c.ok = p, true
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.invalidated++
	c.gen++
	c.products, c.ok = nil, false
	return nil
}

// interleavedProducts ejecuta concurrent una sola vez, justo después de la primera lectura de ListAll.
type interleavedProducts struct {
	repository.ProductRepository
	concurrent func()
}

func (r *interleavedProducts) ListAll(ctx context.Context) ([]entity.Product, error) {
	products, err := r.ProductRepository.ListAll(ctx)
	if r.concurrent != nil {
		fn := r.concurrent
		r.concurrent = nil
		fn()
	}
	return products, err
}

// failingAuditRunner envuelve el TxRunner sustituyendo la bitácora por una que siempre falla.
type failingAuditRunner struct{ inner catalog.TxRunner }

type failingAudit struct{}

func (failingAudit) Create(context.Context, *entity.AuditEntry) error {
	return errors.New("tabla audit no disponible")
}
func (failingAudit) ListRecent(context.Context, int) ([]entity.AuditEntry, error) { return nil, nil }

func (r failingAuditRunner) Run(ctx context.Context, fn func(repository.TxRepos) error) error {
	return r.inner.Run(ctx, func(repos repository.TxRepos) error {
		repos.Audit = failingAudit{}
		return fn(repos)
	})
}

func newUseCase(t *testing.T) (*catalog.UseCase, *memory.Store, *fakeCache) {
	t.Helper()
	store := memory.NewStore()
	cache := &fakeCache{}
	auditSvc := audit.NewService(store.Audit(), logger.Nop())
	uc := catalog.NewUseCase(store, store.Products(), auditSvc, cache, entity.DefaultReorderThreshold, logger.Nop())
	return uc, store, cache
}

func request(sku, name, category, brand string, stock int) dto.RegisterProductRequest {
	return dto.RegisterProductRequest{
		SKU: sku, Name: name, Category: category, Brand: brand,
		PurchasePrice: decimal.NewFromInt(100), SalePrice: decimal.NewFromInt(130),
		InitialStock: stock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaProductoYAnotaBitacora(t *testing.T) {
	ctx := context.Background()
	uc, store, cache := newUseCase(t)

	p, err := uc.Register(ctx, request("LAP-001", "ThinkPad", "Laptops", "Lenovo", 3))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultReorderThreshold, p.ReorderThreshold, "umbral por defecto")
	assert.True(t, p.LowStock)
	assert.Equal(t, 1, cache.invalidated)

	entries, err := store.Audit().ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.AuditActionCreation, entries[0].Action)
	assert.Equal(t, "Producto LAP-001 - ThinkPad creado", entries[0].Detail)
}

func TestRegister_SKUDuplicado(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newUseCase(t)

	_, err := uc.Register(ctx, request("LAP-001", "ThinkPad", "", "", 1))
	require.NoError(t, err)
	_, err = uc.Register(ctx, request("LAP-001", "Otro nombre", "", "", 1))
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)

	all, err := store.Products().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "ThinkPad", all[0].Name)

	entries, err := store.Audit().ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "el intento fallido no deja rastro en la bitácora")
}

func TestRegister_EntradaInvalida(t *testing.T) {
	uc, _, _ := newUseCase(t)
	neg := -1
	cases := map[string]dto.RegisterProductRequest{
		"sku vacío":       request(" ", "X", "", "", 1),
		"nombre vacío":    request("A", "", "", "", 1),
		"stock negativo":  request("A", "X", "", "", -1),
		"umbral negativo": func() dto.RegisterProductRequest { r := request("A", "X", "", "", 1); r.ReorderThreshold = &neg; return r }(),
		"precio negativo": func() dto.RegisterProductRequest {
			r := request("A", "X", "", "", 1)
			r.SalePrice = decimal.NewFromInt(-5)
			return r
		}(),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegister_UmbralExplicitoCero(t *testing.T) {
	uc, _, _ := newUseCase(t)
	zero := 0
	in := request("A", "X", "", "", 0)
	in.ReorderThreshold = &zero

	p, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, p.ReorderThreshold)
	assert.False(t, p.LowStock)
}

func TestRegister_FalloDeBitacoraNoFallaElRegistro(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	auditSvc := audit.NewService(store.Audit(), logger.Nop())
	uc := catalog.NewUseCase(failingAuditRunner{inner: store}, store.Products(), auditSvc, nil, 5, logger.Nop())

	_, err := uc.Register(ctx, request("A", "Mouse", "", "", 1))
	require.NoError(t, err)

	p, err := store.Products().GetBySKU(ctx, "A")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

// ──────────────────────────────────────────────────────────────────────────────
// Find / GetStock / Snapshot
// ──────────────────────────────────────────────────────────────────────────────

func TestFind_VacioDevuelveTodoOrdenado(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUseCase(t)
	for _, r := range []dto.RegisterProductRequest{
		request("M-1", "Monitor", "Monitores", "LG", 1),
		request("L-1", "Laptop", "Laptops", "Dell", 1),
		request("T-1", "Teclado", "Periféricos", "Logitech", 1),
	} {
		_, err := uc.Register(ctx, r)
		require.NoError(t, err)
	}

	all, err := uc.Find(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 3, all.Total)
	assert.Equal(t, []string{"Laptop", "Monitor", "Teclado"},
		[]string{all.Items[0].Name, all.Items[1].Name, all.Items[2].Name})

	found, err := uc.Find(ctx, "LOGI")
	require.NoError(t, err)
	require.Equal(t, 1, found.Total)
	assert.Equal(t, "T-1", found.Items[0].SKU)

	none, err := uc.Find(ctx, "inexistente")
	require.NoError(t, err)
	assert.Empty(t, none.Items)
}

func TestGetStock(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUseCase(t)
	_, err := uc.Register(ctx, request("A", "Mouse", "", "", 7))
	require.NoError(t, err)

	stock, found, err := uc.GetStock(ctx, "A")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 7, stock)

	_, found, err = uc.GetStock(ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSnapshot_UsaCache(t *testing.T) {
	ctx := context.Background()
	uc, _, cache := newUseCase(t)
	_, err := uc.Register(ctx, request("A", "Mouse", "", "", 7))
	require.NoError(t, err)

	first, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, cache.sets, "miss: se guarda")

	_, err = uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "hit: no se vuelve a guardar")
}

func TestSnapshot_CacheCaidaLeeDelAlmacen(t *testing.T) {
	ctx := context.Background()
	uc, _, cache := newUseCase(t)
	_, err := uc.Register(ctx, request("A", "Mouse", "", "", 7))
	require.NoError(t, err)
	cache.getErr = errors.New("redis caído")

	got, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSnapshot_MovimientoEntreLecturaYGuardadoNoDejaSnapshotViejo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cache := &fakeCache{}
	auditSvc := audit.NewService(store.Audit(), logger.Nop())
	ledger := inventory.NewRecordMovementUseCase(store, store.Movements(), auditSvc, cache, logger.Nop())

	products := &interleavedProducts{ProductRepository: store.Products()}
	uc := catalog.NewUseCase(store, products, auditSvc, cache, entity.DefaultReorderThreshold, logger.Nop())
	_, err := uc.Register(ctx, request("A", "Mouse", "", "", 10))
	require.NoError(t, err)

	products.concurrent = func() {
		_, err := ledger.RecordMovement(ctx, inventory.MovementInput{SKU: "A", Kind: "salida", Quantity: 7})
		require.NoError(t, err)
	}
	first, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 10, first[0].Stock, "la lectura ocurrió antes del movimiento")
	assert.Zero(t, cache.sets, "la generación cambió: no se guarda")

	second, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 3, second[0].Stock)

	stock, _, err := uc.GetStock(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, stock, second[0].Stock)
}
