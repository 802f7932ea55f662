// Package catalog implementa el catálogo de productos: registro, búsqueda, consulta de stock y snapshot para analítica.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/techinventory-api/internal/application/audit"
	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
	"github.com/jhoicas/techinventory-api/pkg/logger"
)

// UseCase casos de uso del catálogo.
type UseCase struct {
	tx               TxRunner
	products         repository.ProductRepository
	audit            *audit.Service
	cache            SnapshotCache
	defaultThreshold int
	log              *logger.Logger
	now              func() time.Time
}

// NewUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewUseCase(
	tx TxRunner,
	products repository.ProductRepository,
	auditSvc *audit.Service,
	cache SnapshotCache,
	defaultThreshold int,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	if defaultThreshold < 0 {
		defaultThreshold = entity.DefaultReorderThreshold
	}
	return &UseCase{
		tx:               tx,
		products:         products,
		audit:            auditSvc,
		cache:            cache,
		defaultThreshold: defaultThreshold,
		log:              log.Component("catalog"),
		now:              time.Now,
	}
}

// Register crea el producto y anota "creation" en la bitácora dentro de la misma transacción.
// Devuelve domain.ErrDuplicateSKU si el SKU ya existe.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.newProduct(in)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		uc.audit.AppendInTx(ctx, r.Audit, entity.AuditActionCreation,
			fmt.Sprintf("Producto %s - %s creado", p.SKU, p.Name))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	resp := ToProductResponse(*p)
	return &resp, nil
}

func (uc *UseCase) newProduct(in dto.RegisterProductRequest) (*entity.Product, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: sku y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.InitialStock < 0 {
		return nil, fmt.Errorf("%w: el stock inicial no puede ser negativo", domain.ErrInvalidInput)
	}
	threshold := uc.defaultThreshold
	if in.ReorderThreshold != nil {
		if *in.ReorderThreshold < 0 {
			return nil, fmt.Errorf("%w: el umbral de reposición no puede ser negativo", domain.ErrInvalidInput)
		}
		threshold = *in.ReorderThreshold
	}
	now := uc.now()
	return &entity.Product{
		SKU:              sku,
		Name:             name,
		Category:         strings.TrimSpace(in.Category),
		Brand:            strings.TrimSpace(in.Brand),
		PurchasePrice:    in.PurchasePrice,
		SalePrice:        in.SalePrice,
		Stock:            in.InitialStock,
		ReorderThreshold: threshold,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Find busca por subcadena (sin distinguir mayúsculas) en sku, nombre, categoría o marca.
// Con query vacío devuelve el catálogo completo ordenado por nombre.
func (uc *UseCase) Find(ctx context.Context, query string) (*dto.ProductListResponse, error) {
	var (
		products []entity.Product
		err      error
	)
	if q := strings.TrimSpace(query); q == "" {
		products, err = uc.products.ListAll(ctx)
	} else {
		products, err = uc.products.Search(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: ToProductResponses(products), Total: len(products)}, nil
}

// GetStock devuelve el stock actual; found=false si el SKU no existe.
func (uc *UseCase) GetStock(ctx context.Context, sku string) (stock int, found bool, err error) {
	p, err := uc.products.GetBySKU(ctx, strings.TrimSpace(sku))
	if err != nil {
		return 0, false, err
	}
	if p == nil {
		return 0, false, nil
	}
	return p.Stock, true, nil
}

// Snapshot lectura completa del catálogo ordenada por nombre, para KPIs y estadística.
// Se sirve desde la caché cuando hay una entrada vigente. Lo leído del almacén solo se
// cachea bajo la generación observada antes de leer.
func (uc *UseCase) Snapshot(ctx context.Context) ([]entity.Product, error) {
	var (
		gen       int64
		cacheable bool
	)
	if uc.cache != nil {
		products, g, ok, err := uc.cache.Get(ctx)
		switch {
		case err != nil:
			uc.log.Warn().Err(err).Msg("caché de snapshot no disponible")
		case ok:
			return products, nil
		default:
			gen, cacheable = g, true
		}
	}
	products, err := uc.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := uc.cache.Set(ctx, gen, products); err != nil {
			uc.log.Warn().Err(err).Int64("generation", gen).Msg("no se pudo guardar el snapshot en caché")
		}
	}
	return products, nil
}

func (uc *UseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el snapshot en caché")
	}
}

// ToProductResponse mapea la entidad al DTO de salida.
func ToProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		SKU:              p.SKU,
		Name:             p.Name,
		Category:         p.Category,
		Brand:            p.Brand,
		PurchasePrice:    p.PurchasePrice,
		SalePrice:        p.SalePrice,
		Stock:            p.Stock,
		ReorderThreshold: p.ReorderThreshold,
		LowStock:         p.IsLowStock(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToProductResponses mapea una lista conservando el orden.
func ToProductResponses(products []entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
