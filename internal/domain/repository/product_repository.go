package repository

import (
	"context"
	"time"

	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las implementaciones devuelven domain.ErrDuplicateSKU, domain.ErrNotFound o errores envueltos en domain.ErrStorage.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetBySKU devuelve nil, nil si el SKU no existe.
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetStockForUpdate lee el stock y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetStockForUpdate(ctx context.Context, sku string) (stock int, found bool, err error)
	// UpdateStock fija el stock y refresca updated_at. Solo lo usa el libro de movimientos.
	UpdateStock(ctx context.Context, sku string, newStock int, at time.Time) error
	// Search filtra por subcadena (sin distinguir mayúsculas) en sku, nombre, categoría o marca, ordenado por nombre.
	Search(ctx context.Context, query string) ([]entity.Product, error)
	// ListAll devuelve el catálogo completo ordenado por nombre.
	ListAll(ctx context.Context) ([]entity.Product, error)
}
