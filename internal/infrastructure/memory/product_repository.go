package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// ProductRepository implementa repository.ProductRepository en memoria.
type ProductRepository struct {
	store *Store
	tx    *state
}

// Create inserta el producto; SKU repetido devuelve domain.ErrDuplicateSKU.
func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	return r.store.view(r.tx, func(st *state) error {
		if _, ok := st.products[p.SKU]; ok {
			return domain.ErrDuplicateSKU
		}
		st.products[p.SKU] = *p
		return nil
	})
}

// GetBySKU devuelve nil, nil si no existe.
func (r *ProductRepository) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.view(r.tx, func(st *state) error {
		if p, ok := st.products[sku]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetStockForUpdate lee el stock. Dentro de Run el mutex del Store ya serializa el acceso.
func (r *ProductRepository) GetStockForUpdate(_ context.Context, sku string) (int, bool, error) {
	var (
		stock int
		found bool
	)
	err := r.store.view(r.tx, func(st *state) error {
		p, ok := st.products[sku]
		stock, found = p.Stock, ok
		return nil
	})
	return stock, found, err
}

// UpdateStock fija el stock y updated_at.
func (r *ProductRepository) UpdateStock(_ context.Context, sku string, newStock int, at time.Time) error {
	return r.store.view(r.tx, func(st *state) error {
		p, ok := st.products[sku]
		if !ok {
			return domain.ErrNotFound
		}
		if newStock < 0 {
			return fmt.Errorf("%w: stock negativo", domain.ErrInvalidInput)
		}
		p.Stock = newStock
		p.UpdatedAt = at
		st.products[sku] = p
		return nil
	})
}

// Search subcadena sin distinguir mayúsculas en sku, nombre, categoría o marca.
func (r *ProductRepository) Search(_ context.Context, query string) ([]entity.Product, error) {
	q := strings.ToLower(query)
	out := make([]entity.Product, 0)
	err := r.store.view(r.tx, func(st *state) error {
		for _, p := range st.sortedProducts() {
			if matches(p, q) {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

// ListAll catálogo completo ordenado por nombre.
func (r *ProductRepository) ListAll(_ context.Context) ([]entity.Product, error) {
	var out []entity.Product
	err := r.store.view(r.tx, func(st *state) error {
		out = st.sortedProducts()
		return nil
	})
	return out, err
}

func matches(p entity.Product, q string) bool {
	for _, field := range []string{p.SKU, p.Name, p.Category, p.Brand} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
