package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Los valores nulos heredados se leen como cero.
const productColumns = `sku, name, COALESCE(category, ''), COALESCE(brand, ''),
	COALESCE(purchase_price, 0), COALESCE(sale_price, 0), COALESCE(stock, 0),
	COALESCE(reorder_threshold, 5), created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU repetido devuelve domain.ErrDuplicateSKU.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (sku, name, category, brand, purchase_price, sale_price, stock, reorder_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.SKU, p.Name, p.Category, p.Brand, p.PurchasePrice, p.SalePrice,
		p.Stock, p.ReorderThreshold, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return storageErr("insert product", err)
	}
	return nil
}

// GetBySKU obtiene un producto por SKU; nil, nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get product", err)
	}
	return p, nil
}

// GetStockForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *ProductRepo) GetStockForUpdate(ctx context.Context, sku string) (int, bool, error) {
	var stock int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(stock, 0) FROM products WHERE sku = $1 FOR UPDATE`, sku).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, storageErr("lock product stock", err)
	}
	return stock, true, nil
}

// UpdateStock fija el stock y refresca updated_at.
func (r *ProductRepo) UpdateStock(ctx context.Context, sku string, newStock int, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = $3 WHERE sku = $1`, sku, newStock, at)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: stock negativo", domain.ErrInvalidInput)
		}
		return storageErr("update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search ILIKE sobre sku, nombre, categoría y marca, ordenado por nombre.
func (r *ProductRepo) Search(ctx context.Context, query string) ([]entity.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products
		WHERE sku ILIKE $1 ESCAPE '\' OR name ILIKE $1 ESCAPE '\'
		   OR category ILIKE $1 ESCAPE '\' OR brand ILIKE $1 ESCAPE '\'
		ORDER BY name, sku`
	return r.list(ctx, "search products", q, containsPattern(query))
}

// ListAll catálogo completo ordenado por nombre.
func (r *ProductRepo) ListAll(ctx context.Context) ([]entity.Product, error) {
	return r.list(ctx, "list products", `SELECT `+productColumns+` FROM products ORDER BY name, sku`)
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	out := make([]entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return out, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.SKU, &p.Name, &p.Category, &p.Brand, &p.PurchasePrice, &p.SalePrice,
		&p.Stock, &p.ReorderThreshold, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
