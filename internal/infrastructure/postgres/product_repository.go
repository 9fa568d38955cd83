package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de productos sobre PostgreSQL (pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta el producto; colisión del código PART-n → domain.ErrCodeCollision.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, code, name, category_id, unit_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Code, p.Name, p.CategoryID, p.UnitID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if name, ok := uniqueConstraint(err); ok && name == "products_code_key" {
			return domain.ErrCodeCollision
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

const productSelect = `
	SELECT p.id, p.code, p.name,
	       c.id, c.name, c.created_at, c.updated_at,
	       u.id, u.code, u.description, u.created_at, u.updated_at,
	       p.created_at, p.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN units u ON u.id = p.unit_id`

func scanProduct(row pgx.Row) (*entity.ProductDetail, error) {
	var d entity.ProductDetail
	err := row.Scan(
		&d.ID, &d.Code, &d.Name,
		&d.Category.ID, &d.Category.Name, &d.Category.CreatedAt, &d.Category.UpdatedAt,
		&d.Unit.ID, &d.Unit.Code, &d.Unit.Description, &d.Unit.CreatedAt, &d.Unit.UpdatedAt,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByID obtiene el producto con categoría y unidad; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.ProductDetail, error) {
	d, err := scanProduct(r.q.QueryRow(ctx, productSelect+" WHERE p.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return d, nil
}

// LastCode devuelve el código del producto más reciente, "" si no hay.
func (r *ProductRepo) LastCode(ctx context.Context) (string, error) {
	var code string
	err := r.q.QueryRow(ctx,
		`SELECT code FROM products ORDER BY created_at DESC, code DESC LIMIT 1`,
	).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last product code: %w", err)
	}
	return code, nil
}

// List lista productos con búsqueda por nombre o código.
func (r *ProductRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.ProductDetail, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE p.name ILIKE $1 OR p.code ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := productSelect + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductDetail
	for rows.Next() {
		d, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

// Update modifica nombre, categoría y unidad; el código no cambia.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category_id = $3, unit_id = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Name, p.CategoryID, p.UnitID, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto; domain.ErrNotFound si no existe.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
