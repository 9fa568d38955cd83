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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de proveedores sobre PostgreSQL (pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create inserta el proveedor; colisión del código SUP-n → domain.ErrCodeCollision.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, code, name, address, contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Code, s.Name, s.Address, s.Contact, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if name, ok := uniqueConstraint(err); ok && name == "suppliers_code_key" {
			return domain.ErrCodeCollision
		}
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

// GetByID obtiene el proveedor; nil si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `
		SELECT id, code, name, address, contact, created_at, updated_at
		FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Code, &s.Name, &s.Address, &s.Contact, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// LastCode devuelve el código del proveedor más reciente, "" si no hay.
func (r *SupplierRepo) LastCode(ctx context.Context) (string, error) {
	var code string
	err := r.q.QueryRow(ctx,
		`SELECT code FROM suppliers ORDER BY created_at DESC, code DESC LIMIT 1`,
	).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last supplier code: %w", err)
	}
	return code, nil
}

// List lista proveedores con búsqueda por nombre o código.
func (r *SupplierRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Supplier, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE name ILIKE $1 OR code ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM suppliers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	query := `
		SELECT id, code, name, address, contact, created_at, updated_at
		FROM suppliers` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Address, &s.Contact, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// Update modifica los datos del proveedor; el código no cambia.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, address = $3, contact = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Address, s.Contact, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el proveedor; domain.ErrNotFound si no existe.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
