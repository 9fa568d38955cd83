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

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación de unidades de medida sobre PostgreSQL (pool o tx).
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador de unidades.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	query := `
		INSERT INTO units (id, code, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, u.ID, u.Code, u.Description, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if name, ok := uniqueConstraint(err); ok && name == "units_code_key" {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(ctx,
		`SELECT id, code, description, created_at, updated_at FROM units WHERE id = $1`, id,
	).Scan(&u.ID, &u.Code, &u.Description, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

func (r *UnitRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Unit, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE code ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM units`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count units: %w", err)
	}

	query := `SELECT id, code, description, created_at, updated_at FROM units` + where +
		fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Code, &u.Description, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, total, rows.Err()
}

func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE units SET code = $2, description = $3, updated_at = $4 WHERE id = $1`,
		u.ID, u.Code, u.Description, u.UpdatedAt,
	)
	if err != nil {
		if name, ok := uniqueConstraint(err); ok && name == "units_code_key" {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UnitRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
