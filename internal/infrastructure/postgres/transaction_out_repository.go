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

var _ repository.TransactionOutRepository = (*TransactionOutRepo)(nil)

// TransactionOutRepo implementación de salidas sobre PostgreSQL (pool o tx).
type TransactionOutRepo struct {
	q Querier
}

// NewTransactionOutRepository construye el adaptador de salidas.
func NewTransactionOutRepository(q Querier) *TransactionOutRepo {
	return &TransactionOutRepo{q: q}
}

// Create persiste la salida con la misma disciplina de errores que las entradas.
func (r *TransactionOutRepo) Create(ctx context.Context, t *entity.TransactionOut) error {
	query := `
		INSERT INTO transactions_out (id, code, invoice, product_id, warehouse_id, amount, purpose, exit_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Code, t.Invoice, t.ProductID, t.WarehouseID,
		t.Amount, t.Purpose, t.ExitDate, t.CreatedAt,
	)
	if err != nil {
		if name, ok := uniqueConstraint(err); ok {
			switch name {
			case "transactions_out_code_key":
				return domain.ErrCodeCollision
			case "transactions_out_invoice_key":
				return domain.ErrDuplicateInvoice
			}
		}
		return fmt.Errorf("create transaction out: %w", err)
	}
	return nil
}

const transactionOutSelect = `
	SELECT t.id, t.code, t.invoice,
	       p.id, p.code, p.name,
	       w.id, w.name,
	       t.amount, t.purpose, t.exit_date, t.created_at
	FROM transactions_out t
	JOIN products p ON p.id = t.product_id
	JOIN warehouses w ON w.id = t.warehouse_id`

// GetByID obtiene la salida con sus referencias resueltas; nil si no existe.
func (r *TransactionOutRepo) GetByID(ctx context.Context, id string) (*entity.TransactionOutDetail, error) {
	var d entity.TransactionOutDetail
	err := r.q.QueryRow(ctx, transactionOutSelect+" WHERE t.id = $1", id).Scan(
		&d.ID, &d.Code, &d.Invoice,
		&d.Product.ID, &d.Product.Code, &d.Product.Name,
		&d.Warehouse.ID, &d.Warehouse.Name,
		&d.Amount, &d.Purpose, &d.ExitDate, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction out: %w", err)
	}
	return &d, nil
}

// ExistsInvoice reporta si la factura ya está registrada entre las salidas.
func (r *TransactionOutRepo) ExistsInvoice(ctx context.Context, invoice string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions_out WHERE invoice = $1)`, invoice,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists invoice: %w", err)
	}
	return exists, nil
}

// LastCode devuelve el código de la salida más reciente, "" si no hay.
func (r *TransactionOutRepo) LastCode(ctx context.Context) (string, error) {
	var code string
	err := r.q.QueryRow(ctx,
		`SELECT code FROM transactions_out ORDER BY created_at DESC, code DESC LIMIT 1`,
	).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last code out: %w", err)
	}
	return code, nil
}

// List lista salidas con búsqueda por factura, código o nombre de producto.
func (r *TransactionOutRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.TransactionOutDetail, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE t.invoice ILIKE $1 OR t.code ILIKE $1 OR p.name ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	countQuery := `
		SELECT count(*) FROM transactions_out t
		JOIN products p ON p.id = t.product_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions out: %w", err)
	}

	query := transactionOutSelect + where +
		fmt.Sprintf(" ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions out: %w", err)
	}
	defer rows.Close()

	var list []*entity.TransactionOutDetail
	for rows.Next() {
		var d entity.TransactionOutDetail
		if err := rows.Scan(
			&d.ID, &d.Code, &d.Invoice,
			&d.Product.ID, &d.Product.Code, &d.Product.Name,
			&d.Warehouse.ID, &d.Warehouse.Name,
			&d.Amount, &d.Purpose, &d.ExitDate, &d.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan transaction out: %w", err)
		}
		list = append(list, &d)
	}
	return list, total, rows.Err()
}

// Delete elimina la salida; domain.ErrNotFound si no existe.
func (r *TransactionOutRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions_out WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
