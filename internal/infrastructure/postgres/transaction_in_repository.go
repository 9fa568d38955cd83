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

var _ repository.TransactionInRepository = (*TransactionInRepo)(nil)

// TransactionInRepo implementación de entradas sobre PostgreSQL (pool o tx).
type TransactionInRepo struct {
	q Querier
}

// NewTransactionInRepository construye el adaptador de entradas.
func NewTransactionInRepository(q Querier) *TransactionInRepo {
	return &TransactionInRepo{q: q}
}

// Create persiste la entrada. El constraint del código distingue la colisión
// reintentable de la factura duplicada, que es terminal.
func (r *TransactionInRepo) Create(ctx context.Context, t *entity.TransactionIn) error {
	query := `
		INSERT INTO transactions_in (id, code, invoice, product_id, supplier_id, warehouse_id, amount, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Code, t.Invoice, t.ProductID, t.SupplierID, t.WarehouseID,
		t.Amount, t.Date, t.CreatedAt,
	)
	if err != nil {
		if name, ok := uniqueConstraint(err); ok {
			switch name {
			case "transactions_in_code_key":
				return domain.ErrCodeCollision
			case "transactions_in_invoice_key":
				return domain.ErrDuplicateInvoice
			}
		}
		return fmt.Errorf("create transaction in: %w", err)
	}
	return nil
}

const transactionInSelect = `
	SELECT t.id, t.code, t.invoice,
	       p.id, p.code, p.name,
	       s.id, s.code, s.name,
	       w.id, w.name,
	       t.amount, t.date, t.created_at
	FROM transactions_in t
	JOIN products p ON p.id = t.product_id
	JOIN suppliers s ON s.id = t.supplier_id
	JOIN warehouses w ON w.id = t.warehouse_id`

// GetByID obtiene la entrada con sus referencias resueltas; nil si no existe.
func (r *TransactionInRepo) GetByID(ctx context.Context, id string) (*entity.TransactionInDetail, error) {
	var d entity.TransactionInDetail
	err := r.q.QueryRow(ctx, transactionInSelect+" WHERE t.id = $1", id).Scan(
		&d.ID, &d.Code, &d.Invoice,
		&d.Product.ID, &d.Product.Code, &d.Product.Name,
		&d.Supplier.ID, &d.Supplier.Code, &d.Supplier.Name,
		&d.Warehouse.ID, &d.Warehouse.Name,
		&d.Amount, &d.Date, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction in: %w", err)
	}
	return &d, nil
}

// ExistsInvoice reporta si la factura ya está registrada entre las entradas.
func (r *TransactionInRepo) ExistsInvoice(ctx context.Context, invoice string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions_in WHERE invoice = $1)`, invoice,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists invoice: %w", err)
	}
	return exists, nil
}

// LastCode devuelve el código de la entrada más reciente, "" si no hay.
func (r *TransactionInRepo) LastCode(ctx context.Context) (string, error) {
	var code string
	err := r.q.QueryRow(ctx,
		`SELECT code FROM transactions_in ORDER BY created_at DESC, code DESC LIMIT 1`,
	).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last code in: %w", err)
	}
	return code, nil
}

// List lista entradas con búsqueda por factura, código o nombre de producto.
func (r *TransactionInRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.TransactionInDetail, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE t.invoice ILIKE $1 OR t.code ILIKE $1 OR p.name ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	countQuery := `
		SELECT count(*) FROM transactions_in t
		JOIN products p ON p.id = t.product_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions in: %w", err)
	}

	query := transactionInSelect + where +
		fmt.Sprintf(" ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions in: %w", err)
	}
	defer rows.Close()

	var list []*entity.TransactionInDetail
	for rows.Next() {
		var d entity.TransactionInDetail
		if err := rows.Scan(
			&d.ID, &d.Code, &d.Invoice,
			&d.Product.ID, &d.Product.Code, &d.Product.Name,
			&d.Supplier.ID, &d.Supplier.Code, &d.Supplier.Name,
			&d.Warehouse.ID, &d.Warehouse.Name,
			&d.Amount, &d.Date, &d.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan transaction in: %w", err)
		}
		list = append(list, &d)
	}
	return list, total, rows.Err()
}

// Delete elimina la entrada; domain.ErrNotFound si no existe.
func (r *TransactionInRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions_in WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
