package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de órdenes de compra. Recibe el pool
// directamente: Create abre su propia transacción para insertar la orden
// y sus renglones juntos.
type PurchaseOrderRepo struct {
	pool *pgxpool.Pool
}

// NewPurchaseOrderRepository construye el adaptador de órdenes de compra.
func NewPurchaseOrderRepository(pool *pgxpool.Pool) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{pool: pool}
}

// Create inserta la orden con sus renglones en una sola transacción.
// orderNumber duplicado → domain.ErrDuplicate.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderQuery := `
		INSERT INTO purchase_orders (id, order_number, supplier_id, delivery_date, payment_date, description, use_ppn, ppn, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = tx.Exec(ctx, orderQuery,
		po.ID, po.OrderNumber, po.SupplierID, po.DeliveryDate, po.PaymentDate,
		po.Description, po.UsePPN, po.PPN, po.TotalPrice, po.CreatedAt,
	)
	if err != nil {
		if name, ok := uniqueConstraint(err); ok && name == "purchase_orders_order_number_key" {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create purchase order: %w", err)
	}

	lineQuery := `
		INSERT INTO purchase_order_lines (id, purchase_order_id, product_id, base_price, amount, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, line := range po.Lines {
		if _, err := tx.Exec(ctx, lineQuery,
			line.ID, po.ID, line.ProductID, line.BasePrice, line.Amount, line.TotalPrice,
		); err != nil {
			return fmt.Errorf("create purchase order line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const purchaseOrderSelect = `
	SELECT po.id, po.order_number,
	       s.id, s.code, s.name, s.address, s.contact, s.created_at, s.updated_at,
	       po.delivery_date, po.payment_date, po.description, po.use_ppn, po.ppn, po.total_price, po.created_at
	FROM purchase_orders po
	JOIN suppliers s ON s.id = po.supplier_id`

// GetByID obtiene la orden con proveedor y renglones; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrderDetail, error) {
	var d entity.PurchaseOrderDetail
	err := r.pool.QueryRow(ctx, purchaseOrderSelect+" WHERE po.id = $1", id).Scan(
		&d.ID, &d.OrderNumber,
		&d.Supplier.ID, &d.Supplier.Code, &d.Supplier.Name, &d.Supplier.Address,
		&d.Supplier.Contact, &d.Supplier.CreatedAt, &d.Supplier.UpdatedAt,
		&d.DeliveryDate, &d.PaymentDate, &d.Description, &d.UsePPN, &d.PPN, &d.TotalPrice, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	lines, err := r.linesFor(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Lines = lines
	return &d, nil
}

// ExistsOrderNumber reporta si el número de orden ya está en uso.
func (r *PurchaseOrderRepo) ExistsOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM purchase_orders WHERE order_number = $1)`, orderNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists order number: %w", err)
	}
	return exists, nil
}

// List lista órdenes con búsqueda por número o proveedor.
func (r *PurchaseOrderRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.PurchaseOrderDetail, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE po.order_number ILIKE $1 OR s.name ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	countQuery := `
		SELECT count(*) FROM purchase_orders po
		JOIN suppliers s ON s.id = po.supplier_id` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	query := purchaseOrderSelect + where +
		fmt.Sprintf(" ORDER BY po.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrderDetail
	for rows.Next() {
		var d entity.PurchaseOrderDetail
		if err := rows.Scan(
			&d.ID, &d.OrderNumber,
			&d.Supplier.ID, &d.Supplier.Code, &d.Supplier.Name, &d.Supplier.Address,
			&d.Supplier.Contact, &d.Supplier.CreatedAt, &d.Supplier.UpdatedAt,
			&d.DeliveryDate, &d.PaymentDate, &d.Description, &d.UsePPN, &d.PPN, &d.TotalPrice, &d.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, d := range list {
		lines, err := r.linesFor(ctx, d.ID)
		if err != nil {
			return nil, 0, err
		}
		d.Lines = lines
	}
	return list, total, nil
}

// Delete elimina la orden; los renglones caen por FK ON DELETE CASCADE.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) linesFor(ctx context.Context, orderID string) ([]entity.PurchaseOrderLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, base_price, amount, total_price
		FROM purchase_order_lines WHERE purchase_order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.BasePrice, &l.Amount, &l.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
