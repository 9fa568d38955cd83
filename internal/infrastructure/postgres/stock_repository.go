package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila (producto, bodega). Fila ausente se devuelve como
// registro en cero, nunca nil.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_id, qty_on_hand, version, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.QtyOnHand, &s.Version, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{ProductID: productID, WarehouseID: warehouseID, QtyOnHand: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// UpsertAdd inserta la fila con qty_on_hand = qty y version = 1, o suma qty y
// sube la versión si ya existe. Una sola sentencia: el motor la hace atómica.
func (r *StockRepo) UpsertAdd(ctx context.Context, productID, warehouseID string, qty decimal.Decimal) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, qty_on_hand, version, updated_at)
		VALUES ($1, $2, $3, 1, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET qty_on_hand = stock.qty_on_hand + EXCLUDED.qty_on_hand,
		              version = stock.version + 1,
		              updated_at = now()`
	if _, err := r.q.Exec(ctx, query, productID, warehouseID, qty); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// DecrementGuarded ejecuta el update condicional del bloqueo optimista.
// Cero filas afectadas significa versión vencida o cantidad insuficiente:
// el llamador decide si reintenta.
func (r *StockRepo) DecrementGuarded(ctx context.Context, productID, warehouseID string, qty decimal.Decimal, version int64) (bool, error) {
	query := `
		UPDATE stock
		SET qty_on_hand = qty_on_hand - $3, version = version + 1, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2
		  AND version = $4 AND qty_on_hand >= $3`
	tag, err := r.q.Exec(ctx, query, productID, warehouseID, qty, version)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByWarehouse lista las filas de stock de una bodega.
func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_id, qty_on_hand, version, updated_at
		FROM stock WHERE warehouse_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock by warehouse: %w", err)
	}
	defer rows.Close()
	return scanStockRows(rows)
}

// ListByProduct lista las filas de stock de un producto en todas las bodegas.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_id, qty_on_hand, version, updated_at
		FROM stock WHERE product_id = $1
		ORDER BY warehouse_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	return scanStockRows(rows)
}

func scanStockRows(rows pgx.Rows) ([]*entity.StockRecord, error) {
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.QtyOnHand, &s.Version, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
