package transactions_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// fakeStore emula el motor relacional en memoria: constraints únicos sobre
// código y factura, upsert atómico y update condicional guardado por versión.
// conflictDecrements y codeCollisions fuerzan carreras perdidas para ejercitar
// los caminos de reintento sin necesidad de goroutines sincronizadas al ciclo.
type fakeStore struct {
	mu sync.Mutex

	stock      map[string]*entity.StockRecord
	ins        map[string]*entity.TransactionIn
	insOrder   []string
	outs       map[string]*entity.TransactionOut
	outsOrder  []string
	products   map[string]*entity.ProductDetail
	suppliers  map[string]*entity.Supplier
	warehouses map[string]*entity.Warehouse

	conflictDecrements int // próximos N decrementos devuelven cero filas
	codeCollisions     int // próximos N inserts chocan el constraint del código
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		stock:      map[string]*entity.StockRecord{},
		ins:        map[string]*entity.TransactionIn{},
		outs:       map[string]*entity.TransactionOut{},
		products:   map[string]*entity.ProductDetail{},
		suppliers:  map[string]*entity.Supplier{},
		warehouses: map[string]*entity.Warehouse{},
	}
}

func stockKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

type storeSnapshot struct {
	stock     map[string]*entity.StockRecord
	ins       map[string]*entity.TransactionIn
	insOrder  []string
	outs      map[string]*entity.TransactionOut
	outsOrder []string
}

// snapshot copia el estado mutable; los contadores de carrera forzada no se
// restauran, un conflicto consumido queda consumido aunque la tx se revierta.
func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		stock:     make(map[string]*entity.StockRecord, len(s.stock)),
		ins:       make(map[string]*entity.TransactionIn, len(s.ins)),
		insOrder:  append([]string(nil), s.insOrder...),
		outs:      make(map[string]*entity.TransactionOut, len(s.outs)),
		outsOrder: append([]string(nil), s.outsOrder...),
	}
	for k, v := range s.stock {
		rec := *v
		snap.stock[k] = &rec
	}
	for k, v := range s.ins {
		snap.ins[k] = v
	}
	for k, v := range s.outs {
		snap.outs[k] = v
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.stock = snap.stock
	s.ins = snap.ins
	s.insOrder = snap.insOrder
	s.outs = snap.outs
	s.outsOrder = snap.outsOrder
}

// ── operaciones sin lock (las serializa fakeTxRunner o el wrapper con lock) ──

func (s *fakeStore) getStock(productID, warehouseID string) *entity.StockRecord {
	if rec, ok := s.stock[stockKey(productID, warehouseID)]; ok {
		copia := *rec
		return &copia
	}
	return &entity.StockRecord{ProductID: productID, WarehouseID: warehouseID, QtyOnHand: decimal.Zero}
}

func (s *fakeStore) upsertAdd(productID, warehouseID string, qty decimal.Decimal) {
	key := stockKey(productID, warehouseID)
	if rec, ok := s.stock[key]; ok {
		rec.QtyOnHand = rec.QtyOnHand.Add(qty)
		rec.Version++
		rec.UpdatedAt = time.Now()
		return
	}
	s.stock[key] = &entity.StockRecord{
		ProductID:   productID,
		WarehouseID: warehouseID,
		QtyOnHand:   qty,
		Version:     1,
		UpdatedAt:   time.Now(),
	}
}

func (s *fakeStore) decrementGuarded(productID, warehouseID string, qty decimal.Decimal, version int64) bool {
	if s.conflictDecrements > 0 {
		s.conflictDecrements--
		return false
	}
	rec, ok := s.stock[stockKey(productID, warehouseID)]
	if !ok || rec.Version != version || rec.QtyOnHand.LessThan(qty) {
		return false
	}
	rec.QtyOnHand = rec.QtyOnHand.Sub(qty)
	rec.Version++
	rec.UpdatedAt = time.Now()
	return true
}

func (s *fakeStore) createIn(t *entity.TransactionIn) error {
	if s.codeCollisions > 0 {
		s.codeCollisions--
		return domain.ErrCodeCollision
	}
	for _, prev := range s.ins {
		if prev.Code == t.Code {
			return domain.ErrCodeCollision
		}
		if prev.Invoice == t.Invoice {
			return domain.ErrDuplicateInvoice
		}
	}
	copia := *t
	s.ins[t.ID] = &copia
	s.insOrder = append(s.insOrder, t.ID)
	return nil
}

func (s *fakeStore) createOut(t *entity.TransactionOut) error {
	if s.codeCollisions > 0 {
		s.codeCollisions--
		return domain.ErrCodeCollision
	}
	for _, prev := range s.outs {
		if prev.Code == t.Code {
			return domain.ErrCodeCollision
		}
		if prev.Invoice == t.Invoice {
			return domain.ErrDuplicateInvoice
		}
	}
	copia := *t
	s.outs[t.ID] = &copia
	s.outsOrder = append(s.outsOrder, t.ID)
	return nil
}

func (s *fakeStore) inDetail(t *entity.TransactionIn) *entity.TransactionInDetail {
	p := s.products[t.ProductID]
	sup := s.suppliers[t.SupplierID]
	w := s.warehouses[t.WarehouseID]
	return &entity.TransactionInDetail{
		ID:        t.ID,
		Code:      t.Code,
		Invoice:   t.Invoice,
		Product:   entity.ProductRef{ID: p.ID, Code: p.Code, Name: p.Name},
		Supplier:  entity.SupplierRef{ID: sup.ID, Code: sup.Code, Name: sup.Name},
		Warehouse: entity.WarehouseRef{ID: w.ID, Name: w.Name},
		Amount:    t.Amount,
		Date:      t.Date,
		CreatedAt: t.CreatedAt,
	}
}

func (s *fakeStore) outDetail(t *entity.TransactionOut) *entity.TransactionOutDetail {
	p := s.products[t.ProductID]
	w := s.warehouses[t.WarehouseID]
	return &entity.TransactionOutDetail{
		ID:        t.ID,
		Code:      t.Code,
		Invoice:   t.Invoice,
		Product:   entity.ProductRef{ID: p.ID, Code: p.Code, Name: p.Name},
		Warehouse: entity.WarehouseRef{ID: w.ID, Name: w.Name},
		Amount:    t.Amount,
		Purpose:   t.Purpose,
		ExitDate:  t.ExitDate,
		CreatedAt: t.CreatedAt,
	}
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner serializa las transacciones con el mutex del store y revierte
// el estado si fn falla, igual que Begin/Commit/Rollback en el motor real.
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	inRepo repository.TransactionInRepository,
	outRepo repository.TransactionOutRepository,
	stockRepo repository.StockRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	err := fn(
		&fakeInRepo{s: r.s},
		&fakeOutRepo{s: r.s},
		&fakeStockRepo{s: r.s},
	)
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// ── repositorios fake (locking=true fuera de transacción) ────────────────────

type fakeInRepo struct {
	s       *fakeStore
	locking bool
}

func (r *fakeInRepo) unlock() func() {
	if r.locking {
		r.s.mu.Lock()
		return r.s.mu.Unlock
	}
	return func() {}
}

func (r *fakeInRepo) Create(_ context.Context, t *entity.TransactionIn) error {
	defer r.unlock()()
	return r.s.createIn(t)
}

func (r *fakeInRepo) GetByID(_ context.Context, id string) (*entity.TransactionInDetail, error) {
	defer r.unlock()()
	t, ok := r.s.ins[id]
	if !ok {
		return nil, nil
	}
	return r.s.inDetail(t), nil
}

func (r *fakeInRepo) ExistsInvoice(_ context.Context, invoice string) (bool, error) {
	defer r.unlock()()
	for _, t := range r.s.ins {
		if t.Invoice == invoice {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInRepo) LastCode(_ context.Context) (string, error) {
	defer r.unlock()()
	if len(r.s.insOrder) == 0 {
		return "", nil
	}
	return r.s.ins[r.s.insOrder[len(r.s.insOrder)-1]].Code, nil
}

func (r *fakeInRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.TransactionInDetail, int, error) {
	defer r.unlock()()
	var all []*entity.TransactionInDetail
	for _, id := range r.s.insOrder {
		t := r.s.ins[id]
		d := r.s.inDetail(t)
		if search == "" || strings.Contains(d.Invoice, search) || strings.Contains(d.Code, search) || strings.Contains(d.Product.Name, search) {
			all = append(all, d)
		}
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *fakeInRepo) Delete(_ context.Context, id string) error {
	defer r.unlock()()
	if _, ok := r.s.ins[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.ins, id)
	for i, v := range r.s.insOrder {
		if v == id {
			r.s.insOrder = append(r.s.insOrder[:i], r.s.insOrder[i+1:]...)
			break
		}
	}
	return nil
}

type fakeOutRepo struct {
	s       *fakeStore
	locking bool
}

func (r *fakeOutRepo) unlock() func() {
	if r.locking {
		r.s.mu.Lock()
		return r.s.mu.Unlock
	}
	return func() {}
}

func (r *fakeOutRepo) Create(_ context.Context, t *entity.TransactionOut) error {
	defer r.unlock()()
	return r.s.createOut(t)
}

func (r *fakeOutRepo) GetByID(_ context.Context, id string) (*entity.TransactionOutDetail, error) {
	defer r.unlock()()
	t, ok := r.s.outs[id]
	if !ok {
		return nil, nil
	}
	return r.s.outDetail(t), nil
}

func (r *fakeOutRepo) ExistsInvoice(_ context.Context, invoice string) (bool, error) {
	defer r.unlock()()
	for _, t := range r.s.outs {
		if t.Invoice == invoice {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOutRepo) LastCode(_ context.Context) (string, error) {
	defer r.unlock()()
	if len(r.s.outsOrder) == 0 {
		return "", nil
	}
	return r.s.outs[r.s.outsOrder[len(r.s.outsOrder)-1]].Code, nil
}

func (r *fakeOutRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.TransactionOutDetail, int, error) {
	defer r.unlock()()
	var all []*entity.TransactionOutDetail
	for _, id := range r.s.outsOrder {
		t := r.s.outs[id]
		d := r.s.outDetail(t)
		if search == "" || strings.Contains(d.Invoice, search) || strings.Contains(d.Code, search) || strings.Contains(d.Product.Name, search) {
			all = append(all, d)
		}
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *fakeOutRepo) Delete(_ context.Context, id string) error {
	defer r.unlock()()
	if _, ok := r.s.outs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.outs, id)
	for i, v := range r.s.outsOrder {
		if v == id {
			r.s.outsOrder = append(r.s.outsOrder[:i], r.s.outsOrder[i+1:]...)
			break
		}
	}
	return nil
}

type fakeStockRepo struct {
	s       *fakeStore
	locking bool
}

func (r *fakeStockRepo) unlock() func() {
	if r.locking {
		r.s.mu.Lock()
		return r.s.mu.Unlock
	}
	return func() {}
}

func (r *fakeStockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.StockRecord, error) {
	defer r.unlock()()
	return r.s.getStock(productID, warehouseID), nil
}

func (r *fakeStockRepo) UpsertAdd(_ context.Context, productID, warehouseID string, qty decimal.Decimal) error {
	defer r.unlock()()
	r.s.upsertAdd(productID, warehouseID, qty)
	return nil
}

func (r *fakeStockRepo) DecrementGuarded(_ context.Context, productID, warehouseID string, qty decimal.Decimal, version int64) (bool, error) {
	defer r.unlock()()
	return r.s.decrementGuarded(productID, warehouseID, qty, version), nil
}

func (r *fakeStockRepo) ListByWarehouse(_ context.Context, warehouseID string, limit, offset int) ([]*entity.StockRecord, error) {
	defer r.unlock()()
	var list []*entity.StockRecord
	for _, rec := range r.s.stock {
		if rec.WarehouseID == warehouseID {
			copia := *rec
			list = append(list, &copia)
		}
	}
	return list, nil
}

func (r *fakeStockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockRecord, error) {
	defer r.unlock()()
	var list []*entity.StockRecord
	for _, rec := range r.s.stock {
		if rec.ProductID == productID {
			copia := *rec
			list = append(list, &copia)
		}
	}
	return list, nil
}

type fakeProductRepo struct {
	s       *fakeStore
	locking bool
}

func (r *fakeProductRepo) unlock() func() {
	if r.locking {
		r.s.mu.Lock()
		return r.s.mu.Unlock
	}
	return func() {}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error { panic("no usado") }
func (r *fakeProductRepo) LastCode(_ context.Context) (string, error)        { panic("no usado") }
func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error { panic("no usado") }
func (r *fakeProductRepo) Delete(_ context.Context, id string) error         { panic("no usado") }

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.ProductDetail, error) {
	defer r.unlock()()
	return r.s.products[id], nil
}

func (r *fakeProductRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.ProductDetail, int, error) {
	panic("no usado")
}

type fakeSupplierRepo struct {
	s       *fakeStore
	locking bool
}

func (r *fakeSupplierRepo) unlock() func() {
	if r.locking {
		r.s.mu.Lock()
		return r.s.mu.Unlock
	}
	return func() {}
}

func (r *fakeSupplierRepo) Create(_ context.Context, s *entity.Supplier) error { panic("no usado") }
func (r *fakeSupplierRepo) LastCode(_ context.Context) (string, error)         { panic("no usado") }
func (r *fakeSupplierRepo) Update(_ context.Context, s *entity.Supplier) error { panic("no usado") }
func (r *fakeSupplierRepo) Delete(_ context.Context, id string) error          { panic("no usado") }

func (r *fakeSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	defer r.unlock()()
	return r.s.suppliers[id], nil
}

func (r *fakeSupplierRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Supplier, int, error) {
	panic("no usado")
}

type fakeWarehouseRepo struct {
	s       *fakeStore
	locking bool
}

func (r *fakeWarehouseRepo) unlock() func() {
	if r.locking {
		r.s.mu.Lock()
		return r.s.mu.Unlock
	}
	return func() {}
}

func (r *fakeWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error { panic("no usado") }
func (r *fakeWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error { panic("no usado") }
func (r *fakeWarehouseRepo) Delete(_ context.Context, id string) error           { panic("no usado") }

func (r *fakeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	defer r.unlock()()
	return r.s.warehouses[id], nil
}

func (r *fakeWarehouseRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Warehouse, int, error) {
	panic("no usado")
}
