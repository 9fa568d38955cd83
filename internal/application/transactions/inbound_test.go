package transactions_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/transactions"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store *fakeStore
	inUC  *transactions.TransactionInUseCase
	outUC *transactions.TransactionOutUseCase
}

func newFixture() *fixture {
	s := newFakeStore()
	s.products["p1"] = &entity.ProductDetail{ID: "p1", Code: "PART-1", Name: "Filtro de aceite"}
	s.suppliers["s1"] = &entity.Supplier{ID: "s1", Code: "SUP-1", Name: "Repuestos del Norte"}
	s.warehouses["w1"] = &entity.Warehouse{ID: "w1", Name: "Bodega Central"}
	runner := &fakeTxRunner{s: s}
	return &fixture{
		store: s,
		inUC: transactions.NewTransactionInUseCase(
			runner,
			&fakeProductRepo{s: s, locking: true},
			&fakeSupplierRepo{s: s, locking: true},
			&fakeWarehouseRepo{s: s, locking: true},
			&fakeInRepo{s: s, locking: true},
		),
		outUC: transactions.NewTransactionOutUseCase(
			runner,
			&fakeProductRepo{s: s, locking: true},
			&fakeWarehouseRepo{s: s, locking: true},
			&fakeOutRepo{s: s, locking: true},
		),
	}
}

func (f *fixture) stockP1W1() *entity.StockRecord {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.getStock("p1", "w1")
}

func inRequest(invoice, amount string) dto.CreateTransactionInRequest {
	return dto.CreateTransactionInRequest{
		ProductID:   "p1",
		SupplierID:  "s1",
		WarehouseID: "w1",
		Invoice:     invoice,
		Amount:      d(amount),
	}
}

func outRequest(invoice, amount string) dto.CreateTransactionOutRequest {
	return dto.CreateTransactionOutRequest{
		ProductID:   "p1",
		WarehouseID: "w1",
		Invoice:     invoice,
		Amount:      d(amount),
		Purpose:     "mantenimiento flota",
	}
}

func TestTransactionInCreate(t *testing.T) {
	f := newFixture()

	resp, err := f.inUC.Create(context.Background(), inRequest("FAC-001", "10"))
	require.NoError(t, err)

	assert.Equal(t, "TR-1", resp.Code)
	assert.Equal(t, "FAC-001", resp.Invoice)
	assert.Equal(t, "PART-1", resp.Product.Code)
	assert.Equal(t, "SUP-1", resp.Supplier.Code)
	assert.Equal(t, "Bodega Central", resp.Warehouse.Name)
	assert.True(t, resp.Amount.Equal(d("10")))

	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("10")), "primera entrada siembra el contador")
	assert.Equal(t, int64(1), rec.Version)
}

func TestTransactionInCreateAcumulaStock(t *testing.T) {
	f := newFixture()

	_, err := f.inUC.Create(context.Background(), inRequest("FAC-001", "10"))
	require.NoError(t, err)
	resp, err := f.inUC.Create(context.Background(), inRequest("FAC-002", "5.5"))
	require.NoError(t, err)

	assert.Equal(t, "TR-2", resp.Code, "el código sigue la secuencia")
	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("15.5")))
	assert.Equal(t, int64(2), rec.Version)
}

func TestTransactionInCreateFacturaDuplicada(t *testing.T) {
	f := newFixture()

	_, err := f.inUC.Create(context.Background(), inRequest("FAC-001", "10"))
	require.NoError(t, err)

	_, err = f.inUC.Create(context.Background(), inRequest("FAC-001", "3"))
	require.ErrorIs(t, err, domain.ErrDuplicateInvoice)

	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("10")), "la entrada rechazada no toca el stock")
	assert.Equal(t, int64(1), rec.Version)
	assert.Len(t, f.store.ins, 1)
}

func TestTransactionInCreateValidacion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		mod  func(*dto.CreateTransactionInRequest)
		want error
	}{
		{"sin factura", func(r *dto.CreateTransactionInRequest) { r.Invoice = "" }, domain.ErrInvalidInput},
		{"monto cero", func(r *dto.CreateTransactionInRequest) { r.Amount = decimal.Zero }, domain.ErrInvalidInput},
		{"monto negativo", func(r *dto.CreateTransactionInRequest) { r.Amount = d("-1") }, domain.ErrInvalidInput},
		{"sin producto", func(r *dto.CreateTransactionInRequest) { r.ProductID = "" }, domain.ErrInvalidInput},
		{"sin proveedor", func(r *dto.CreateTransactionInRequest) { r.SupplierID = "" }, domain.ErrInvalidInput},
		{"sin bodega", func(r *dto.CreateTransactionInRequest) { r.WarehouseID = "" }, domain.ErrInvalidInput},
		{"producto inexistente", func(r *dto.CreateTransactionInRequest) { r.ProductID = "nope" }, domain.ErrNotFound},
		{"proveedor inexistente", func(r *dto.CreateTransactionInRequest) { r.SupplierID = "nope" }, domain.ErrNotFound},
		{"bodega inexistente", func(r *dto.CreateTransactionInRequest) { r.WarehouseID = "nope" }, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := inRequest("FAC-X", "10")
			tc.mod(&req)
			_, err := f.inUC.Create(ctx, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.store.ins, "ninguna entrada inválida se persiste")
}

func TestTransactionInCreateColisionDeCodigoReintenta(t *testing.T) {
	f := newFixture()
	f.store.codeCollisions = 2

	resp, err := f.inUC.Create(context.Background(), inRequest("FAC-001", "10"))
	require.NoError(t, err)

	assert.Equal(t, "TR-1", resp.Code)
	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("10")), "los intentos revertidos no suman stock")
	assert.Equal(t, int64(1), rec.Version, "solo el intento ganador incrementa la versión")
	assert.Len(t, f.store.ins, 1)
}

func TestTransactionInCreateColisionesAgotadas(t *testing.T) {
	f := newFixture()
	f.store.codeCollisions = transactions.MaxRetry

	_, err := f.inUC.Create(context.Background(), inRequest("FAC-001", "10"))
	require.ErrorIs(t, err, domain.ErrConflictExhausted)

	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.IsZero())
	assert.Empty(t, f.store.ins)
}

func TestTransactionInRemove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.inUC.Create(ctx, inRequest("FAC-001", "10"))
	require.NoError(t, err)

	removed, err := f.inUC.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.IsZero(), "el borrado revierte la cantidad completa")
	assert.Equal(t, int64(2), rec.Version)

	_, err = f.inUC.FindOne(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionInRemoveStockYaConsumido(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.inUC.Create(ctx, inRequest("FAC-001", "10"))
	require.NoError(t, err)
	_, err = f.outUC.Create(ctx, outRequest("SAL-001", "8"))
	require.NoError(t, err)

	// Revertir la entrada dejaría el contador en -8: se rechaza.
	_, err = f.inUC.Remove(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.True(t, insuf.Available.Equal(d("2")))
	assert.True(t, insuf.Requested.Equal(d("10")))

	// La entrada sigue en el historial y el stock no cambió.
	assert.Len(t, f.store.ins, 1)
	assert.True(t, f.stockP1W1().QtyOnHand.Equal(d("2")))
}

func TestTransactionInRemoveNoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.inUC.Remove(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionInFind(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, inv := range []string{"FAC-001", "FAC-002", "FAC-003"} {
		_, err := f.inUC.Create(ctx, inRequest(inv, "1"))
		require.NoError(t, err)
	}

	page, err := f.inUC.Find(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Page.Total)

	filtered, err := f.inUC.Find(ctx, dto.PageRequest{Search: "FAC-002"})
	require.NoError(t, err)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, "FAC-002", filtered.Items[0].Invoice)
}

func TestTransactionInRetryNoEsDobleConteo(t *testing.T) {
	// Tras N reintentos el efecto neto es el de un solo movimiento.
	f := newFixture()
	f.store.codeCollisions = transactions.MaxRetry - 1

	_, err := f.inUC.Create(context.Background(), inRequest("FAC-001", "7"))
	require.NoError(t, err)

	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("7")))
	assert.Equal(t, int64(1), rec.Version)

	list, total, err := (&fakeInRepo{s: f.store, locking: true}).List(context.Background(), "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}
