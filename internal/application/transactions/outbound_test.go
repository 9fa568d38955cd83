package transactions_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/transactions"
	"github.com/jhoicas/almacen-api/internal/domain"
)

func TestTransactionOutCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.inUC.Create(ctx, inRequest("FAC-001", "10"))
	require.NoError(t, err)

	resp, err := f.outUC.Create(ctx, outRequest("SAL-001", "4"))
	require.NoError(t, err)

	assert.Equal(t, "TR-1", resp.Code, "las salidas llevan su propia secuencia")
	assert.Equal(t, "mantenimiento flota", resp.Purpose)
	assert.Equal(t, "PART-1", resp.Product.Code)

	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("6")))
	assert.Equal(t, int64(2), rec.Version, "entrada y salida incrementan la versión")
}

func TestTransactionOutCreateStockInsuficiente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.inUC.Create(ctx, inRequest("FAC-001", "10"))
	require.NoError(t, err)

	_, err = f.outUC.Create(ctx, outRequest("SAL-001", "15"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.True(t, insuf.Available.Equal(d("10")))
	assert.True(t, insuf.Requested.Equal(d("15")))
	assert.Equal(t, "stock insuficiente: hay 10, se pidió 15", err.Error())

	// Terminal: no consume reintentos ni toca el estado.
	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("10")))
	assert.Equal(t, int64(1), rec.Version)
	assert.Empty(t, f.store.outs)
}

func TestTransactionOutCreateSinRegistroDeStock(t *testing.T) {
	f := newFixture()

	_, err := f.outUC.Create(context.Background(), outRequest("SAL-001", "1"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.True(t, insuf.Available.IsZero(), "fila ausente equivale a stock cero")
}

func TestTransactionOutCreateConflictoReintenta(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.inUC.Create(ctx, inRequest("FAC-001", "10"))
	require.NoError(t, err)

	f.store.conflictDecrements = 2
	resp, err := f.outUC.Create(ctx, outRequest("SAL-001", "4"))
	require.NoError(t, err)
	assert.Equal(t, "TR-1", resp.Code)

	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("6")), "el reintento descuenta una sola vez")
	assert.Equal(t, int64(2), rec.Version)
	assert.Len(t, f.store.outs, 1)
}

func TestTransactionOutCreateConflictosAgotados(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.inUC.Create(ctx, inRequest("FAC-001", "10"))
	require.NoError(t, err)

	f.store.conflictDecrements = transactions.MaxRetry
	_, err = f.outUC.Create(ctx, outRequest("SAL-001", "4"))
	require.ErrorIs(t, err, domain.ErrConflictExhausted)
	assert.False(t, errors.Is(err, domain.ErrInsufficientStock),
		"agotar reintentos no se reporta como falta de stock")

	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("10")))
	assert.Empty(t, f.store.outs)
}

func TestTransactionOutCreateFacturaDuplicada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.inUC.Create(ctx, inRequest("FAC-001", "10"))
	require.NoError(t, err)
	_, err = f.outUC.Create(ctx, outRequest("SAL-001", "3"))
	require.NoError(t, err)

	_, err = f.outUC.Create(ctx, outRequest("SAL-001", "2"))
	require.ErrorIs(t, err, domain.ErrDuplicateInvoice)

	// El decremento del intento rechazado se revirtió con la transacción.
	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("7")))
	assert.Len(t, f.store.outs, 1)
}

func TestTransactionOutCreateFacturaCompartidaConEntrada(t *testing.T) {
	// La unicidad de factura es por tipo de movimiento: una salida puede
	// reusar el número de factura de una entrada.
	f := newFixture()
	ctx := context.Background()

	_, err := f.inUC.Create(ctx, inRequest("DOC-77", "10"))
	require.NoError(t, err)

	_, err = f.outUC.Create(ctx, outRequest("DOC-77", "4"))
	require.NoError(t, err)
}

func TestTransactionOutCreateValidacion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		mod  func(*dto.CreateTransactionOutRequest)
		want error
	}{
		{"sin factura", func(r *dto.CreateTransactionOutRequest) { r.Invoice = "" }, domain.ErrInvalidInput},
		{"sin propósito", func(r *dto.CreateTransactionOutRequest) { r.Purpose = "" }, domain.ErrInvalidInput},
		{"monto cero", func(r *dto.CreateTransactionOutRequest) { r.Amount = decimal.Zero }, domain.ErrInvalidInput},
		{"sin producto", func(r *dto.CreateTransactionOutRequest) { r.ProductID = "" }, domain.ErrInvalidInput},
		{"producto inexistente", func(r *dto.CreateTransactionOutRequest) { r.ProductID = "nope" }, domain.ErrNotFound},
		{"bodega inexistente", func(r *dto.CreateTransactionOutRequest) { r.WarehouseID = "nope" }, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := outRequest("SAL-X", "1")
			tc.mod(&req)
			_, err := f.outUC.Create(ctx, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTransactionOutCreateConcurrencia(t *testing.T) {
	// Dos salidas compiten por un contador que solo alcanza para una:
	// exactamente una gana y el saldo final refleja solo a la ganadora.
	f := newFixture()
	ctx := context.Background()

	_, err := f.inUC.Create(ctx, inRequest("FAC-001", "10"))
	require.NoError(t, err)

	amounts := map[string]string{"SAL-A": "7", "SAL-B": "6"}
	results := make(map[string]error, len(amounts))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for inv, amt := range amounts {
		wg.Add(1)
		go func(inv, amt string) {
			defer wg.Done()
			_, err := f.outUC.Create(ctx, outRequest(inv, amt))
			mu.Lock()
			results[inv] = err
			mu.Unlock()
		}(inv, amt)
	}
	wg.Wait()

	var winners []string
	for inv, err := range results {
		if err == nil {
			winners = append(winners, inv)
		} else {
			require.True(t,
				errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrConflictExhausted),
				"la perdedora falla por stock o por reintentos agotados, no otra cosa: %v", err)
		}
	}
	require.Len(t, winners, 1, "exactamente una salida gana la carrera")

	won := d(amounts[winners[0]])
	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("10").Sub(won)),
		"el saldo descuenta únicamente la salida ganadora")
	assert.Len(t, f.store.outs, 1)
}

func TestTransactionOutRemove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.inUC.Create(ctx, inRequest("FAC-001", "10"))
	require.NoError(t, err)
	created, err := f.outUC.Create(ctx, outRequest("SAL-001", "4"))
	require.NoError(t, err)

	removed, err := f.outUC.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("10")), "borrar la salida devuelve la cantidad")
	assert.Equal(t, int64(3), rec.Version)

	_, err = f.outUC.FindOne(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionOutRemoveNoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.outUC.Remove(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedgerSaldoConsistente(t *testing.T) {
	// El saldo siempre es la suma de entradas vivas menos salidas vivas.
	f := newFixture()
	ctx := context.Background()

	_, err := f.inUC.Create(ctx, inRequest("FAC-001", "10"))
	require.NoError(t, err)
	_, err = f.outUC.Create(ctx, outRequest("SAL-001", "3"))
	require.NoError(t, err)
	_, err = f.inUC.Create(ctx, inRequest("FAC-002", "5"))
	require.NoError(t, err)
	out2, err := f.outUC.Create(ctx, outRequest("SAL-002", "2"))
	require.NoError(t, err)
	_, err = f.outUC.Remove(ctx, out2.ID)
	require.NoError(t, err)

	// 10 - 3 + 5 - 2 + 2 = 12, cinco mutaciones del contador.
	rec := f.stockP1W1()
	assert.True(t, rec.QtyOnHand.Equal(d("12")))
	assert.Equal(t, int64(5), rec.Version)
}
