package transactions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TransactionInUseCase registra entradas de mercancía: asigna el código TR-n,
// suma stock vía StockLedger e inserta el registro, todo en una transacción.
type TransactionInUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	inRepo        repository.TransactionInRepository
}

// NewTransactionInUseCase construye el caso de uso. inRepo se usa solo para
// lecturas fuera de transacción (Find/FindOne); las escrituras pasan por txRunner.
func NewTransactionInUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	inRepo repository.TransactionInRepository,
) *TransactionInUseCase {
	return &TransactionInUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		inRepo:        inRepo,
	}
}

// Create registra una entrada. La verificación de factura duplicada vive
// dentro de la transacción para cerrar la carrera entre chequeo e insert.
// Solo una colisión del código secuencial dispara el reintento completo;
// la factura duplicada es error de negocio y se propaga tal cual.
func (uc *TransactionInUseCase) Create(ctx context.Context, in dto.CreateTransactionInRequest) (*dto.TransactionInResponse, error) {
	if in.Invoice == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID == "" || in.SupplierID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Validar que las referencias existan antes de abrir la transacción.
	if product, err := uc.productRepo.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	} else if product == nil {
		return nil, domain.ErrNotFound
	}
	if supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID); err != nil {
		return nil, err
	} else if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if warehouse, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID); err != nil {
		return nil, err
	} else if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	for attempt := 1; attempt <= MaxRetry; attempt++ {
		var out *entity.TransactionInDetail
		err := uc.txRunner.Run(ctx, func(
			inRepo repository.TransactionInRepository,
			_ repository.TransactionOutRepository,
			stockRepo repository.StockRepository,
		) error {
			exists, err := inRepo.ExistsInvoice(ctx, in.Invoice)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateInvoice
			}

			last, err := inRepo.LastCode(ctx)
			if err != nil {
				return err
			}
			code := inventory.NextCode(inventory.PrefixTransaction, last)

			ledger := inventory.NewStockLedger(stockRepo)
			if err := ledger.Increment(ctx, in.ProductID, in.WarehouseID, in.Amount); err != nil {
				return err
			}

			t := &entity.TransactionIn{
				ID:          uuid.New().String(),
				Code:        code,
				Invoice:     in.Invoice,
				ProductID:   in.ProductID,
				SupplierID:  in.SupplierID,
				WarehouseID: in.WarehouseID,
				Amount:      in.Amount,
				Date:        date,
				CreatedAt:   now,
			}
			if err := inRepo.Create(ctx, t); err != nil {
				return err
			}
			out, err = inRepo.GetByID(ctx, t.ID)
			if err != nil {
				return err
			}
			if out == nil {
				return domain.ErrNotFound
			}
			return nil
		})
		if errors.Is(err, domain.ErrCodeCollision) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return toTransactionInResponse(out), nil
	}
	return nil, domain.ErrConflictExhausted
}

// Find lista entradas con búsqueda por factura/código/producto.
func (uc *TransactionInUseCase) Find(ctx context.Context, page dto.PageRequest) (*dto.TransactionInListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.inRepo.List(ctx, page.Search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionInResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransactionInResponse(t))
	}
	return &dto.TransactionInListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// FindOne obtiene una entrada por ID.
func (uc *TransactionInUseCase) FindOne(ctx context.Context, id string) (*dto.TransactionInResponse, error) {
	t, err := uc.inRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTransactionInResponse(t), nil
}

// Remove borra la entrada y revierte su efecto en stock en la misma
// transacción. La reversión es un decremento guardado por versión: si la
// mercancía recibida ya salió de la bodega, revertir dejaría el contador
// negativo y se rechaza con InsufficientStockError.
func (uc *TransactionInUseCase) Remove(ctx context.Context, id string) (*dto.TransactionInResponse, error) {
	for attempt := 1; attempt <= MaxRetry; attempt++ {
		var out *entity.TransactionInDetail
		err := uc.txRunner.Run(ctx, func(
			inRepo repository.TransactionInRepository,
			_ repository.TransactionOutRepository,
			stockRepo repository.StockRepository,
		) error {
			t, err := inRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if t == nil {
				return domain.ErrNotFound
			}
			if err := inRepo.Delete(ctx, id); err != nil {
				return err
			}
			ledger := inventory.NewStockLedger(stockRepo)
			if err := ledger.DecrementIfSufficient(ctx, t.Product.ID, t.Warehouse.ID, t.Amount); err != nil {
				return err
			}
			out = t
			return nil
		})
		if errors.Is(err, domain.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return toTransactionInResponse(out), nil
	}
	return nil, domain.ErrConflictExhausted
}

func toTransactionInResponse(t *entity.TransactionInDetail) *dto.TransactionInResponse {
	return &dto.TransactionInResponse{
		ID:      t.ID,
		Code:    t.Code,
		Invoice: t.Invoice,
		Product: dto.ProductRefResponse{
			ID: t.Product.ID, Code: t.Product.Code, Name: t.Product.Name,
		},
		Supplier: dto.SupplierRefResponse{
			ID: t.Supplier.ID, Code: t.Supplier.Code, Name: t.Supplier.Name,
		},
		Warehouse: dto.WarehouseRefResponse{
			ID: t.Warehouse.ID, Name: t.Warehouse.Name,
		},
		Amount:    t.Amount,
		Date:      t.Date,
		CreatedAt: t.CreatedAt,
	}
}
