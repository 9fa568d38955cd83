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

// TransactionOutUseCase registra salidas de mercancía. Cada intento es una
// transacción nueva: leer stock, validar suficiencia, decrementar con guarda
// de versión, asignar código e insertar. El perdedor de una carrera reintenta
// desde la lectura; el stock insuficiente es terminal.
type TransactionOutUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	outRepo       repository.TransactionOutRepository
}

// NewTransactionOutUseCase construye el caso de uso.
func NewTransactionOutUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	outRepo repository.TransactionOutRepository,
) *TransactionOutUseCase {
	return &TransactionOutUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		outRepo:       outRepo,
	}
}

// Create registra una salida.
//
// Máquina de estados por intento:
//
//	leer stock → insuficiente (terminal) | decremento condicional →
//	cero filas (conflicto, reintento) | asignar código + insertar → commit
//
// ErrVersionConflict y ErrCodeCollision consumen un intento; agotados los
// MaxRetry se devuelve ErrConflictExhausted, distinguible del stock
// insuficiente para que el cliente sepa que puede reenviar.
func (uc *TransactionOutUseCase) Create(ctx context.Context, in dto.CreateTransactionOutRequest) (*dto.TransactionOutResponse, error) {
	if in.Invoice == "" || in.Purpose == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}

	if product, err := uc.productRepo.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	} else if product == nil {
		return nil, domain.ErrNotFound
	}
	if warehouse, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID); err != nil {
		return nil, err
	} else if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	exitDate := now
	if in.ExitDate != nil {
		exitDate = *in.ExitDate
	}

	for attempt := 1; attempt <= MaxRetry; attempt++ {
		var out *entity.TransactionOutDetail
		err := uc.txRunner.Run(ctx, func(
			_ repository.TransactionInRepository,
			outRepo repository.TransactionOutRepository,
			stockRepo repository.StockRepository,
		) error {
			ledger := inventory.NewStockLedger(stockRepo)
			if err := ledger.DecrementIfSufficient(ctx, in.ProductID, in.WarehouseID, in.Amount); err != nil {
				return err
			}

			exists, err := outRepo.ExistsInvoice(ctx, in.Invoice)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateInvoice
			}

			last, err := outRepo.LastCode(ctx)
			if err != nil {
				return err
			}
			code := inventory.NextCode(inventory.PrefixTransaction, last)

			t := &entity.TransactionOut{
				ID:          uuid.New().String(),
				Code:        code,
				Invoice:     in.Invoice,
				ProductID:   in.ProductID,
				WarehouseID: in.WarehouseID,
				Amount:      in.Amount,
				Purpose:     in.Purpose,
				ExitDate:    exitDate,
				CreatedAt:   now,
			}
			if err := outRepo.Create(ctx, t); err != nil {
				return err
			}
			out, err = outRepo.GetByID(ctx, t.ID)
			if err != nil {
				return err
			}
			if out == nil {
				return domain.ErrNotFound
			}
			return nil
		})
		if errors.Is(err, domain.ErrVersionConflict) || errors.Is(err, domain.ErrCodeCollision) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return toTransactionOutResponse(out), nil
	}
	return nil, domain.ErrConflictExhausted
}

// Find lista salidas con búsqueda por factura/código/producto.
func (uc *TransactionOutUseCase) Find(ctx context.Context, page dto.PageRequest) (*dto.TransactionOutListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.outRepo.List(ctx, page.Search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionOutResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransactionOutResponse(t))
	}
	return &dto.TransactionOutListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// FindOne obtiene una salida por ID.
func (uc *TransactionOutUseCase) FindOne(ctx context.Context, id string) (*dto.TransactionOutResponse, error) {
	t, err := uc.outRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTransactionOutResponse(t), nil
}

// Remove borra la salida y devuelve la cantidad al stock en la misma
// transacción (ledger.Restore), de modo que historial y contador nunca
// diverjan.
func (uc *TransactionOutUseCase) Remove(ctx context.Context, id string) (*dto.TransactionOutResponse, error) {
	var out *entity.TransactionOutDetail
	err := uc.txRunner.Run(ctx, func(
		_ repository.TransactionInRepository,
		outRepo repository.TransactionOutRepository,
		stockRepo repository.StockRepository,
	) error {
		t, err := outRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if err := outRepo.Delete(ctx, id); err != nil {
			return err
		}
		ledger := inventory.NewStockLedger(stockRepo)
		if err := ledger.Restore(ctx, t.Product.ID, t.Warehouse.ID, t.Amount); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTransactionOutResponse(out), nil
}

func toTransactionOutResponse(t *entity.TransactionOutDetail) *dto.TransactionOutResponse {
	return &dto.TransactionOutResponse{
		ID:      t.ID,
		Code:    t.Code,
		Invoice: t.Invoice,
		Product: dto.ProductRefResponse{
			ID: t.Product.ID, Code: t.Product.Code, Name: t.Product.Name,
		},
		Warehouse: dto.WarehouseRefResponse{
			ID: t.Warehouse.ID, Name: t.Warehouse.Name,
		},
		Amount:    t.Amount,
		Purpose:   t.Purpose,
		ExitDate:  t.ExitDate,
		CreatedAt: t.CreatedAt,
	}
}
