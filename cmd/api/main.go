package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/transactions"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/jwt"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	issuer, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}

	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	inRepo := postgres.NewTransactionInRepository(pool)
	outRepo := postgres.NewTransactionOutRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	transactionInUC := transactions.NewTransactionInUseCase(txRunner, productRepo, supplierRepo, warehouseRepo, inRepo)
	transactionOutUC := transactions.NewTransactionOutUseCase(txRunner, productRepo, warehouseRepo, outRepo)
	stockUC := usecase.NewStockUseCase(stockRepo, warehouseRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, unitRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	unitUC := usecase.NewUnitUseCase(unitRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewUseCase(userRepo, issuer)

	// PDF: representación imprimible de la orden de compra
	pdfRenderer := infrapdf.NewMarotoPurchaseOrderRenderer()
	purchaseOrderUC := usecase.NewPurchaseOrderUseCase(poRepo, supplierRepo, productRepo, pdfRenderer)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		TransactionIn:   transactionInUC,
		TransactionOut:  transactionOutUC,
		StockUC:         stockUC,
		ProductUC:       productUC,
		SupplierUC:      supplierUC,
		WarehouseUC:     warehouseUC,
		CategoryUC:      categoryUC,
		UnitUC:          unitUC,
		UserUC:          userUC,
		PurchaseOrderUC: purchaseOrderUC,
		Issuer:          issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
