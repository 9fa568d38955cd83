package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/transactions"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.UseCase
	TransactionIn   *transactions.TransactionInUseCase
	TransactionOut  *transactions.TransactionOutUseCase
	StockUC         *usecase.StockUseCase
	ProductUC       *usecase.ProductUseCase
	SupplierUC      *usecase.SupplierUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	CategoryUC      *usecase.CategoryUseCase
	UnitUC          *usecase.UnitUseCase
	UserUC          *usecase.UserUseCase
	PurchaseOrderUC *usecase.PurchaseOrderUseCase
	Issuer          *pkgjwt.Issuer
}

// Router registra las rutas de la API.
//
// Reparto de roles: los movimientos de stock son de bodega (admin y
// bodeguero), las órdenes de compra son de compras (admin y comprador),
// los usuarios y los deletes de catálogo son solo de admin. Las lecturas
// de catálogo y de stock las tiene cualquier usuario autenticado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Issuer))

	adminOnly := RequireRole(entity.RoleAdmin)
	warehouseStaff := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	purchasingStaff := RequireRole(entity.RoleAdmin, entity.RoleComprador)

	// Entradas de mercancía (admin y bodeguero)
	txIn := protected.Group("/transactions-in", warehouseStaff)
	txInHandler := NewTransactionInHandler(deps.TransactionIn)
	txIn.Post("/", txInHandler.Create)
	txIn.Get("/", txInHandler.List)
	txIn.Get("/:id", txInHandler.GetByID)
	txIn.Delete("/:id", txInHandler.Delete)

	// Salidas de mercancía (admin y bodeguero)
	txOut := protected.Group("/transactions-out", warehouseStaff)
	txOutHandler := NewTransactionOutHandler(deps.TransactionOut)
	txOut.Post("/", txOutHandler.Create)
	txOut.Get("/", txOutHandler.List)
	txOut.Get("/:id", txOutHandler.GetByID)
	txOut.Delete("/:id", txOutHandler.Delete)

	// Stock (lecturas, cualquier usuario autenticado)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/warehouse/:id", stockHandler.ByWarehouse)
	stock.Get("/product/:id", stockHandler.ByProduct)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Units (protegido)
	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Put("/:id", unitHandler.Update)
	units.Delete("/:id", adminOnly, unitHandler.Delete)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Purchase orders (admin y comprador)
	orders := protected.Group("/purchase-orders", purchasingStaff)
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/pdf", orderHandler.ExportPDF)
	orders.Delete("/:id", adminOnly, orderHandler.Delete)
}
