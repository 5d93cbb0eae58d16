package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/auth"
	"github.com/tu-usuario/almacen-pro/internal/application/sales"
	"github.com/tu-usuario/almacen-pro/internal/application/staging"
	"github.com/tu-usuario/almacen-pro/internal/application/usecase"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	BrandUC     *usecase.BrandUseCase
	CategoryUC  *usecase.CategoryUseCase
	CompanyUC   *usecase.CompanyUseCase
	ConsumerUC  *usecase.ConsumerUseCase
	WarehouseUC *usecase.WarehouseUseCase
	BatchUC     *usecase.BatchUseCase
	PriceUC     *usecase.PriceUseCase
	StagingUC   *staging.UseCase
	AllocateUC  *sales.AllocateUseCase
	SaleUC      *sales.SaleUseCase
	StockUC     *sales.StockQueryUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
//
// Todo excepto /api/auth y /health exige Bearer Token. Las operaciones de
// escritura sobre catálogo y libro de stock exigen además rol de bodega;
// las ventas admiten también al rol vendedor.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	storekeeper := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	seller := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", storekeeper, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/filter", productHandler.Filter)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", storekeeper, productHandler.Update)
	products.Delete("/:id", storekeeper, productHandler.Delete)

	// Brands (protegido)
	brands := protected.Group("/brands")
	brandHandler := NewBrandHandler(deps.BrandUC)
	brands.Post("/", storekeeper, brandHandler.Create)
	brands.Get("/", brandHandler.List)
	brands.Get("/:id", brandHandler.GetByID)
	brands.Put("/:id", storekeeper, brandHandler.Update)
	brands.Delete("/:id", storekeeper, brandHandler.Delete)

	// Categories y subcategories (protegido)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Post("/", storekeeper, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", storekeeper, categoryHandler.Update)
	categories.Delete("/:id", storekeeper, categoryHandler.Delete)

	subcategories := protected.Group("/subcategories")
	subcategories.Post("/", storekeeper, categoryHandler.CreateSubcategory)
	subcategories.Get("/", categoryHandler.ListSubcategories)
	subcategories.Get("/:id", categoryHandler.GetSubcategoryByID)
	subcategories.Put("/:id", storekeeper, categoryHandler.UpdateSubcategory)
	subcategories.Delete("/:id", storekeeper, categoryHandler.DeleteSubcategory)

	// Companies (protegido)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", storekeeper, companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", storekeeper, companyHandler.Update)
	companies.Delete("/:id", storekeeper, companyHandler.Delete)

	// Consumers (protegido)
	consumers := protected.Group("/consumers")
	consumerHandler := NewConsumerHandler(deps.ConsumerUC)
	consumers.Post("/", seller, consumerHandler.Create)
	consumers.Get("/", consumerHandler.List)
	consumers.Get("/:id", consumerHandler.GetByID)
	consumers.Put("/:id", seller, consumerHandler.Update)
	consumers.Delete("/:id", storekeeper, consumerHandler.Delete)

	// Warehouses y pallets (protegido)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", storekeeper, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", storekeeper, warehouseHandler.Update)
	warehouses.Delete("/:id", storekeeper, warehouseHandler.Delete)

	pallets := protected.Group("/pallets")
	pallets.Post("/", storekeeper, warehouseHandler.CreatePallet)
	pallets.Get("/", warehouseHandler.ListPallets)
	pallets.Get("/:id", warehouseHandler.GetPalletByID)
	pallets.Put("/:id", storekeeper, warehouseHandler.UpdatePallet)
	pallets.Delete("/:id", storekeeper, warehouseHandler.DeletePallet)

	// Batches y líneas de stock (protegido)
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches := protected.Group("/batches")
	batches.Post("/", storekeeper, batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", storekeeper, batchHandler.Update)
	batches.Delete("/:id", storekeeper, batchHandler.Delete)

	batchPallet := protected.Group("/batch-pallet")
	batchPallet.Post("/", storekeeper, batchHandler.CreateStockLine)
	batchPallet.Get("/", batchHandler.ListStockLines)
	batchPallet.Get("/:id", batchHandler.GetStockLineByID)
	batchPallet.Put("/:id", storekeeper, batchHandler.UpdateStockLine)
	batchPallet.Delete("/:id", storekeeper, batchHandler.DeleteStockLine)

	// Staging y control de calidad (protegido)
	stagingGroup := protected.Group("/staging")
	stagingHandler := NewStagingHandler(deps.StagingUC)
	stagingGroup.Post("/", storekeeper, stagingHandler.Create)
	stagingGroup.Get("/", stagingHandler.Filter)
	stagingGroup.Get("/:id", stagingHandler.GetByID)
	stagingGroup.Patch("/:id/qc", storekeeper, stagingHandler.RecordQC)
	stagingGroup.Post("/:id/putaway", storekeeper, stagingHandler.PutAway)
	stagingGroup.Delete("/:id", storekeeper, stagingHandler.Delete)

	// Prices (protegido)
	prices := protected.Group("/prices")
	priceHandler := NewPriceHandler(deps.PriceUC)
	prices.Post("/", storekeeper, priceHandler.Create)
	prices.Get("/", priceHandler.List)
	prices.Get("/:id", priceHandler.GetByID)
	prices.Put("/:id", storekeeper, priceHandler.Update)
	prices.Delete("/:id", storekeeper, priceHandler.Delete)

	// Sales (protegido; el vendedor también puede vender)
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.AllocateUC, deps.SaleUC, deps.StockUC)
	salesGroup.Post("/bulk", seller, salesHandler.AllocateBulk)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/stock/total/:product_id", salesHandler.TotalStock)
	salesGroup.Get("/stock/details/:product_id", salesHandler.StockDetails)
	salesGroup.Get("/:id/receipt.pdf", salesHandler.Receipt)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Put("/:id", seller, salesHandler.Update)
	salesGroup.Delete("/:id", salesHandler.Delete)
}
