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
	"github.com/tu-usuario/almacen-pro/internal/application/auth"
	"github.com/tu-usuario/almacen-pro/internal/application/sales"
	"github.com/tu-usuario/almacen-pro/internal/application/staging"
	"github.com/tu-usuario/almacen-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/almacen-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/almacen-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/almacen-pro/internal/interfaces/http"
	"github.com/tu-usuario/almacen-pro/pkg/config"
	"github.com/tu-usuario/almacen-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	subcategoryRepo := postgres.NewSubcategoryRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	consumerRepo := postgres.NewConsumerRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	palletRepo := postgres.NewPalletRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	stockRepo := postgres.NewStockLineRepository(pool)
	stagingRepo := postgres.NewStagingRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)

	saleTx := postgres.NewTxRunner(pool)
	stagingTx := postgres.NewStagingTxRunner(pool)
	stockTx := postgres.NewStockTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, brandRepo, batchRepo, saleRepo)
	brandUC := usecase.NewBrandUseCase(brandRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, subcategoryRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	consumerUC := usecase.NewConsumerUseCase(consumerRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, palletRepo)
	batchUC := usecase.NewBatchUseCase(batchRepo, productRepo, palletRepo, stockRepo, stockTx)
	priceUC := usecase.NewPriceUseCase(priceRepo, productRepo)
	stagingUC := staging.NewUseCase(stagingRepo, productRepo, warehouseRepo, palletRepo, stagingTx)
	allocateUC := sales.NewAllocateUseCase(saleTx, productRepo, consumerRepo)
	stockUC := sales.NewStockQueryUseCase(productRepo, batchRepo, stockRepo)

	// PDF: recibo de venta con desglose por lote
	pdfGenerator := infrapdf.NewMarotoReceiptGenerator()
	saleUC := sales.NewSaleUseCase(saleRepo, productRepo, consumerRepo, batchRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El JSON lo genera
	// `swag init` y no siempre acompaña al binario; sin él arrancamos sin UI.
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Almacén Pro API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, UI de docs deshabilitada")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		BrandUC:     brandUC,
		CategoryUC:  categoryUC,
		CompanyUC:   companyUC,
		ConsumerUC:  consumerUC,
		WarehouseUC: warehouseUC,
		BatchUC:     batchUC,
		PriceUC:     priceUC,
		StagingUC:   stagingUC,
		AllocateUC:  allocateUC,
		SaleUC:      saleUC,
		StockUC:     stockUC,
		JWTSecret:   cfg.JWT.Secret,
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
