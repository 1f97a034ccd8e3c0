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
	"github.com/jhoicas/facturacion-api/internal/application/auth"
	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/reports"
	"github.com/jhoicas/facturacion-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/facturacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/facturacion-api/pkg/config"
	"github.com/jhoicas/facturacion-api/pkg/logger"
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
	db, err := sqlite.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer db.Close()

	if err := sqlite.Bootstrap(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("inicializar esquema y datos semilla")
	}

	// Subcomando resetdb: vacía las tablas transaccionales, conserva los
	// usuarios y termina con las tablas vacías. Uso: api resetdb
	if len(os.Args) > 1 && os.Args[1] == "resetdb" {
		if err := sqlite.Reset(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("reiniciar base de datos")
		}
		log.Info().Str("db", cfg.DB.Path).Msg("base de datos reiniciada")
		return
	}

	userRepo := sqlite.NewUserRepository(db)
	customerRepo := sqlite.NewCustomerRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	invoiceRepo := sqlite.NewInvoiceRepository(db)
	reportRepo := sqlite.NewReportRepository(db)
	txRunner := sqlite.NewTxRunner(db)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := billing.NewCustomerUseCase(customerRepo, invoiceRepo)
	productUC := usecase.NewProductUseCase(productRepo, invoiceRepo)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(txRunner, customerRepo, productRepo, invoiceRepo)
	reportUC := reports.NewReportUseCase(reportRepo, invoiceRepo, customerRepo)

	// Exportación: PDF (representación gráfica) y XML de la factura.
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	xmlBuilder := xmlexport.NewBuilderService()
	exportUC := billing.NewExportUseCase(invoiceRepo, customerRepo, productRepo, pdfGenerator, xmlBuilder)

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
		Title:    "Facturación API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CustomerUC:    customerUC,
		ProductUC:     productUC,
		CreateInvoice: createInvoiceUC,
		Export:        exportUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
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
