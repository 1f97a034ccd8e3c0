package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-api/internal/application/auth"
	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/reports"
	"github.com/jhoicas/facturacion-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CustomerUC    *billing.CustomerUseCase
	ProductUC     *usecase.ProductUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	Export        *billing.ExportUseCase
	ReportUC      *reports.ReportUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; registro y sesión actual requieren token.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Invoices (protegido, inmutables: sin PUT ni DELETE)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.Export)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Get("/:id/xml", invoiceHandler.XML)

	// Reports (protegido, solo admin)
	reportsGroup := protected.Group("/reports", RequireRole(entity.RoleAdmin))
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/customers/:id", reportHandler.Customer)
	reportsGroup.Get("/counts", reportHandler.Counts)
}
