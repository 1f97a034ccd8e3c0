package reports_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/application/reports"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/facturacion-api/pkg/config"
)

type reportEnv struct {
	customers *sqlite.CustomerRepo
	invoices  *sqlite.InvoiceRepo
	uc        *reports.ReportUseCase
}

func newReportEnv(t *testing.T) *reportEnv {
	t.Helper()
	ctx := context.Background()
	cfg := config.DBConfig{Path: filepath.Join(t.TempDir(), "reports.db")}
	db, err := sqlite.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Bootstrap(ctx, db))

	customers := sqlite.NewCustomerRepository(db)
	invoices := sqlite.NewInvoiceRepository(db)
	uc := reports.NewReportUseCase(sqlite.NewReportRepository(db), invoices, customers)
	return &reportEnv{customers: customers, invoices: invoices, uc: uc}
}

func (e *reportEnv) mustCustomer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	now := time.Now()
	c := &entity.Customer{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.customers.Create(c))
	return c
}

func (e *reportEnv) mustInvoice(t *testing.T, customerID, total string, date time.Time) {
	t.Helper()
	require.NoError(t, e.invoices.Create(&entity.Invoice{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Number:     uuid.New().String(),
		Date:       date,
		Total:      decimal.RequireFromString(total),
		CreatedAt:  date,
	}))
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 10, 0, 0, 0, time.Local)
}

func TestSalesReport_SumaYCuentaFacturasDeLaVentana(t *testing.T) {
	env := newReportEnv(t)

	customer := env.mustCustomer(t, "Cliente reporte")
	env.mustInvoice(t, customer.ID, "100.00", day(1))
	env.mustInvoice(t, customer.ID, "250.00", day(10))
	env.mustInvoice(t, customer.ID, "999.00", day(20))

	out, err := env.uc.SalesReport(dto.ReportWindowRequest{From: "2025-06-01", To: "2025-06-15"})
	require.NoError(t, err)

	assert.Equal(t, 2, out.InvoiceCount)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("350")),
		"total esperado 350, obtenido %s", out.Total)
	assert.Len(t, out.Invoices, 2)
}

func TestSalesReport_LimiteSuperiorInclusivo(t *testing.T) {
	env := newReportEnv(t)

	customer := env.mustCustomer(t, "Cliente borde")
	// Factura a las 10:00 del día 15: el filtro to=2025-06-15 debe incluirla.
	env.mustInvoice(t, customer.ID, "40.00", day(15))

	out, err := env.uc.SalesReport(dto.ReportWindowRequest{From: "2025-06-15", To: "2025-06-15"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.InvoiceCount, "el límite superior es inclusivo hasta fin de día")
}

func TestSalesReport_SinFacturas(t *testing.T) {
	env := newReportEnv(t)

	out, err := env.uc.SalesReport(dto.ReportWindowRequest{From: "2030-01-01", To: "2030-01-31"})
	require.NoError(t, err)
	assert.Zero(t, out.InvoiceCount)
	assert.True(t, out.Total.IsZero())
	assert.Empty(t, out.Invoices)
}

func TestSalesReport_FechaInvalida(t *testing.T) {
	env := newReportEnv(t)

	_, err := env.uc.SalesReport(dto.ReportWindowRequest{From: "01-06-2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerReport_SoloSusFacturas(t *testing.T) {
	env := newReportEnv(t)

	c1 := env.mustCustomer(t, "Cliente uno")
	c2 := env.mustCustomer(t, "Cliente dos")
	env.mustInvoice(t, c1.ID, "100.00", day(5))
	env.mustInvoice(t, c1.ID, "50.00", day(6))
	env.mustInvoice(t, c2.ID, "999.00", day(6))

	out, err := env.uc.CustomerReport(c1.ID, dto.ReportWindowRequest{})
	require.NoError(t, err)

	assert.Equal(t, c1.ID, out.CustomerID)
	assert.Equal(t, 2, out.InvoiceCount)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("150")))
}

func TestCustomerReport_ClienteInexistente(t *testing.T) {
	env := newReportEnv(t)

	_, err := env.uc.CustomerReport(uuid.New().String(), dto.ReportWindowRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCounts_ReflejaElEstadoDeLasTablas(t *testing.T) {
	env := newReportEnv(t)

	customer := env.mustCustomer(t, "Cliente conteo")
	env.mustInvoice(t, customer.ID, "10.00", day(1))

	out, err := env.uc.Counts()
	require.NoError(t, err)

	// El bootstrap siembra un cliente y un producto demo.
	assert.Equal(t, 2, out.Customers)
	assert.Equal(t, 1, out.Products)
	assert.Equal(t, 1, out.Invoices)
	assert.Zero(t, out.InvoiceDetails)
}
