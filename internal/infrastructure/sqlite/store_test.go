package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/facturacion-api/pkg/config"
)

// openTestDB abre una base SQLite nueva en un directorio temporal y ejecuta
// el bootstrap (esquema + datos semilla).
func openTestDB(t *testing.T) *sqlStore {
	t.Helper()
	ctx := context.Background()
	cfg := config.DBConfig{Path: filepath.Join(t.TempDir(), "test.db")}
	db, err := sqlite.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Bootstrap(ctx, db))
	return &sqlStore{
		ctx:       ctx,
		db:        db,
		users:     sqlite.NewUserRepository(db),
		customers: sqlite.NewCustomerRepository(db),
		products:  sqlite.NewProductRepository(db),
		invoices:  sqlite.NewInvoiceRepository(db),
		reports:   sqlite.NewReportRepository(db),
	}
}

type sqlStore struct {
	ctx       context.Context
	db        *sql.DB
	users     *sqlite.UserRepo
	customers *sqlite.CustomerRepo
	products  *sqlite.ProductRepo
	invoices  *sqlite.InvoiceRepo
	reports   *sqlite.ReportRepo
}

func newCustomer(name string) *entity.Customer {
	now := time.Now()
	return &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     name + "@test.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newProduct(name string, price string, stock int) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Bootstrap y seed
// ──────────────────────────────────────────────────────────────────────────────

func TestBootstrap_SiembraCuentasYDatosDemo(t *testing.T) {
	s := openTestDB(t)

	admin, err := s.users.FindByEmail(sqlite.SeedAdminEmail)
	require.NoError(t, err)
	require.NotNil(t, admin, "la cuenta admin semilla debe existir")
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	standard, err := s.users.FindByEmail(sqlite.SeedStandardEmail)
	require.NoError(t, err)
	require.NotNil(t, standard)
	assert.Equal(t, entity.RoleStandard, standard.Role)

	customers, err := s.customers.List(10, 0)
	require.NoError(t, err)
	require.Len(t, customers, 1, "debe existir el cliente demo")

	products, err := s.products.List(10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1, "debe existir el producto demo")
	assert.Equal(t, 10, products[0].Stock)
}

func TestBootstrap_EsIdempotente(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	// Segundo bootstrap sobre la misma base: no debe duplicar semillas.
	require.NoError(t, sqlite.Bootstrap(ctx, s.db))

	users, err := s.users.List(10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestReset_VaciaTransaccionalesYConservaUsuarios(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	customer := newCustomer("Cliente reset")
	require.NoError(t, s.customers.Create(customer))

	require.NoError(t, sqlite.Reset(ctx, s.db))

	// Los usuarios sobreviven al reset.
	users, err := s.users.List(10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2, "el reset no debe tocar la tabla de usuarios")

	// Clientes, productos y facturas quedan vacíos.
	counts, err := s.reports.Counts()
	require.NoError(t, err)
	assert.Zero(t, counts.Customers)
	assert.Zero(t, counts.Products)
	assert.Zero(t, counts.Invoices)
	assert.Zero(t, counts.InvoiceDetails)
}

// TestReset_SecuenciaDelComando replica la secuencia completa del subcomando
// resetdb (bootstrap de arranque y luego reset): al terminar, las cuentas
// semilla sobreviven y clientes/productos/facturas quedan en cero — sin
// resembrar los datos demo.
func TestReset_SecuenciaDelComando(t *testing.T) {
	ctx := context.Background()
	cfg := config.DBConfig{Path: filepath.Join(t.TempDir(), "resetdb.db")}
	db, err := sqlite.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlite.Bootstrap(ctx, db))
	require.NoError(t, sqlite.Reset(ctx, db))

	users := sqlite.NewUserRepository(db)
	list, err := users.List(10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2, "las dos cuentas semilla deben sobrevivir")

	counts, err := sqlite.NewReportRepository(db).Counts()
	require.NoError(t, err)
	assert.Zero(t, counts.Customers, "tras resetdb no deben quedar clientes")
	assert.Zero(t, counts.Products, "tras resetdb no deben quedar productos")
	assert.Zero(t, counts.Invoices)
	assert.Zero(t, counts.InvoiceDetails)
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD de clientes y productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerRepo_CicloCompleto(t *testing.T) {
	s := openTestDB(t)

	customer := newCustomer("ACME S.A.")
	require.NoError(t, s.customers.Create(customer))

	got, err := s.customers.GetByID(customer.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ACME S.A.", got.Name)

	got.Name = "ACME Renombrada"
	require.NoError(t, s.customers.Update(got))

	got, err = s.customers.GetByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME Renombrada", got.Name)

	require.NoError(t, s.customers.Delete(customer.ID))

	got, err = s.customers.GetByID(customer.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "cliente eliminado no debe encontrarse")
}

func TestCustomerRepo_GetInexistente_DevuelveNil(t *testing.T) {
	s := openTestDB(t)

	got, err := s.customers.GetByID(uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepo_DeleteInexistente_DevuelveNotFound(t *testing.T) {
	s := openTestDB(t)

	err := s.products.Delete(uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_EmailDuplicado_DevuelveError(t *testing.T) {
	s := openTestDB(t)
	now := time.Now()

	err := s.users.Create(&entity.User{
		ID:           uuid.New().String(),
		Email:        sqlite.SeedAdminEmail,
		PasswordHash: "x",
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_DecrementStock(t *testing.T) {
	s := openTestDB(t)

	product := newProduct("Teclado", "50.00", 5)
	require.NoError(t, s.products.Create(product))

	require.NoError(t, s.products.DecrementStock(product.ID, 3))

	got, err := s.products.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
}

func TestProductRepo_DecrementStock_Insuficiente(t *testing.T) {
	s := openTestDB(t)

	product := newProduct("Mouse", "20.00", 2)
	require.NoError(t, s.products.Create(product))

	err := s.products.DecrementStock(product.ID, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El stock no debe cambiar tras el intento fallido.
	got, err := s.products.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas: filtros del listado
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceRepo_List_FiltraPorClienteYFechas(t *testing.T) {
	s := openTestDB(t)

	c1 := newCustomer("Cliente uno")
	c2 := newCustomer("Cliente dos")
	require.NoError(t, s.customers.Create(c1))
	require.NoError(t, s.customers.Create(c2))

	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 12, 0, 0, 0, time.Local)
	}
	mkInvoice := func(customerID string, date time.Time) {
		require.NoError(t, s.invoices.Create(&entity.Invoice{
			ID:         uuid.New().String(),
			CustomerID: customerID,
			Number:     uuid.New().String(),
			Date:       date,
			Total:      decimal.RequireFromString("100"),
			CreatedAt:  date,
		}))
	}
	mkInvoice(c1.ID, day(1))
	mkInvoice(c1.ID, day(10))
	mkInvoice(c2.ID, day(10))

	// Sin filtros: todas.
	all, err := s.invoices.List(repository.InvoiceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Por cliente.
	byCustomer, err := s.invoices.List(repository.InvoiceFilter{CustomerID: c1.ID})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	// Ventana de fechas: solo el día 10.
	windowed, err := s.invoices.List(repository.InvoiceFilter{
		From: day(5),
		To:   day(10).Add(12 * time.Hour),
	})
	require.NoError(t, err)
	assert.Len(t, windowed, 2)

	// Cliente + ventana.
	both, err := s.invoices.List(repository.InvoiceFilter{
		CustomerID: c1.ID,
		From:       day(5),
		To:         day(15),
	})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, c1.ID, both[0].CustomerID)
}

func TestInvoiceRepo_CountByCustomer(t *testing.T) {
	s := openTestDB(t)

	customer := newCustomer("Con facturas")
	require.NoError(t, s.customers.Create(customer))

	n, err := s.invoices.CountByCustomer(customer.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.invoices.Create(&entity.Invoice{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		Number:     uuid.New().String(),
		Date:       time.Now(),
		Total:      decimal.RequireFromString("10"),
		CreatedAt:  time.Now(),
	}))

	n, err = s.invoices.CountByCustomer(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
