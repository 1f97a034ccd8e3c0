package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/application/reports"
	"github.com/jhoicas/facturacion-api/internal/domain"
)

// ReportHandler maneja los reportes agregados (protegido, solo admin).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales reporte global de ventas en la ventana de fechas.
// GET /api/reports/sales?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var in dto.ReportWindowRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.SalesReport(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas en formato YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Customer reporte de ventas de un cliente.
// GET /api/reports/customers/:id?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) Customer(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ReportWindowRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.CustomerReport(id, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas en formato YYYY-MM-DD"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Counts conteo de filas por tabla.
// GET /api/reports/counts
func (h *ReportHandler) Counts(c *fiber.Ctx) error {
	out, err := h.uc.Counts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
