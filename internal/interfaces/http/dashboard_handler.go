package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc        *appanalytics.DashboardUseCase
	valuation *appanalytics.ValuationUseCase
}

// NewDashboardHandler construye el handler. valuation puede ser nil.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, valuation *appanalytics.ValuationUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, valuation: valuation}
}

// GetKPIs devuelve los indicadores del dashboard.
// GET /api/dashboard/kpis
//
// Filtros opcionales: document_type, status, warehouse_id, location_id,
// product_category_id. Respuesta: DashboardKPIsDTO.
func (h *DashboardHandler) GetKPIs(c *fiber.Ctx) error {
	var in dto.KPIFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	kpis, err := h.uc.GetKPIs(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(kpis)
}

// Valuation valor del inventario con ranking ABC.
// GET /api/dashboard/valuation
//
// Filtros opcionales: warehouse_id, category_id, top_n. Respuesta: ValuationDTO.
func (h *DashboardHandler) Valuation(c *fiber.Ctx) error {
	var in dto.ValuationRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.valuation.GetValuation(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
