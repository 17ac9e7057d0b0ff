package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// StockHandler consultas del ledger y del índice de stock.
type StockHandler struct {
	ledger *inventory.LedgerUseCase
	stock  *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *inventory.LedgerUseCase, stock *inventory.StockUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, stock: stock}
}

// Ledger godoc
// @Summary      Consultar el ledger de stock
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Producto"
// @Param        warehouse_id   query  string  false  "Bodega"
// @Param        location_id    query  string  false  "Ubicación"
// @Param        document_type  query  string  false  "Tipo de documento"
// @Param        document_id    query  string  false  "Documento"
// @Param        order          query  string  false  "asc | desc"
// @Param        skip           query  int     false  "Offset"
// @Param        limit          query  int     false  "Límite (máx 1000)"
// @Success      200  {object}  dto.LedgerListResponse
// @Router       /api/ledger [get]
func (h *StockHandler) Ledger(c *fiber.Ctx) error {
	var in dto.LedgerQueryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.ledger.Query(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/stock?product_id=&warehouse_id=&location_id=&category_id=
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.stock.List(c.UserContext(), repository.StockFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		LocationID:  c.Query("location_id"),
		CategoryID:  c.Query("category_id"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Level GET /api/stock/level?product_id=&warehouse_id=&location_id=
func (h *StockHandler) Level(c *fiber.Ctx) error {
	out, err := h.stock.GetLevel(c.UserContext(), entity.StockKey{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		LocationID:  c.Query("location_id"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Reconstruir el índice desde el ledger y reportar diferencias
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/stock/reconcile [get]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	report, err := h.stock.Reconcile(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.ToReconcileResponse(report))
}
