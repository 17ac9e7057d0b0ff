package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// DocumentHandler recepciones, entregas, transferencias y ajustes.
// Las rutas comparten forma; el tipo se fija al registrar cada grupo.
type DocumentHandler struct {
	uc  *inventory.DocumentUseCase
	pdf *inventory.DocumentPDFUseCase
}

// NewDocumentHandler construye el handler. pdf puede ser nil (sin comprobantes).
func NewDocumentHandler(uc *inventory.DocumentUseCase, pdf *inventory.DocumentPDFUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc, pdf: pdf}
}

// CreateReceipt godoc
// @Summary      Crear recepción
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "Proveedor, bodega y líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *DocumentHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.create(c, inventory.ReceiptInput(in))
}

// CreateDelivery godoc
// @Summary      Crear entrega
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "Bodega y líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DocumentHandler) CreateDelivery(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.create(c, inventory.DeliveryInput(in))
}

// CreateTransfer godoc
// @Summary      Crear transferencia interna
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Origen, destino y líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *DocumentHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.create(c, inventory.TransferInput(in))
}

// CreateAdjustment godoc
// @Summary      Registrar ajuste por conteo físico (queda Done al crearse)
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "Bodega, motivo y conteos"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *DocumentHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.create(c, inventory.AdjustmentInput(in))
}

func (h *DocumentHandler) create(c *fiber.Ctx, in inventory.DocumentInput) error {
	out, err := h.uc.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/{tipo}?status=&warehouse_id=&limit=&offset=
func (h *DocumentHandler) List(docType entity.DocumentType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.List(c.UserContext(), repository.DocumentFilter{
			Type:        docType,
			Status:      entity.DocumentStatus(c.Query("status")),
			WarehouseID: c.Query("warehouse_id"),
			Limit:       c.QueryInt("limit", 20),
			Offset:      c.QueryInt("offset", 0),
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// Get GET /api/{tipo}/:id
func (h *DocumentHandler) Get(docType entity.DocumentType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.Get(c.UserContext(), docType, c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// Validate PUT /api/receipts/:id/validate y /api/deliveries/:id/validate
func (h *DocumentHandler) Validate(docType entity.DocumentType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.Validate(c.UserContext(), GetSession(c), docType, c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// Complete godoc
// @Summary      Completar transferencia (asienta origen y destino en una sola transacción)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      409  {object}  dto.InsufficientStockResponse
// @Router       /api/transfers/{id}/complete [put]
func (h *DocumentHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel PUT /api/{tipo}/:id/cancel
func (h *DocumentHandler) Cancel(docType entity.DocumentType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.Cancel(c.UserContext(), GetSession(c), docType, c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// ChangeStatus PUT /api/{tipo}/:id/status con body {"status": "Waiting"|"Ready"}
func (h *DocumentHandler) ChangeStatus(docType entity.DocumentType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.ChangeStatusRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		out, err := h.uc.ChangeStatus(c.UserContext(), GetSession(c), docType, c.Params("id"), entity.DocumentStatus(in.Status))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// PDF godoc
// @Summary      Comprobante PDF de un documento
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "generación de PDF no configurada"})
	}
	id := c.Params("id")
	out, err := h.pdf.Generate(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="documento-`+id+`.pdf"`)
	return c.Send(out)
}
