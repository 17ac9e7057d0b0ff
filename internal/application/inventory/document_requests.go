package inventory

import (
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// Adaptadores de los bodies HTTP de cada variante a DocumentInput.

// ReceiptInput adapta POST /api/receipts.
func ReceiptInput(in dto.CreateReceiptRequest) DocumentInput {
	out := DocumentInput{
		Type:        entity.DocumentTypeReceipt,
		Status:      entity.DocumentStatus(in.Status),
		SupplierID:  in.SupplierID,
		WarehouseID: in.WarehouseID,
	}
	for _, it := range in.ReceiptItems {
		out.Lines = append(out.Lines, LineInput{
			ProductID:  it.ProductID,
			Quantity:   it.QuantityReceived,
			LocationID: it.LocationID,
			UnitCost:   it.UnitCost,
		})
	}
	return out
}

// DeliveryInput adapta POST /api/deliveries.
func DeliveryInput(in dto.CreateDeliveryRequest) DocumentInput {
	out := DocumentInput{
		Type:        entity.DocumentTypeDelivery,
		Status:      entity.DocumentStatus(in.Status),
		WarehouseID: in.WarehouseID,
	}
	for _, it := range in.DeliveryItems {
		out.Lines = append(out.Lines, LineInput{
			ProductID:  it.ProductID,
			Quantity:   it.QuantityDelivered,
			LocationID: it.LocationID,
		})
	}
	return out
}

// TransferInput adapta POST /api/transfers.
func TransferInput(in dto.CreateTransferRequest) DocumentInput {
	out := DocumentInput{
		Type:            entity.DocumentTypeTransfer,
		Status:          entity.DocumentStatus(in.Status),
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
	}
	for _, it := range in.TransferItems {
		out.Lines = append(out.Lines, LineInput{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			FromLocationID: it.FromLocationID,
			ToLocationID:   it.ToLocationID,
		})
	}
	return out
}

// AdjustmentInput adapta POST /api/adjustments.
func AdjustmentInput(in dto.CreateAdjustmentRequest) DocumentInput {
	out := DocumentInput{
		Type:        entity.DocumentTypeAdjustment,
		WarehouseID: in.WarehouseID,
		Reason:      in.Reason,
	}
	for _, it := range in.AdjustmentItems {
		out.Lines = append(out.Lines, LineInput{
			ProductID:       it.ProductID,
			CountedQuantity: it.CountedQuantity,
			LocationID:      it.LocationID,
		})
	}
	return out
}
