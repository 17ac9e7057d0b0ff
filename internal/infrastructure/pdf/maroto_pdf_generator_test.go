package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "0", formatQty(0))
	assert.Equal(t, "999", formatQty(999))
	assert.Equal(t, "25.000", formatQty(25000))
	assert.Equal(t, "1.000.000", formatQty(1000000))
	assert.Equal(t, "-1.200", formatQty(-1200))
}

func TestGenerateDocumentPDF(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cases := []*entity.Document{
		{ID: "doc-r", Type: entity.DocumentTypeReceipt, Status: entity.StatusDone, CreatedAt: now, DoneAt: &now},
		{ID: "doc-t", Type: entity.DocumentTypeTransfer, Status: entity.StatusDraft, CreatedAt: now},
		{ID: "doc-a", Type: entity.DocumentTypeAdjustment, Status: entity.StatusDone, Reason: "conteo", CreatedAt: now},
	}
	g := NewMarotoPDFGenerator("")
	for _, doc := range cases {
		t.Run(string(doc.Type), func(t *testing.T) {
			data := inventory.DocumentForPDF{
				Document:      doc,
				WarehouseName: "Principal",
				FromName:      "Principal",
				ToName:        "Secundaria",
				SupplierName:  "ABC",
				Lines: []inventory.DocumentLineForPDF{{
					DocumentLine: entity.DocumentLine{ProductID: "p1", Quantity: 1200, CountedQuantity: 8, SystemQuantity: 10},
					SKU:          "SKU-1", ProductName: "Tornillo", UnitOfMeasure: "unit",
				}},
			}
			out, err := g.GenerateDocumentPDF(context.Background(), data)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestGenerateDocumentPDF_SinDocumento(t *testing.T) {
	_, err := NewMarotoPDFGenerator("X").GenerateDocumentPDF(context.Background(), inventory.DocumentForPDF{})
	assert.Error(t, err)
}
