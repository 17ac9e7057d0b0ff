// Package pdf genera el comprobante imprimible de un documento de inventario
// (recepción, entrega, transferencia o ajuste).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento + estado │  N° documento + fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTES: proveedor / bodega / origen → destino / motivo      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Ubicación | Cantidad | Unidad        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: líneas / unidades                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id del documento + firmas                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ inventory.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa inventory.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador. company aparece como autor y en el encabezado.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: nonEmpty(company, "StockMaster")}
}

// GenerateDocumentPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(_ context.Context, data inventory.DocumentForPDF) ([]byte, error) {
	if data.Document == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}
	doc := data.Document

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(typeLabel(doc.Type)+" "+doc.ID, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	adjustment := doc.Type == entity.DocumentTypeAdjustment
	m.AddRows(tableHeaderRow(adjustment))
	for _, r := range tableDetailRows(data.Lines, doc.Type) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data.Lines, adjustment))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + tipo (izq) y número + fecha + estado (der).
func headerRow(company string, doc *entity.Document) core.Row {
	fecha := doc.CreatedAt.Format("02/01/2006 15:04")

	return row.New(20).Add(
		col.New(7).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(typeLabel(doc.Type), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+doc.ID, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Creado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Estado: "+string(doc.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 13, Color: colorPrimary,
			}),
		),
	)
}

// partiesRow: bodegas, proveedor y motivo según la variante.
func partiesRow(data inventory.DocumentForPDF) core.Row {
	doc := data.Document
	var detail string
	switch doc.Type {
	case entity.DocumentTypeReceipt:
		detail = fmt.Sprintf("Proveedor: %s   |   Bodega destino: %s",
			nonEmpty(data.SupplierName, "—"), nonEmpty(data.WarehouseName, "—"))
	case entity.DocumentTypeDelivery:
		detail = "Bodega origen: " + nonEmpty(data.WarehouseName, "—")
	case entity.DocumentTypeTransfer:
		detail = fmt.Sprintf("Origen: %s   →   Destino: %s",
			nonEmpty(data.FromName, "—"), nonEmpty(data.ToName, "—"))
	case entity.DocumentTypeAdjustment:
		detail = fmt.Sprintf("Bodega: %s   |   Motivo: %s",
			nonEmpty(data.WarehouseName, "—"), nonEmpty(doc.Reason, "—"))
	}

	done := "—"
	if doc.DoneAt != nil {
		done = doc.DoneAt.Format("02/01/2006 15:04")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DEL MOVIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(detail, props.Text{Size: 9, Top: 6}),
			text.New(fmt.Sprintf("Registrado por: %s   |   Finalizado: %s", nonEmpty(doc.CreatedBy, "—"), done),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow(adjustment bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	if adjustment {
		return row.New(8).Add(
			h("SKU", 2, align.Left),
			h("Producto", 4, align.Left),
			h("Ubicación", 2, align.Left),
			h("Sistema", 1, align.Right),
			h("Contado", 1, align.Right),
			h("Diferencia", 2, align.Right),
		)
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Ubicación", 2, align.Left),
		h("Cantidad", 2, align.Right),
		h("Unidad", 2, align.Center),
	)
}

// tableDetailRows: una fila por línea del documento.
func tableDetailRows(lines []inventory.DocumentLineForPDF, t entity.DocumentType) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		location := l.LocationID
		if t == entity.DocumentTypeTransfer {
			location = nonEmpty(l.FromLocationID, "·") + " → " + nonEmpty(l.ToLocationID, "·")
		}
		if t == entity.DocumentTypeAdjustment {
			result = append(result, row.New(7).Add(
				cell(l.SKU, 2, align.Left),
				cell(nonEmpty(l.ProductName, l.ProductID), 4, align.Left),
				cell(nonEmpty(location, "—"), 2, align.Left),
				cell(formatQty(l.SystemQuantity), 1, align.Right),
				cell(formatQty(l.CountedQuantity), 1, align.Right),
				cell(fmt.Sprintf("%+d", l.CountedQuantity-l.SystemQuantity), 2, align.Right),
			))
			continue
		}
		result = append(result, row.New(7).Add(
			cell(l.SKU, 2, align.Left),
			cell(nonEmpty(l.ProductName, l.ProductID), 4, align.Left),
			cell(nonEmpty(location, "—"), 2, align.Left),
			cell(formatQty(l.Quantity), 2, align.Right),
			cell(nonEmpty(l.UnitOfMeasure, "unit"), 2, align.Center),
		))
	}
	return result
}

// totalsRow: cantidad de líneas y unidades movidas (o diferencia neta del ajuste).
func totalsRow(lines []inventory.DocumentLineForPDF, adjustment bool) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	var units int64
	for _, l := range lines {
		if adjustment {
			units += l.CountedQuantity - l.SystemQuantity
		} else {
			units += l.Quantity
		}
	}
	unitsLabel, unitsValue := "Unidades:", formatQty(units)
	if adjustment {
		unitsLabel, unitsValue = "Diferencia neta:", fmt.Sprintf("%+d", units)
	}

	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Líneas:"), label(unitsLabel)),
		col.New(3).Add(value(strconv.Itoa(len(lines))), value(unitsValue)),
	)
}

// footerRow: QR con el id del documento y espacio para firmas.
func footerRow(doc *entity.Document) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(doc.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Escanee el código para consultar el documento en StockMaster.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Entregado por: ______________________     Recibido por: ______________________", props.Text{
				Size: 8, Top: 26, Left: 3,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func typeLabel(t entity.DocumentType) string {
	switch t {
	case entity.DocumentTypeReceipt:
		return "RECEPCIÓN DE MERCANCÍA"
	case entity.DocumentTypeDelivery:
		return "ENTREGA / DESPACHO"
	case entity.DocumentTypeTransfer:
		return "TRANSFERENCIA INTERNA"
	case entity.DocumentTypeAdjustment:
		return "AJUSTE DE INVENTARIO"
	}
	return string(t)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty inserta puntos de miles. Ej: 25000 → "25.000", -1200 → "-1.200".
func formatQty(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
