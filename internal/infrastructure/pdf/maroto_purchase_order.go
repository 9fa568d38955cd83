// Package pdf genera la orden de compra imprimible que se envía al proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° de orden  │  Fechas de entrega y pago  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Código, nombre, dirección y contacto            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Cant. | P. Base | Subtotal      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / PPN / TOTAL                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ usecase.PurchaseOrderRenderer = (*MarotoPurchaseOrderRenderer)(nil)

// MarotoPurchaseOrderRenderer implementa usecase.PurchaseOrderRenderer con Maroto v2.
type MarotoPurchaseOrderRenderer struct{}

// NewMarotoPurchaseOrderRenderer construye el renderer.
func NewMarotoPurchaseOrderRenderer() *MarotoPurchaseOrderRenderer {
	return &MarotoPurchaseOrderRenderer{}
}

// Render genera el PDF de la orden y devuelve sus bytes.
func (g *MarotoPurchaseOrderRenderer) Render(po *entity.PurchaseOrderDetail, products map[string]entity.ProductRef) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra "+po.OrderNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(po))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(&po.Supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(po.Lines, products) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(po))

	if po.Description != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Observaciones: "+po.Description, props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título + número de orden (izq), fechas (der).
func headerRow(po *entity.PurchaseOrderDetail) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(po.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Entrega: "+po.DeliveryDate.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
			text.New("Pago: "+po.PaymentDate.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// supplierRow: datos del proveedor destinatario.
func supplierRow(s *entity.Supplier) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s — %s", s.Code, s.Name), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Contacto: %s",
				nonEmpty(s.Address, "—"),
				nonEmpty(s.Contact, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Cant.", 1, align.Center),
		h("P. Base", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func tableLineRows(lines []entity.PurchaseOrderLine, products map[string]entity.ProductRef) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		ref := products[l.ProductID]
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				nonEmpty(ref.Code, l.ProductID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				nonEmpty(ref.Name, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.Amount.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.BasePrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.TotalPrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(po *entity.PurchaseOrderDetail) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	subtotal := po.TotalPrice
	ppn := decimal.Zero
	if po.UsePPN {
		ppn = po.PPN
		subtotal = po.TotalPrice.Sub(ppn)
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("PPN:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(subtotal.StringFixed(0))),
			value("$"+formatMoney(ppn.StringFixed(0))),
			grandValue("$"+formatMoney(po.TotalPrice.StringFixed(0))),
		),
		col.New(3),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
