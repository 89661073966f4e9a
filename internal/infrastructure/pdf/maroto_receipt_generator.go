// Package pdf implementa la generación del comprobante de pago en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda  │  N° de transacción + Fecha de pago       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMPRADOR: Nombre + email + teléfono                       │
//	│  ENTREGA: Dirección + ciudad                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Precio                                    │
//	│  TOTALES: Producto / Tarifa base / Envío / TOTAL PAGADO      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAGO: Tarjeta **** + referencia del proveedor + QR          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/jhoicas/checkout-api/internal/application/receipt"
	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa receipt.Generator usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	if storeName == "" {
		storeName = "Checkout Store"
	}
	return &MarotoReceiptGenerator{storeName: storeName}
}

var _ receipt.Generator = (*MarotoReceiptGenerator)(nil)

// GenerateReceipt genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(data receipt.Data) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pago", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data.Transaction))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(buyerRow(data.Customer))
	m.AddRows(deliveryRow(data.Delivery))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(productRow(data.Product))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data.Transaction))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range paymentFooterRows(data.Transaction) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y número de transacción + fecha (der).
func (g *MarotoReceiptGenerator) headerRow(t entity.Transaction) core.Row {
	fecha := t.UpdatedAt.Format("02/01/2006 15:04")
	if t.CompletedAt != nil {
		fecha = t.CompletedAt.Format("02/01/2006 15:04")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de pago", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TRANSACCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(t.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Fecha de pago: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// buyerRow: datos del comprador.
func buyerRow(c entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("COMPRADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s", c.Email, c.Phone),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// deliveryRow: dirección de entrega (puede faltar en datos históricos).
func deliveryRow(d *entity.Delivery) core.Row {
	address := "—"
	if d != nil {
		address = d.Address + ", " + d.City
		if d.PostalCode != "" {
			address += " (" + d.PostalCode + ")"
		}
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(address, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

// productRow: línea única del producto comprado.
func productRow(p entity.Product) core.Row {
	return row.New(10).Add(
		col.New(8).Add(
			text.New("PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(p.Name, props.Text{Size: 9, Top: 6}),
		),
		col.New(4).Add(
			text.New("PRECIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(money.FormatCOP(p.Price.InexactFloat64()), props.Text{
				Size: 9, Align: align.Right, Top: 6,
			}),
		),
	)
}

// totalsRow: desglose de montos alineado a la derecha.
func totalsRow(t entity.Transaction) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("TOTAL PAGADO:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2,
	})
	grandValue := text.New(money.FormatCOP(t.TotalAmount), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1,
	})

	return row.New(30).Add(
		col.New(3),
		col.New(3).Add(
			label("Producto:"),
			label("Tarifa base:"),
			label("Envío:"),
			grandLabel,
		),
		col.New(3).Add(
			value(money.FormatCOP(t.ProductAmount)),
			value(money.FormatCOP(t.BaseFee)),
			value(money.FormatCOP(t.DeliveryFee)),
			grandValue,
		),
		col.New(3),
	)
}

// paymentFooterRows: medio de pago + referencia del proveedor + QR de validación.
func paymentFooterRows(t entity.Transaction) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("INFORMACIÓN DEL PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	card := "Tarjeta de crédito"
	if t.CardLastFour != "" {
		card = fmt.Sprintf("%s **** %s", t.CardBrand, t.CardLastFour)
	}
	rows = append(rows, row.New(5).Add(col.New(12).Add(
		text.New("Medio de pago: "+card, props.Text{Size: 8, Top: 1, Color: colorGray}),
	)))
	if t.ProviderReference != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Referencia: "+t.ProviderReference, props.Text{
				Size: 7, Top: 1, Left: 2, Color: colorGray,
			}),
		)))
	}

	rows = append(rows, row.New(3))

	if t.ProviderTransactionID != "" {
		qrData := fmt.Sprintf("transaction=%s;provider=%s;ref=%s",
			t.ID, t.ProviderTransactionID, t.ProviderReference)
		rows = append(rows, row.New(40).Add(
			col.New(4).Add(code.NewQr(qrData, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para verificar\neste pago con el proveedor.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("PAGO APROBADO", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 20,
					Left: 3, Color: colorPrimary,
				}),
			),
		))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Este comprobante certifica el pago de la transacción indicada. "+
				"Conserve este documento como soporte de su compra.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}
