// Package pdf genera el resumen diario de ventas en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + título          │  Fecha del resumen      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ventas / Impuesto / Cantidad                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENDEDORES: Vendedor | Ventas | Total                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENTAS: Venta | Vendedor | Ítems | Subtotal | IVA | Total   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

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

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/reports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.SummaryRenderer = (*SummaryGenerator)(nil)

// SummaryGenerator implementa reports.SummaryRenderer usando Maroto v2.
type SummaryGenerator struct {
	storeName string
}

// NewSummaryGenerator construye el generador. storeName aparece en la cabecera.
func NewSummaryGenerator(storeName string) *SummaryGenerator {
	return &SummaryGenerator{storeName: nonEmpty(storeName, "Tienda")}
}

// RenderDailySummary genera el PDF y devuelve sus bytes.
func (g *SummaryGenerator) RenderDailySummary(s *dto.DailySummaryResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen diario de ventas "+s.Fecha, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.storeName, s.Fecha))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("VENTAS POR VENDEDOR"))
	m.AddRows(tableHeader([]string{"Vendedor", "Ventas", "Total"}, []int{7, 2, 3}))
	for _, v := range s.VentasPorVendedor {
		m.AddRows(tableRow([]string{v.VendedorID, strconv.Itoa(v.Cantidad), money(v.Total)}, []int{7, 2, 3}))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("DETALLE DE VENTAS"))
	widths := []int{4, 1, 2, 2, 3}
	m.AddRows(tableHeader([]string{"Venta", "Ítems", "Subtotal", "IVA", "Total"}, widths))
	if len(s.DetalleVentas) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No hay ventas completadas en esta fecha.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, v := range s.DetalleVentas {
		m.AddRows(tableRow([]string{
			v.ID, strconv.Itoa(itemCount(v)), money(v.Subtotal), money(v.Impuesto), money(v.Total),
		}, widths))
		for _, d := range v.Detalles {
			m.AddRows(row.New(5).Add(col.New(12).Add(
				text.New(fmt.Sprintf("%d x %s @ %s", d.Cantidad, d.NombreProducto, money(d.PrecioUnitario)),
					props.Text{Size: 7, Color: colorGray, Left: 4}),
			)))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(store, fecha string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(store, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Resumen diario de ventas completadas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FECHA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fecha, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

func totalsRow(s *dto.DailySummaryResponse) core.Row {
	block := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		block("Total ventas", money(s.TotalVentas)),
		block("Total impuesto", money(s.TotalImpuesto)),
		block("Cantidad de ventas", strconv.Itoa(s.CantidadVentas)),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, widths []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols[i] = col.New(widths[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(cols...)
}

func tableRow(values []string, widths []int) core.Row {
	cols := make([]core.Col, len(values))
	for i, v := range values {
		p := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if i == 0 {
			p = props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1}
		}
		cols[i] = col.New(widths[i]).Add(text.New(v, p))
	}
	return row.New(6).Add(cols...)
}

func itemCount(v dto.SaleResponse) int {
	n := 0
	for _, d := range v.Detalles {
		n += d.Cantidad
	}
	return n
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con separador de miles "." y decimales ",": 1234.5 → "$1.234,50".
func money(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
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
