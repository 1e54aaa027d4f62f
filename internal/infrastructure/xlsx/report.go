// Package xlsx lee y escribe hojas de cálculo con excelize: exporta el resumen diario
// de ventas e importa catálogos de productos.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/reports"
)

// Nombres de las hojas del resumen.
const (
	SheetSummary = "Resumen"
	SheetSales   = "Ventas"
	SheetLines   = "Detalle"
)

var _ reports.SummaryRenderer = (*SummaryWriter)(nil)

// SummaryWriter implementa reports.SummaryRenderer generando un .xlsx.
type SummaryWriter struct{}

// NewSummaryWriter construye el writer.
func NewSummaryWriter() *SummaryWriter { return &SummaryWriter{} }

// RenderDailySummary escribe tres hojas: totales y vendedores, cabeceras de venta y líneas.
func (w *SummaryWriter) RenderDailySummary(s *dto.DailySummaryResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	for _, name := range []string{SheetSales, SheetLines} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: hoja %s: %w", name, err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	summaryRows := [][]any{
		{"Fecha", s.Fecha},
		{"Total ventas", s.TotalVentas.InexactFloat64()},
		{"Total impuesto", s.TotalImpuesto.InexactFloat64()},
		{"Cantidad de ventas", s.CantidadVentas},
		{},
		{"Vendedor", "Ventas", "Total"},
	}
	for _, v := range s.VentasPorVendedor {
		summaryRows = append(summaryRows, []any{v.VendedorID, v.Cantidad, v.Total.InexactFloat64()})
	}
	if err := writeRows(f, SheetSummary, summaryRows); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(SheetSummary, "A1", "A4", bold)
	_ = f.SetCellStyle(SheetSummary, "A6", "C6", bold)

	salesRows := [][]any{{"Venta", "Vendedor", "Estado", "Subtotal", "Impuesto", "Total", "Creada"}}
	lineRows := [][]any{{"Venta", "Producto", "Cantidad", "Precio unitario", "Subtotal"}}
	for _, v := range s.DetalleVentas {
		salesRows = append(salesRows, []any{
			v.ID, v.VendedorID, v.Estado,
			v.Subtotal.InexactFloat64(), v.Impuesto.InexactFloat64(), v.Total.InexactFloat64(),
			v.CreatedAt.Format("2006-01-02 15:04:05"),
		})
		for _, d := range v.Detalles {
			lineRows = append(lineRows, []any{
				v.ID, d.NombreProducto, d.Cantidad, d.PrecioUnitario.InexactFloat64(), d.Subtotal.InexactFloat64(),
			})
		}
	}
	if err := writeRows(f, SheetSales, salesRows); err != nil {
		return nil, err
	}
	if err := writeRows(f, SheetLines, lineRows); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(SheetSales, "A1", "G1", bold)
	_ = f.SetCellStyle(SheetLines, "A1", "E1", bold)
	_ = f.SetColWidth(SheetSummary, "A", "A", 22)
	_ = f.SetColWidth(SheetSales, "A", "B", 38)
	_ = f.SetColWidth(SheetLines, "A", "B", 38)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
