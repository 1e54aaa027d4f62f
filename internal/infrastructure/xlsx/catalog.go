package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/tienda-api/internal/application/seed"
)

// ReadCatalog lee productos de la primera hoja del libro con las columnas de seed.CatalogColumns
// (la fila 1 es cabecera). Los errores llevan el número de fila de la hoja.
func ReadCatalog(r io.Reader) ([]seed.CatalogItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: archivo inválido: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer hoja %s: %w", sheets[0], err)
	}
	items, err := seed.ParseCatalogRows(rows)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	return items, nil
}
