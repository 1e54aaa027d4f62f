package seed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CatalogColumns columnas de un catálogo importado, en orden. imagen es opcional.
var CatalogColumns = []string{"nombre", "descripcion", "precio", "stock", "categoria", "imagen"}

const requiredColumns = 5

var headerFold = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")

// ParseCatalogRows convierte filas de texto (hoja de cálculo o CSV) en CatalogItem.
// La primera fila debe ser la cabecera con CatalogColumns; las filas vacías se ignoran.
// Los errores llevan el número de fila del archivo (la cabecera es la fila 1).
func ParseCatalogRows(rows [][]string) ([]CatalogItem, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("catálogo vacío: falta la cabecera %s", strings.Join(CatalogColumns, ", "))
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	var items []CatalogItem
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		line := i + 2
		cell := func(c int) string {
			if c < len(row) {
				return strings.TrimSpace(row[c])
			}
			return ""
		}
		// Excel en español exporta "12,50"
		price, err := decimal.NewFromString(strings.ReplaceAll(cell(2), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("fila %d: precio inválido %q", line, cell(2))
		}
		stock, err := strconv.Atoi(cell(3))
		if err != nil {
			return nil, fmt.Errorf("fila %d: stock inválido %q", line, cell(3))
		}
		items = append(items, CatalogItem{
			Nombre:      cell(0),
			Descripcion: cell(1),
			Precio:      price,
			Stock:       stock,
			Categoria:   cell(4),
			Imagen:      cell(5),
		})
	}
	return items, nil
}

func checkHeader(header []string) error {
	if len(header) < requiredColumns {
		return fmt.Errorf("cabecera inválida: se esperaban las columnas %s", strings.Join(CatalogColumns, ", "))
	}
	for i, want := range CatalogColumns {
		if i >= len(header) {
			break
		}
		got := headerFold.Replace(strings.ToLower(strings.TrimSpace(header[i])))
		if got != want {
			return fmt.Errorf("cabecera inválida: columna %d es %q, se esperaba %q", i+1, header[i], want)
		}
	}
	return nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
