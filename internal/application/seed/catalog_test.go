package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/seed"
)

func TestParseCatalogRows(t *testing.T) {
	items, err := seed.ParseCatalogRows([][]string{
		{"Nombre", "Descripción", "Precio", "Stock", "Categoría", "Imagen"},
		{"Bufanda", "Bufanda de lana para invierno", "12,50", " 8 ", "accesorios"},
		{"", "  "},
		{"Gorra", "Gorra ajustable deportiva", "24.99", "100", "accesorios", "https://img/gorra.png"},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "12.5", items[0].Precio.String())
	assert.Equal(t, 8, items[0].Stock)
	assert.Empty(t, items[0].Imagen)
	assert.Equal(t, "https://img/gorra.png", items[1].Imagen)
}

func TestParseCatalogRows_FilaConErrorIndicaPosicion(t *testing.T) {
	_, err := seed.ParseCatalogRows([][]string{
		{"nombre", "descripcion", "precio", "stock", "categoria"},
		{},
		{"Gorra", "Gorra ajustable deportiva", "gratis", "1", "accesorios"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 3")
	assert.Contains(t, err.Error(), "precio inválido")
}

func TestParseCatalogRows_Cabecera(t *testing.T) {
	_, err := seed.ParseCatalogRows(nil)
	assert.Error(t, err)

	_, err = seed.ParseCatalogRows([][]string{
		{"Bufanda", "Bufanda de lana para invierno", "12.50", "8", "accesorios"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cabecera inválida")

	_, err = seed.ParseCatalogRows([][]string{{"nombre", "precio"}})
	assert.Error(t, err)
}
