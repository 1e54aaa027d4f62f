package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCatalogCSV_PuntoYComa(t *testing.T) {
	in := "nombre;descripcion;precio;stock;categoria;imagen\n" +
		"Bufanda;Bufanda de lana para invierno;12,50;8;accesorios;\n" +
		";;;;;\n" +
		"Camiseta Niño;Camiseta de algodón para niños;19.99;20;niños;https://img/1.png\n"

	items, err := readCatalogCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bufanda", items[0].Nombre)
	assert.Equal(t, "12.5", items[0].Precio.String())
	assert.Equal(t, 8, items[0].Stock)
	assert.Equal(t, "niños", items[1].Categoria)
	assert.Equal(t, "https://img/1.png", items[1].Imagen)
}

func TestReadCatalogCSV_Latin1(t *testing.T) {
	utf8 := "nombre,descripcion,precio,stock,categoria\nCinturón,Cinturón de cuero genuino,44.99,35,accesorios\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)
	require.NotEqual(t, utf8, latin1)

	items, err := readCatalogCSV(decodeLatin1(strings.NewReader(latin1)))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cinturón", items[0].Nombre)
}

func TestReadCatalogCSV_StockInvalido(t *testing.T) {
	_, err := readCatalogCSV(strings.NewReader("nombre,descripcion,precio,stock,categoria\nGorra,Gorra ajustable deportiva,24.99,muchas,accesorios\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 2")
}
