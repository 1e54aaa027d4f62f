package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category agrupa los productos del catálogo.
type Category string

// Categorías del catálogo.
const (
	CategoryMen         Category = "hombres"
	CategoryWomen       Category = "mujeres"
	CategoryChildren    Category = "niños"
	CategoryAccessories Category = "accesorios"
)

// Categories lista las categorías en el orden en que se muestran.
var Categories = []Category{CategoryMen, CategoryWomen, CategoryChildren, CategoryAccessories}

// ParseCategory normaliza la entrada (mayúsculas, espacios, tildes) y devuelve la categoría.
// "NIÑOS", "ninos" y " Niños " resuelven a CategoryChildren.
func ParseCategory(s string) (Category, bool) {
	key := foldAccents(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range Categories {
		if foldAccents(string(c)) == key {
			return c, true
		}
	}
	return "", false
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
