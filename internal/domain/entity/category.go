package entity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Category categoría de producto (conjunto cerrado).
type Category string

const (
	CategoryElectronics Category = "Électronique"
	CategoryClothing    Category = "Vêtements"
	CategoryFood        Category = "Alimentaire"
	CategoryFurniture   Category = "Mobilier"
	CategoryBooks       Category = "Livres"
	CategoryOther       Category = "Autre"
)

// Categories devuelve las categorías válidas en orden de presentación.
func Categories() []Category {
	return []Category{
		CategoryElectronics, CategoryClothing, CategoryFood,
		CategoryFurniture, CategoryBooks, CategoryOther,
	}
}

// ParseCategory normaliza (NFC, sin distinguir mayúsculas) y valida una categoría.
// Una cadena vacía devuelve la categoría por defecto.
func ParseCategory(s string) (Category, bool) {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return CategoryOther, true
	}
	for _, c := range Categories() {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}
