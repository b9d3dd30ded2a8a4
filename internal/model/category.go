package model

import (
	"fmt"
	"strings"
)

// Category задает тип пункта маршрута.
type Category string

const (
	CategorySightseeing Category = "sightseeing"
	CategoryMeal        Category = "meal"
	CategoryShopping    Category = "shopping"
	CategoryTransit     Category = "transit"
)

// Categories перечисляет категории в порядке отображения.
var Categories = []Category{CategorySightseeing, CategoryMeal, CategoryShopping, CategoryTransit}

var categoryLabels = map[Category]string{
	CategorySightseeing: "관광",
	CategoryMeal:        "식사",
	CategoryShopping:    "쇼핑",
	CategoryTransit:     "이동",
}

var categoryGlyphs = map[Category]string{
	CategorySightseeing: "🏛️",
	CategoryMeal:        "🍜",
	CategoryShopping:    "🛍️",
	CategoryTransit:     "🚌",
}

// ParseCategory разбирает категорию по английскому имени или корейской подписи.
// Пустая строка означает категорию по умолчанию (sightseeing).
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategorySightseeing, nil
	}
	for _, c := range Categories {
		if s == string(c) || s == categoryLabels[c] {
			return c, nil
		}
	}
	return "", fmt.Errorf("неизвестная категория %q", s)
}

// Label возвращает подпись категории для отображения.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Glyph возвращает значок категории ("📍" для неизвестных).
func (c Category) Glyph() string {
	if g, ok := categoryGlyphs[c]; ok {
		return g
	}
	return "📍"
}
