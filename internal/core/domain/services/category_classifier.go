package services

import (
	"strings"
	"unicode"

	"restaurant/internal/core/domain/model/order"
)

var beverageTokens = map[string]struct{}{
	"bebida": {}, "beverage": {}, "drink": {},
	"suco": {}, "juice": {},
	"refrigerante": {}, "soda": {},
	"cerveja": {}, "beer": {},
	"vinho": {}, "wine": {},
	"agua": {}, "água": {}, "water": {},
	"cafe": {}, "café": {}, "coffee": {},
	"cha": {}, "chá": {}, "tea": {},
}

// CategoryClassifier maps the free-form catalog category of a product to the
// kitchen bucket used for category statuses.
//
// Matching is done per word, ignoring case and a plural "s", so "Bebidas
// Geladas" is a beverage while "Chapa" and "Steak" stay food. Anything not
// recognized as a beverage, including an empty category, is food.
//
// Example:
//
//	classifier := services.NewCategoryClassifier()
//	classifier.Classify("Sucos naturais") // order.CategoryBeverage
//	classifier.Classify("Pizzas")         // order.CategoryFood
type CategoryClassifier struct{}

// NewCategoryClassifier creates a classifier.
func NewCategoryClassifier() CategoryClassifier {
	return CategoryClassifier{}
}

// Classify returns the bucket for a catalog category.
func (CategoryClassifier) Classify(category string) order.CategoryKey {
	words := strings.FieldsFunc(strings.ToLower(category), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if isBeverageWord(w) || isBeverageWord(strings.TrimSuffix(w, "s")) {
			return order.CategoryBeverage
		}
	}
	return order.CategoryFood
}

func isBeverageWord(w string) bool {
	_, ok := beverageTokens[w]
	return ok
}
