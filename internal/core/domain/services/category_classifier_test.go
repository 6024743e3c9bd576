package services_test

import (
	"testing"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestCategoryClassifier_Classify(t *testing.T) {
	testCases := []struct {
		category string
		expected order.CategoryKey
	}{
		{"Bebidas", order.CategoryBeverage},
		{"bebida", order.CategoryBeverage},
		{"Sucos naturais", order.CategoryBeverage},
		{"REFRIGERANTES", order.CategoryBeverage},
		{"Cervejas artesanais", order.CategoryBeverage},
		{"Wine", order.CategoryBeverage},
		{"Água mineral", order.CategoryBeverage},
		{"agua", order.CategoryBeverage},
		{"Café", order.CategoryBeverage},
		{"Hot drinks", order.CategoryBeverage},
		{"Chá gelado", order.CategoryBeverage},
		{"Pizzas", order.CategoryFood},
		{"Chapa", order.CategoryFood},
		{"Steak", order.CategoryFood},
		{"Sobremesas", order.CategoryFood},
		{"", order.CategoryFood},
	}

	classifier := services.NewCategoryClassifier()
	for _, tc := range testCases {
		t.Run(tc.category, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifier.Classify(tc.category))
		})
	}
}
