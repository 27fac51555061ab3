package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasBuyIntent(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"i want to buy dog food", true},
		{"can i purchase a collar", true},
		{"let me shop for treats", true},
		{"i'd like to order a bed", true},
		{"tell me about your shop", false},
		{"what food do you have", false},
		// Substring matching is intentional: "buying" contains "buy"
		{"thinking about buying later", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, hasBuyIntent(tt.message), "message: %q", tt.message)
	}
}

func TestWantsProductSearch(t *testing.T) {
	assert.True(t, wantsProductSearch("SEARCH_PRODUCTS"))
	assert.True(t, wantsProductSearch("Sure! SEARCH_PRODUCTS"))
	assert.False(t, wantsProductSearch("We stock many brands."))
	// Matching is case-sensitive on the literal marker
	assert.False(t, wantsProductSearch("search_products"))
}

func TestDeriveProductFilters(t *testing.T) {
	tests := []struct {
		message string
		want    map[string]string
	}{
		{"buy dog food", map[string]string{"petType": "dog", "category": "food"}},
		{"buy cat food", map[string]string{"petType": "cat", "category": "food"}},
		{"buy a toy for my dog and cat", map[string]string{"petType": "dog"}},
		{"buy some food", map[string]string{"category": "food"}},
		{"buy a leash", map[string]string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, deriveProductFilters(tt.message), "message: %q", tt.message)
	}
}
