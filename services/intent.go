package services

import "strings"

// productSearchMarker is the literal the model emits when the system
// prompt classifies a message as purchase intent
const productSearchMarker = "SEARCH_PRODUCTS"

// buyKeywords are matched as substrings, not whole words, to keep
// parity with the storefront frontend's expectations
var buyKeywords = []string{"buy", "purchase", "shop for", "order"}

// hasBuyIntent reports whether the lowercased user message contains an
// explicit purchase keyword
func hasBuyIntent(loweredMessage string) bool {
	for _, keyword := range buyKeywords {
		if strings.Contains(loweredMessage, keyword) {
			return true
		}
	}
	return false
}

// wantsProductSearch reports whether the model's reply carries the
// product search marker
func wantsProductSearch(reply string) bool {
	return strings.Contains(reply, productSearchMarker)
}

// deriveProductFilters infers catalog filters from the lowercased user
// message. Dog takes priority when both pet types are mentioned.
func deriveProductFilters(loweredMessage string) map[string]string {
	filters := make(map[string]string)

	if strings.Contains(loweredMessage, "dog") {
		filters["petType"] = "dog"
	} else if strings.Contains(loweredMessage, "cat") {
		filters["petType"] = "cat"
	}

	if strings.Contains(loweredMessage, "food") {
		filters["category"] = "food"
	}

	return filters
}
