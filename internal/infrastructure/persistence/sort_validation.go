package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"category":        true,
	"sku":             true,
	"barcode":         true,
	"supplier":        true,
	"location":        true,
	"unit_price":      true,
	"stock_quantity":  true,
	"min_stock_level": true,
	"status":          true,
}

// productOptionalTextFields are product columns where an empty value means
// "not set". They sort last ascending and first descending.
var productOptionalTextFields = map[string]bool{
	"category": true,
	"sku":      true,
	"barcode":  true,
	"supplier": true,
	"location": true,
}

// RestockOrderSortFields contains allowed sort fields for restock orders
var RestockOrderSortFields = map[string]bool{
	"id":                     true,
	"created_at":             true,
	"updated_at":             true,
	"purchase_date":          true,
	"expected_delivery_date": true,
	"status":                 true,
	"quantity":               true,
	"received_quantity":      true,
	"unit_price":             true,
	"supplier":               true,
}
