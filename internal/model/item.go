package model

import "strings"

// DefaultUnit is used when an item arrives without a unit of measurement.
const DefaultUnit = "un"

// Units lists the accepted units of measurement.
var Units = []string{"un", "kg", "g", "l", "ml", "cx", "dz"}

// Item is a single shopping-list line or a product-bank entry. Bank entries
// reuse the same shape; their Purchased flag is always false.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	Category  string `json:"category"`
	Notes     string `json:"notes"`
	Purchased bool   `json:"purchased"`
}

// ClampQuantity coerces a quantity to the valid range. Anything below 1
// (including zero values from missing input) becomes 1.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// ValidName reports whether a name is non-empty after trimming.
func ValidName(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidUnit reports whether u is one of the accepted units.
func ValidUnit(u string) bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}
