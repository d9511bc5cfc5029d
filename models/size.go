package models

import "regexp"

// Product sizes travel as a single string ("500g", "1.5kg") but are edited as
// a numeric quantity plus a unit. These helpers split and recombine them.

// SizeUnits lists the units forms offer, default first.
var SizeUnits = []string{"g", "kg", "ml", "L", "piece", "pieces"}

var (
	sizeQuantityRe = regexp.MustCompile(`^(\d+\.?\d*)`)
	sizeUnitRe     = regexp.MustCompile(`(?i)(kg|g|L|ml|pieces?)$`)
)

// SplitSize breaks a stored size string into its quantity and unit parts.
// Unrecognized input yields an empty quantity and the default unit.
func SplitSize(size string) (quantity, unit string) {
	unit = SizeUnits[0]
	if size == "" {
		return "", unit
	}
	if m := sizeQuantityRe.FindString(size); m != "" {
		quantity = m
	}
	if m := sizeUnitRe.FindString(size); m != "" {
		unit = m
	}
	return quantity, unit
}

// CombineSize joins a quantity and unit into the wire form. An empty quantity
// means the product has no size and yields an empty string, which callers
// submit as an absent field.
func CombineSize(quantity, unit string) string {
	if quantity == "" {
		return ""
	}
	return quantity + unit
}
