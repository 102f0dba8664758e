package screen

import (
	"fmt"

	"github.com/screenlux/screenlux-backend/internal/catalog"
)

// ValidateDimensions checks width/height (millimeters) against bounds,
// inclusive. The first failing check wins: presence, width-min, width-max,
// height-min, height-max. The message names the violated threshold.
func ValidateDimensions(widthMM, heightMM int, b catalog.Bounds) (bool, string) {
	if widthMM <= 0 || heightMM <= 0 {
		return false, "width and height are required"
	}
	if widthMM < b.MinWidth {
		return false, fmt.Sprintf("width must be at least %dmm", b.MinWidth)
	}
	if widthMM > b.MaxWidth {
		return false, fmt.Sprintf("width must be at most %dmm", b.MaxWidth)
	}
	if heightMM < b.MinHeight {
		return false, fmt.Sprintf("height must be at least %dmm", b.MinHeight)
	}
	if heightMM > b.MaxHeight {
		return false, fmt.Sprintf("height must be at most %dmm", b.MaxHeight)
	}
	return true, ""
}

// Revalidate updates Valid from the current dimensions and returns it.
func (c *Config) Revalidate(b catalog.Bounds) bool {
	ok, _ := ValidateDimensions(c.WidthMM, c.HeightMM, b)
	c.Valid = ok
	return ok
}
