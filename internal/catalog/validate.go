package catalog

import (
	"fmt"
	"strings"

	"github.com/screenlux/screenlux-backend/internal/money"
)

// ValidateRaw checks semantic constraints of a merged RawCatalog.
func ValidateRaw(raw RawCatalog) error {
	var errs []string

	// bounds
	if raw.Bounds == nil {
		errs = append(errs, "bounds are required")
	} else {
		b := raw.Bounds
		if b.MinWidth == nil || *b.MinWidth <= 0 {
			errs = append(errs, "bounds.min_width must be >= 1")
		}
		if b.MinHeight == nil || *b.MinHeight <= 0 {
			errs = append(errs, "bounds.min_height must be >= 1")
		}
		if b.MinWidth != nil && b.MaxWidth != nil && *b.MaxWidth < *b.MinWidth {
			errs = append(errs, "bounds.max_width must be >= min_width")
		}
		if b.MinHeight != nil && b.MaxHeight != nil && *b.MaxHeight < *b.MinHeight {
			errs = append(errs, "bounds.max_height must be >= min_height")
		}
		if b.MaxWidth == nil {
			errs = append(errs, "bounds.max_width is required")
		}
		if b.MaxHeight == nil {
			errs = append(errs, "bounds.max_height is required")
		}
	}

	// rules
	if raw.Rules == nil {
		errs = append(errs, "rules are required")
	} else {
		r := raw.Rules
		if r.BasePrice != nil && *r.BasePrice < 0 {
			errs = append(errs, "rules.base_price must be >= 0")
		}
		errs = appendRateErrs(errs, "rules.fabric_rates", r.FabricRates)
		errs = appendRateErrs(errs, "rules.cassette_width_rates", r.CassetteWidthRates)
		errs = appendRateErrs(errs, "rules.cassette_height_rates", r.CassetteHeightRates)
		errs = appendRateErrs(errs, "rules.motor_surcharges", r.MotorSurcharges)
		if r.PriceStep != nil && *r.PriceStep < 0 {
			errs = append(errs, "rules.price_step must be >= 0")
		}
		if r.MinPrice != nil && r.MaxPrice != nil && *r.MaxPrice < *r.MinPrice {
			errs = append(errs, "rules.max_price must be >= min_price")
		}
	}

	// variants
	seen := map[string]bool{}
	for i, v := range raw.Variants {
		if v.ID == "" {
			errs = append(errs, fmt.Sprintf("variants[%d].id is required", i))
		} else if seen[v.ID] {
			errs = append(errs, fmt.Sprintf("variants[%d].id %q duplicated", i, v.ID))
		}
		seen[v.ID] = true
		if v.Price <= 0 {
			errs = append(errs, fmt.Sprintf("variants[%d].price must be >= 1", i))
		}
		if v.SKU != "" {
			if _, err := money.ParsePrice(v.SKU); err != nil {
				errs = append(errs, fmt.Sprintf("variants[%d].sku %q is not a decimal price", i, v.SKU))
			}
		}
	}

	// services
	for i, s := range raw.Services {
		if s.ID == "" || s.Title == "" {
			errs = append(errs, fmt.Sprintf("services[%d] needs id and title", i))
		}
		switch s.Power {
		case "", PowerWired, PowerSolar:
		default:
			errs = append(errs, fmt.Sprintf("services[%d].power must be one of: wired, solar", i))
		}
	}

	// brackets / addons
	for i, b := range raw.Brackets {
		if b.ID == "" || b.Title == "" {
			errs = append(errs, fmt.Sprintf("brackets[%d] needs id and title", i))
		}
	}
	for i, a := range raw.Addons {
		if a.ID == "" || a.Title == "" {
			errs = append(errs, fmt.Sprintf("addons[%d] needs id and title", i))
		}
	}

	// option catalogs
	if raw.Options != nil {
		errs = appendOptionErrs(errs, "options.frame_colors", raw.Options.FrameColors)
		errs = appendOptionErrs(errs, "options.fabric_colors", raw.Options.FabricColors)
		errs = appendOptionErrs(errs, "options.fabric_types", raw.Options.FabricTypes)
		errs = appendOptionErrs(errs, "options.cassette_sizes", raw.Options.CassetteSizes)
		errs = appendOptionErrs(errs, "options.motors", raw.Options.Motors)
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Warnings reports non-fatal catalog issues worth logging at load time.
func Warnings(raw RawCatalog) []string {
	var warns []string
	for i, s := range raw.Services {
		if s.Power == "" {
			warns = append(warns, fmt.Sprintf("services[%d] %q has no power tag; title matching will be used", i, s.ID))
		}
	}
	withSKU := 0
	for _, v := range raw.Variants {
		if v.SKU != "" {
			withSKU++
		}
	}
	if withSKU > 0 && withSKU < len(raw.Variants) {
		warns = append(warns, fmt.Sprintf("%d of %d variants carry no sku; nearest-price matching cannot see them", len(raw.Variants)-withSKU, len(raw.Variants)))
	}
	return warns
}

func appendRateErrs(errs []string, field string, rates map[string]int) []string {
	for id, rate := range rates {
		if rate < 0 {
			errs = append(errs, fmt.Sprintf("%s[%s] must be >= 0", field, id))
		}
	}
	return errs
}

func appendOptionErrs(errs []string, field string, opts []Option) []string {
	seen := map[string]bool{}
	for i, o := range opts {
		if o.ID == "" || o.Title == "" {
			errs = append(errs, fmt.Sprintf("%s[%d] needs id and title", field, i))
			continue
		}
		if seen[o.ID] {
			errs = append(errs, fmt.Sprintf("%s[%d].id %q duplicated", field, i, o.ID))
		}
		seen[o.ID] = true
	}
	return errs
}
