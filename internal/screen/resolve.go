package screen

import (
	"github.com/shopspring/decimal"

	"github.com/screenlux/screenlux-backend/internal/catalog"
	"github.com/screenlux/screenlux-backend/internal/money"
)

// MatchKind reports how a variant was resolved from a raw cost.
type MatchKind int

const (
	MatchExact    MatchKind = iota // SKU price equals the target exactly
	MatchNearest                   // closest parseable SKU price
	MatchFallback                  // no parseable SKU at all; first variant returned
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchNearest:
		return "nearest"
	case MatchFallback:
		return "fallback"
	}
	return "unknown"
}

// Match is a resolved variant tagged with how it was found.
type Match struct {
	Variant catalog.Variant
	Kind    MatchKind
}

// ResolveStepped snaps a raw cost onto a fixed price ladder (strategy for
// catalogs whose variants carry only a flat price). The cost is rounded up to
// the rules' price step, clamped into [MinPrice, MaxPrice], and matched
// against variant prices exactly. Returns nil when no variant sits at the
// snapped price; callers must surface that as "no sellable SKU".
func ResolveStepped(rawCost int, variants []catalog.Variant, rules catalog.PricingRules) *catalog.Variant {
	target := rawCost
	if rules.PriceStep > 0 {
		target = (rawCost + rules.PriceStep - 1) / rules.PriceStep * rules.PriceStep
	}
	if rules.MinPrice > 0 && target < rules.MinPrice {
		target = rules.MinPrice
	}
	if rules.MaxPrice > 0 && target > rules.MaxPrice {
		target = rules.MaxPrice
	}
	for i := range variants {
		if variants[i].Price == target {
			return &variants[i]
		}
	}
	return nil
}

// ResolveBySKU resolves a raw cost against variants whose SKU strings encode
// a decimal price (e.g. "950,00"). An exact parsed match wins outright;
// otherwise the variant minimizing the absolute distance to the target is
// returned, first-encountered winning ties. When no SKU parses at all the
// first variant is returned tagged MatchFallback, so the degraded path stays
// observable. ok is false only for an empty variant list.
func ResolveBySKU(rawCost int, variants []catalog.Variant) (Match, bool) {
	if len(variants) == 0 {
		return Match{}, false
	}
	target := money.FromCents(rawCost)

	for _, v := range variants {
		if v.SKU == "" {
			continue
		}
		d, err := money.ParsePrice(v.SKU)
		if err != nil {
			continue
		}
		if d.Equal(target) {
			return Match{Variant: v, Kind: MatchExact}, true
		}
	}

	best := -1
	var bestDiff decimal.Decimal
	for i, v := range variants {
		if v.SKU == "" {
			continue
		}
		d, err := money.ParsePrice(v.SKU)
		if err != nil {
			continue
		}
		diff := d.Sub(target).Abs()
		if best == -1 || diff.LessThan(bestDiff) {
			best = i
			bestDiff = diff
		}
	}
	if best >= 0 {
		return Match{Variant: variants[best], Kind: MatchNearest}, true
	}

	return Match{Variant: variants[0], Kind: MatchFallback}, true
}
