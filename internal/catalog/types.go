// types.go
package catalog

import "strings"

// RawCatalog is the catalog document loaded from YAML; mirrors the file schema.
// Pointer fields distinguish "absent" from zero so store overrides can merge.
type RawCatalog struct {
	Version  string     `yaml:"version"`
	Currency string     `yaml:"currency,omitempty"`
	Bounds   *RawBounds `yaml:"bounds,omitempty"`
	Rules    *RawRules  `yaml:"rules,omitempty"`
	Variants []Variant  `yaml:"variants,omitempty"`
	Services []Service  `yaml:"services,omitempty"`
	Brackets []Bracket  `yaml:"brackets,omitempty"`
	Addons   []Addon    `yaml:"addons,omitempty"`
	Options  *RawOptions `yaml:"options,omitempty"`
	Notes    string     `yaml:"notes,omitempty"`
}

type RawBounds struct {
	MinWidth  *int `yaml:"min_width"`
	MaxWidth  *int `yaml:"max_width"`
	MinHeight *int `yaml:"min_height"`
	MaxHeight *int `yaml:"max_height"`
}

type RawRules struct {
	BasePrice *int `yaml:"base_price"`
	// per-option rates, keyed by option id; values in minor units
	FabricRates         map[string]int `yaml:"fabric_rates,omitempty"`          // per square meter
	CassetteWidthRates  map[string]int `yaml:"cassette_width_rates,omitempty"`  // per meter of width
	CassetteHeightRates map[string]int `yaml:"cassette_height_rates,omitempty"` // per meter of height
	MotorSurcharges     map[string]int `yaml:"motor_surcharges,omitempty"`      // flat
	// stepped (strategy A) resolution parameters
	PriceStep *int `yaml:"price_step,omitempty"`
	MinPrice  *int `yaml:"min_price,omitempty"`
	MaxPrice  *int `yaml:"max_price,omitempty"`
}

type RawOptions struct {
	FrameColors   []Option `yaml:"frame_colors,omitempty"`
	FabricColors  []Option `yaml:"fabric_colors,omitempty"`
	FabricTypes   []Option `yaml:"fabric_types,omitempty"`
	CassetteSizes []Option `yaml:"cassette_sizes,omitempty"`
	Motors        []Option `yaml:"motors,omitempty"`
}

// Variant is a sellable SKU the computed cost resolves to.
type Variant struct {
	ID             string `yaml:"id"`
	Price          int    `yaml:"price"` // minor units
	CompareAtPrice int    `yaml:"compare_at_price,omitempty"`
	SKU            string `yaml:"sku,omitempty"` // may encode a decimal price, e.g. "950,00"
}

// ServicePower tags an installation service with the drive type it covers.
type ServicePower string

const (
	PowerWired ServicePower = "wired"
	PowerSolar ServicePower = "solar"
)

// Service is an installation service product.
type Service struct {
	ID          string       `yaml:"id"`
	Title       string       `yaml:"title"`
	Price       int          `yaml:"price"`
	Power       ServicePower `yaml:"power,omitempty"` // falls back to title matching when empty
	Description string       `yaml:"description,omitempty"`
	Image       string       `yaml:"image,omitempty"`
}

// Bracket is self-install mounting hardware, priced per screen.
type Bracket struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Price       int    `yaml:"price"`
	Description string `yaml:"description,omitempty"`
	Image       string `yaml:"image,omitempty"`
}

// Addon is an optional accessory product.
type Addon struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Price       int    `yaml:"price"`
	Description string `yaml:"description,omitempty"`
	Image       string `yaml:"image,omitempty"`
}

// Option is one entry of a descriptive option catalog (id + display title).
type Option struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// Bounds are the sellable dimension limits in millimeters, inclusive.
type Bounds struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
}

// PricingRules parameterize the cost formula and stepped resolution.
type PricingRules struct {
	BasePrice           int
	FabricRates         map[string]int
	CassetteWidthRates  map[string]int
	CassetteHeightRates map[string]int
	MotorSurcharges     map[string]int
	PriceStep           int
	MinPrice            int
	MaxPrice            int
}

// Options groups the descriptive option catalogs.
type Options struct {
	FrameColors   []Option
	FabricColors  []Option
	FabricTypes   []Option
	CassetteSizes []Option
	Motors        []Option
}

// Catalog is the normalized, merged catalog the engine consumes.
type Catalog struct {
	Version  string
	Currency string
	Bounds   Bounds
	Rules    PricingRules
	Variants []Variant
	Services []Service
	Brackets []Bracket
	Addons   []Addon
	Options  Options
}

// TitleOf looks up a display title by option id; ok reports whether it exists.
func TitleOf(opts []Option, id string) (string, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o.Title, true
		}
	}
	return "", false
}

// ServiceForPower returns the first installation service matching the power
// tag. Entries without a tag fall back to a title substring scan ("Wired",
// "Solar"), kept for loosely-curated catalogs.
func (c *Catalog) ServiceForPower(p ServicePower) (Service, bool) {
	for _, s := range c.Services {
		if s.Power == p {
			return s, true
		}
	}
	want := "Wired"
	if p == PowerSolar {
		want = "Solar"
	}
	for _, s := range c.Services {
		if s.Power == "" && containsFold(s.Title, want) {
			return s, true
		}
	}
	return Service{}, false
}

// BracketByID returns the bracket with the given id.
func (c *Catalog) BracketByID(id string) (Bracket, bool) {
	for _, b := range c.Brackets {
		if b.ID == id {
			return b, true
		}
	}
	return Bracket{}, false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// AddonByID returns the accessory with the given id.
func (c *Catalog) AddonByID(id string) (Addon, bool) {
	for _, a := range c.Addons {
		if a.ID == id {
			return a, true
		}
	}
	return Addon{}, false
}
