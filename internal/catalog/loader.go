package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for the default catalog and per-store override files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "catalog.yaml")
}
func (p Paths) StorePath(store string) string {
	return filepath.Join(p.BaseDir, "stores", store+".yaml")
}

// Loader reads YAML catalogs and merges default → store override.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]*Catalog // key: store id, or "$default" for no override
}

// NewLoader creates a catalog loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]*Catalog),
	}
}

// Load returns the merged, validated catalog for a store. An empty store id
// loads the default catalog only. Results are cached until Invalidate.
func (l *Loader) Load(store string) (*Catalog, error) {
	key := store
	if key == "" {
		key = "$default"
	}

	l.mu.RLock()
	if cat, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cat, nil
	}
	l.mu.RUnlock()

	defRaw, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return nil, fmt.Errorf("read default catalog: %w", err)
	}
	merged := defRaw
	if store != "" {
		storeRaw, err := readYAML(l.paths.StorePath(store))
		if err != nil {
			return nil, fmt.Errorf("read store catalog %q: %w", store, err)
		}
		merged = mergeRaw(merged, storeRaw)
	}

	if err := ValidateRaw(merged); err != nil {
		return nil, err
	}
	cat := merged.Normalize()

	l.mu.Lock()
	l.cache[key] = cat
	l.mu.Unlock()

	return cat, nil
}

// Check merges the catalog for a store without caching and reports non-fatal
// issues worth logging (untagged services, sku gaps).
func (l *Loader) Check(store string) ([]string, error) {
	merged, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return nil, fmt.Errorf("read default catalog: %w", err)
	}
	if store != "" {
		storeRaw, err := readYAML(l.paths.StorePath(store))
		if err != nil {
			return nil, fmt.Errorf("read store catalog %q: %w", store, err)
		}
		merged = mergeRaw(merged, storeRaw)
	}
	return Warnings(merged), nil
}

// Invalidate clears the loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]*Catalog)
}

// readYAML loads a YAML file into RawCatalog. Missing files return zero cfg, no error.
func readYAML(path string) (RawCatalog, error) {
	var raw RawCatalog
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawCatalog{}, nil
		}
		return RawCatalog{}, err
	}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return RawCatalog{}, err
	}
	return raw, nil
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where non-zero/non-nil.
// Product lists (variants, services, brackets, addons, option sets) replace
// wholesale when provided; partial list merges would be ambiguous.
func mergeRaw(a, b RawCatalog) RawCatalog {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Currency != "" {
		out.Currency = b.Currency
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// bounds
	switch {
	case out.Bounds == nil && b.Bounds != nil:
		c := *b.Bounds
		out.Bounds = &c
	case out.Bounds != nil && b.Bounds != nil:
		if b.Bounds.MinWidth != nil {
			out.Bounds.MinWidth = b.Bounds.MinWidth
		}
		if b.Bounds.MaxWidth != nil {
			out.Bounds.MaxWidth = b.Bounds.MaxWidth
		}
		if b.Bounds.MinHeight != nil {
			out.Bounds.MinHeight = b.Bounds.MinHeight
		}
		if b.Bounds.MaxHeight != nil {
			out.Bounds.MaxHeight = b.Bounds.MaxHeight
		}
	}

	// rules
	switch {
	case out.Rules == nil && b.Rules != nil:
		c := *b.Rules
		out.Rules = &c
	case out.Rules != nil && b.Rules != nil:
		if b.Rules.BasePrice != nil {
			out.Rules.BasePrice = b.Rules.BasePrice
		}
		if len(b.Rules.FabricRates) > 0 {
			out.Rules.FabricRates = copyRates(b.Rules.FabricRates)
		}
		if len(b.Rules.CassetteWidthRates) > 0 {
			out.Rules.CassetteWidthRates = copyRates(b.Rules.CassetteWidthRates)
		}
		if len(b.Rules.CassetteHeightRates) > 0 {
			out.Rules.CassetteHeightRates = copyRates(b.Rules.CassetteHeightRates)
		}
		if len(b.Rules.MotorSurcharges) > 0 {
			out.Rules.MotorSurcharges = copyRates(b.Rules.MotorSurcharges)
		}
		if b.Rules.PriceStep != nil {
			out.Rules.PriceStep = b.Rules.PriceStep
		}
		if b.Rules.MinPrice != nil {
			out.Rules.MinPrice = b.Rules.MinPrice
		}
		if b.Rules.MaxPrice != nil {
			out.Rules.MaxPrice = b.Rules.MaxPrice
		}
	}

	// product lists: replace if provided
	if len(b.Variants) > 0 {
		out.Variants = append([]Variant(nil), b.Variants...)
	}
	if len(b.Services) > 0 {
		out.Services = append([]Service(nil), b.Services...)
	}
	if len(b.Brackets) > 0 {
		out.Brackets = append([]Bracket(nil), b.Brackets...)
	}
	if len(b.Addons) > 0 {
		out.Addons = append([]Addon(nil), b.Addons...)
	}

	// options
	switch {
	case out.Options == nil && b.Options != nil:
		c := *b.Options
		out.Options = &c
	case out.Options != nil && b.Options != nil:
		if len(b.Options.FrameColors) > 0 {
			out.Options.FrameColors = append([]Option(nil), b.Options.FrameColors...)
		}
		if len(b.Options.FabricColors) > 0 {
			out.Options.FabricColors = append([]Option(nil), b.Options.FabricColors...)
		}
		if len(b.Options.FabricTypes) > 0 {
			out.Options.FabricTypes = append([]Option(nil), b.Options.FabricTypes...)
		}
		if len(b.Options.CassetteSizes) > 0 {
			out.Options.CassetteSizes = append([]Option(nil), b.Options.CassetteSizes...)
		}
		if len(b.Options.Motors) > 0 {
			out.Options.Motors = append([]Option(nil), b.Options.Motors...)
		}
	}

	return out
}

func copyRates(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Normalize converts a merged RawCatalog into the value form the engine uses.
// Nil pointers become zero values; callers should ValidateRaw first.
func (r RawCatalog) Normalize() *Catalog {
	cat := &Catalog{
		Version:  r.Version,
		Currency: r.Currency,
		Variants: append([]Variant(nil), r.Variants...),
		Services: append([]Service(nil), r.Services...),
		Brackets: append([]Bracket(nil), r.Brackets...),
		Addons:   append([]Addon(nil), r.Addons...),
	}
	if r.Bounds != nil {
		cat.Bounds = Bounds{
			MinWidth:  deref(r.Bounds.MinWidth),
			MaxWidth:  deref(r.Bounds.MaxWidth),
			MinHeight: deref(r.Bounds.MinHeight),
			MaxHeight: deref(r.Bounds.MaxHeight),
		}
	}
	if r.Rules != nil {
		cat.Rules = PricingRules{
			BasePrice:           deref(r.Rules.BasePrice),
			FabricRates:         copyRates(r.Rules.FabricRates),
			CassetteWidthRates:  copyRates(r.Rules.CassetteWidthRates),
			CassetteHeightRates: copyRates(r.Rules.CassetteHeightRates),
			MotorSurcharges:     copyRates(r.Rules.MotorSurcharges),
			PriceStep:           deref(r.Rules.PriceStep),
			MinPrice:            deref(r.Rules.MinPrice),
			MaxPrice:            deref(r.Rules.MaxPrice),
		}
	}
	if r.Options != nil {
		cat.Options = Options{
			FrameColors:   append([]Option(nil), r.Options.FrameColors...),
			FabricColors:  append([]Option(nil), r.Options.FabricColors...),
			FabricTypes:   append([]Option(nil), r.Options.FabricTypes...),
			CassetteSizes: append([]Option(nil), r.Options.CassetteSizes...),
			Motors:        append([]Option(nil), r.Options.Motors...),
		}
	}
	return cat
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
