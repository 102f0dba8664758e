package catalog

import (
	"strings"
	"testing"
)

func intp(v int) *int { return &v }

func validRaw() RawCatalog {
	return RawCatalog{
		Version: "v1",
		Bounds: &RawBounds{
			MinWidth:  intp(600),
			MaxWidth:  intp(4000),
			MinHeight: intp(500),
			MaxHeight: intp(3000),
		},
		Rules: &RawRules{
			BasePrice:   intp(9500),
			FabricRates: map[string]int{"semi": 900},
		},
		Variants: []Variant{{ID: "v1", Price: 11500, SKU: "115,00"}},
		Services: []Service{{ID: "svc", Title: "Install - Wired", Price: 14900, Power: PowerWired}},
		Options: &RawOptions{
			FabricTypes: []Option{{ID: "semi", Title: "Semi-transparent"}},
		},
	}
}

func TestValidateRawAccepts(t *testing.T) {
	if err := ValidateRaw(validRaw()); err != nil {
		t.Fatalf("valid catalog rejected: %v", err)
	}
}

func TestValidateRawMissingSections(t *testing.T) {
	err := ValidateRaw(RawCatalog{})
	if err == nil {
		t.Fatal("empty catalog must fail")
	}
	msg := err.Error()
	for _, want := range []string{"bounds are required", "rules are required"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestValidateRawBoundsOrdering(t *testing.T) {
	raw := validRaw()
	raw.Bounds.MaxWidth = intp(100)
	err := ValidateRaw(raw)
	if err == nil || !strings.Contains(err.Error(), "max_width must be >= min_width") {
		t.Fatalf("expected max_width error, got %v", err)
	}
}

func TestValidateRawNegativeRates(t *testing.T) {
	raw := validRaw()
	raw.Rules.FabricRates = map[string]int{"semi": -1}
	err := ValidateRaw(raw)
	if err == nil || !strings.Contains(err.Error(), "rules.fabric_rates[semi]") {
		t.Fatalf("expected fabric rate error, got %v", err)
	}
}

func TestValidateRawVariants(t *testing.T) {
	raw := validRaw()
	raw.Variants = []Variant{
		{ID: "", Price: 0},
		{ID: "dup", Price: 100},
		{ID: "dup", Price: 200},
		{ID: "badsku", Price: 100, SKU: "n/a"},
	}
	err := ValidateRaw(raw)
	if err == nil {
		t.Fatal("expected variant errors")
	}
	msg := err.Error()
	for _, want := range []string{
		"variants[0].id is required",
		"variants[0].price must be >= 1",
		"variants[2].id \"dup\" duplicated",
		"variants[3].sku \"n/a\" is not a decimal price",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestValidateRawServicePower(t *testing.T) {
	raw := validRaw()
	raw.Services = []Service{{ID: "svc", Title: "Install", Price: 1, Power: "nuclear"}}
	err := ValidateRaw(raw)
	if err == nil || !strings.Contains(err.Error(), "services[0].power") {
		t.Fatalf("expected power error, got %v", err)
	}
}

func TestValidateRawDuplicateOptionIDs(t *testing.T) {
	raw := validRaw()
	raw.Options.FabricTypes = []Option{
		{ID: "semi", Title: "Semi"},
		{ID: "semi", Title: "Semi again"},
	}
	err := ValidateRaw(raw)
	if err == nil || !strings.Contains(err.Error(), "options.fabric_types[1].id \"semi\" duplicated") {
		t.Fatalf("expected duplicate option error, got %v", err)
	}
}

func TestWarningsUntaggedService(t *testing.T) {
	raw := validRaw()
	raw.Services = append(raw.Services, Service{ID: "svc2", Title: "Install - Solar", Price: 1})
	warns := Warnings(raw)
	if len(warns) != 1 || !strings.Contains(warns[0], "svc2") {
		t.Fatalf("expected one untagged-service warning, got %v", warns)
	}
}

func TestWarningsMixedSKUs(t *testing.T) {
	raw := validRaw()
	raw.Variants = append(raw.Variants, Variant{ID: "v2", Price: 19900})
	warns := Warnings(raw)
	if len(warns) != 1 || !strings.Contains(warns[0], "1 of 2 variants") {
		t.Fatalf("expected mixed-sku warning, got %v", warns)
	}
}

func TestServiceForPowerPrefersTag(t *testing.T) {
	cat := &Catalog{Services: []Service{
		{ID: "untitled", Title: "Install - Solar"},
		{ID: "tagged", Title: "whatever", Power: PowerSolar},
	}}
	svc, ok := cat.ServiceForPower(PowerSolar)
	if !ok || svc.ID != "tagged" {
		t.Fatalf("tag must beat title scan, got %+v ok=%v", svc, ok)
	}
}

func TestServiceForPowerTitleFallbackCaseInsensitive(t *testing.T) {
	cat := &Catalog{Services: []Service{
		{ID: "w", Title: "montage WIRED"},
		{ID: "s", Title: "montage solar"},
	}}
	svc, ok := cat.ServiceForPower(PowerWired)
	if !ok || svc.ID != "w" {
		t.Fatalf("expected case-insensitive title match, got %+v", svc)
	}
}
