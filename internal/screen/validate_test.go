package screen

import (
	"testing"

	"github.com/screenlux/screenlux-backend/internal/catalog"
)

var testBounds = catalog.Bounds{
	MinWidth:  600,
	MaxWidth:  4000,
	MinHeight: 500,
	MaxHeight: 3000,
}

func TestValidateDimensionsPresence(t *testing.T) {
	if ok, msg := ValidateDimensions(0, 1000, testBounds); ok || msg == "" {
		t.Fatalf("zero width must fail with a message; got ok=%v msg=%q", ok, msg)
	}
	if ok, _ := ValidateDimensions(1000, 0, testBounds); ok {
		t.Fatalf("zero height must fail")
	}
	if ok, _ := ValidateDimensions(-5, -5, testBounds); ok {
		t.Fatalf("negative dimensions must fail")
	}
}

func TestValidateDimensionsInclusiveBounds(t *testing.T) {
	cases := []struct {
		w, h  int
		valid bool
	}{
		{600, 500, true},   // both at min
		{4000, 3000, true}, // both at max
		{599, 500, false},
		{600, 499, false},
		{4001, 3000, false},
		{4000, 3001, false},
		{1500, 1000, true},
	}
	for _, c := range cases {
		ok, msg := ValidateDimensions(c.w, c.h, testBounds)
		if ok != c.valid {
			t.Errorf("%dx%d: expected valid=%v, got %v (%s)", c.w, c.h, c.valid, ok, msg)
		}
		if !ok && msg == "" {
			t.Errorf("%dx%d: invalid result must carry a message", c.w, c.h)
		}
		if ok && msg != "" {
			t.Errorf("%dx%d: valid result must not carry a message, got %q", c.w, c.h, msg)
		}
	}
}

func TestValidateDimensionsFirstFailureWins(t *testing.T) {
	// both dimensions violated; width check runs first
	_, msg := ValidateDimensions(100, 100, testBounds)
	want := "width must be at least 600mm"
	if msg != want {
		t.Fatalf("expected %q, got %q", want, msg)
	}
}

func TestRevalidateUpdatesFlag(t *testing.T) {
	c := Config{WidthMM: 1500, HeightMM: 1000}
	if !c.Revalidate(testBounds) || !c.Valid {
		t.Fatalf("expected valid after revalidate")
	}
	c.WidthMM = 50
	if c.Revalidate(testBounds) || c.Valid {
		t.Fatalf("expected invalid after shrinking width")
	}
}
