package money

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"950,00", "950"},
		{"950.00", "950"},
		{" 115,50 ", "115.5"},
		{"0,99", "0.99"},
	}
	for _, c := range cases {
		d, err := ParsePrice(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if d.String() != c.want {
			t.Errorf("%q: expected %s, got %s", c.in, c.want, d.String())
		}
	}
}

func TestParsePriceRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "n/a", "call-for-price", "12,34,56"} {
		if _, err := ParsePrice(in); err == nil {
			t.Errorf("%q must not parse", in)
		}
	}
}

func TestFromCents(t *testing.T) {
	if got := FromCents(95000).String(); got != "950" {
		t.Fatalf("expected 950, got %s", got)
	}
	if got := FromCents(12345).String(); got != "123.45" {
		t.Fatalf("expected 123.45, got %s", got)
	}
}

func TestFormatCents(t *testing.T) {
	cases := map[int]string{
		95000: "950,00",
		12800: "128,00",
		99:    "0,99",
		0:     "0,00",
	}
	for cents, want := range cases {
		if got := FormatCents(cents); got != want {
			t.Errorf("%d: expected %q, got %q", cents, want, got)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	d, err := ParsePrice(FormatCents(19900))
	if err != nil {
		t.Fatal(err)
	}
	if !d.Equal(FromCents(19900)) {
		t.Fatalf("round trip drifted: %s", d)
	}
}
