package screen

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/screenlux/screenlux-backend/internal/catalog"
	"github.com/screenlux/screenlux-backend/internal/money"
)

// LineItem is one entry of a cart submission. Properties, when present, are
// a flat string-to-string map meant for order-management display.
type LineItem struct {
	VariantID  string            `json:"id"`
	Quantity   int               `json:"quantity"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Payload is the finished cart submission for the external transport.
type Payload struct {
	Items []LineItem `json:"items"`
}

var (
	ErrInvalidScreen    = errors.New("screen dimensions not valid")
	ErrNoVariant        = errors.New("no sellable variant at computed price")
	ErrApproximateMatch = errors.New("variant resolved by fallback, price approximate")
	ErrNoService        = errors.New("no matching installation service")
	ErrUnknownBracket   = errors.New("selected bracket not in catalog")
	ErrUnknownAddon     = errors.New("accessory not in catalog")
)

// BuildPayload assembles the cart submission for a session. Item order is a
// contract: screens in session order, then the installation service, then
// brackets, then accessories (sorted by id).
//
// Screens that fail validation or resolution are skipped, not fatal; every
// skip or degraded resolution is reported in issues while the rest of the
// payload still builds. The function is pure: callers own logging.
func BuildPayload(s *Session, cat *catalog.Catalog) (Payload, []error) {
	var out Payload
	var issues []error

	anyWired := false
	for i := range s.Screens {
		sc := s.Screens[i]
		if ok, _ := ValidateDimensions(sc.WidthMM, sc.HeightMM, cat.Bounds); !ok {
			issues = append(issues, fmt.Errorf("screen %d: %w", i+1, ErrInvalidScreen))
			continue
		}
		if sc.Motor != MotorSolar {
			anyWired = true
		}

		cost := CalculateCost(sc, cat.Rules, cat.Bounds)
		item, err := resolveScreenItem(i, sc, cost, cat)
		if err != nil {
			issues = append(issues, err)
			if !errors.Is(err, ErrApproximateMatch) {
				continue
			}
		}
		out.Items = append(out.Items, item)
	}

	if s.Install == InstallProfessional {
		power := catalog.PowerSolar
		if anyWired {
			power = catalog.PowerWired
		}
		if svc, ok := cat.ServiceForPower(power); ok {
			out.Items = append(out.Items, LineItem{VariantID: svc.ID, Quantity: 1})
		} else {
			// documented quirk: absence produces no install line item
			issues = append(issues, fmt.Errorf("install %q: %w", power, ErrNoService))
		}
	}

	if s.Install == InstallSelf && s.BracketID != "" {
		if br, ok := cat.BracketByID(s.BracketID); ok {
			out.Items = append(out.Items, LineItem{VariantID: br.ID, Quantity: len(s.Screens)})
		} else {
			issues = append(issues, fmt.Errorf("bracket %q: %w", s.BracketID, ErrUnknownBracket))
		}
	}

	// deterministic accessory order
	ids := make([]string, 0, len(s.Accessories))
	for id := range s.Accessories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		qty := s.Accessories[id]
		if qty <= 0 {
			continue
		}
		if _, ok := cat.AddonByID(id); !ok {
			issues = append(issues, fmt.Errorf("accessory %q: %w", id, ErrUnknownAddon))
			continue
		}
		out.Items = append(out.Items, LineItem{VariantID: id, Quantity: qty})
	}

	return out, issues
}

// resolveScreenItem picks a variant for one screen and builds its line item.
// SKU-encoded catalogs resolve by nearest price; plain price ladders snap to
// the configured step and may fail to resolve.
func resolveScreenItem(i int, sc Config, cost int, cat *catalog.Catalog) (LineItem, error) {
	var variant catalog.Variant
	var err error

	if hasSKUs(cat.Variants) {
		m, ok := ResolveBySKU(cost, cat.Variants)
		if !ok {
			return LineItem{}, fmt.Errorf("screen %d: %w", i+1, ErrNoVariant)
		}
		variant = m.Variant
		if m.Kind == MatchFallback {
			err = fmt.Errorf("screen %d: %w", i+1, ErrApproximateMatch)
		}
	} else {
		v := ResolveStepped(cost, cat.Variants, cat.Rules)
		if v == nil {
			return LineItem{}, fmt.Errorf("screen %d: %w", i+1, ErrNoVariant)
		}
		variant = *v
	}

	return LineItem{
		VariantID:  variant.ID,
		Quantity:   1,
		Properties: screenProperties(i, sc, cost, cat),
	}, err
}

// screenProperties renders the shopper-facing metadata for one screen item.
// Option ids are resolved to display titles; unresolvable options are left
// out rather than leaking raw ids.
func screenProperties(i int, sc Config, cost int, cat *catalog.Catalog) map[string]string {
	props := map[string]string{
		"_screen_group": strconv.Itoa(i + 1),
		"Reference":     "Screen " + strconv.Itoa(i+1),
		"Dimensions":    fmt.Sprintf("%dmm x %dmm", sc.WidthMM, sc.HeightMM),
		"Price":         money.FormatCents(cost),
	}
	addTitle(props, "Frame color", cat.Options.FrameColors, sc.FrameColor)
	addTitle(props, "Fabric color", cat.Options.FabricColors, sc.FabricColor)
	addTitle(props, "Fabric type", cat.Options.FabricTypes, sc.FabricType)
	addTitle(props, "Cassette", cat.Options.CassetteSizes, sc.CassetteSize)
	addTitle(props, "Motor", cat.Options.Motors, sc.Motor)
	return props
}

func addTitle(props map[string]string, key string, opts []catalog.Option, id string) {
	if id == "" {
		return
	}
	if title, ok := catalog.TitleOf(opts, id); ok {
		props[key] = title
	}
}

func hasSKUs(variants []catalog.Variant) bool {
	for _, v := range variants {
		if v.SKU != "" {
			return true
		}
	}
	return false
}
