package reference

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	projection "padel-projection/internal/projection/domain"
)

type courtOverlay struct {
	Name          string   `yaml:"name"`
	Units         *int     `yaml:"units"`
	PriceNormal   *float64 `yaml:"price_normal"`
	PriceDiscount *float64 `yaml:"price_discount"`
}

type ancillaryOverlay struct {
	FoodAndBeverage *float64 `yaml:"fb"`
	Fitness         *float64 `yaml:"fitness"`
	ProShop         *float64 `yaml:"pro_shop"`
	Sponsorship     *float64 `yaml:"sponsorship"`
}

type opexOverlay struct {
	Items            []projection.LineItem `yaml:"items"`
	DepreciationItem string                `yaml:"depreciation_item"`
	ReportedTotal    *float64              `yaml:"reported_total"`
}

type capexOverlay struct {
	Items []projection.LineItem `yaml:"items"`
}

// Overlay is the YAML document that adjusts the built-in tables.
// Absent fields keep their built-in value; non-empty lists replace the built-in list.
type Overlay struct {
	Courts            map[string]courtOverlay         `yaml:"courts"`
	Opex              opexOverlay                     `yaml:"opex"`
	Capex             capexOverlay                    `yaml:"capex"`
	Ancillary         ancillaryOverlay                `yaml:"ancillary_defaults"`
	DefaultDailyHours *float64                        `yaml:"default_daily_hours"`
	Scenarios         []projection.ComparisonScenario `yaml:"scenarios"`
}

// Load builds a store from the built-in tables overlaid with the YAML file at path.
// An empty path returns the built-in store.
func Load(path string) (*Store, error) {
	if path == "" {
		return New(DefaultTables())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reference: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a store from a YAML overlay document.
func Parse(data []byte) (*Store, error) {
	var overlay Overlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("reference: parse yaml: %w", err)
	}
	tables, err := overlay.Apply(DefaultTables())
	if err != nil {
		return nil, err
	}
	return New(tables)
}

// Apply merges the overlay into base.
func (o Overlay) Apply(base Tables) (Tables, error) {
	out := cloneTables(base)
	for key, court := range o.Courts {
		id, err := projection.ParseCourtID(key)
		if err != nil {
			return Tables{}, fmt.Errorf("%w: %q", ErrUnknownCourt, key)
		}
		idx := -1
		for i := range out.Courts {
			if out.Courts[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return Tables{}, fmt.Errorf("%w: %q", ErrUnknownCourt, key)
		}
		mergeCourt(&out.Courts[idx], court)
	}

	if len(o.Opex.Items) > 0 {
		out.Opex.Items = append([]projection.LineItem(nil), o.Opex.Items...)
		// The built-in reported total belongs to the built-in items.
		out.Opex.ReportedTotal = 0
	}
	if o.Opex.DepreciationItem != "" {
		out.Opex.DepreciationItem = o.Opex.DepreciationItem
	}
	if o.Opex.ReportedTotal != nil {
		out.Opex.ReportedTotal = *o.Opex.ReportedTotal
	}
	if len(o.Capex.Items) > 0 {
		out.Capex.Items = append([]projection.LineItem(nil), o.Capex.Items...)
	}

	setFloat(&out.Ancillary.FoodAndBeverage, o.Ancillary.FoodAndBeverage)
	setFloat(&out.Ancillary.Fitness, o.Ancillary.Fitness)
	setFloat(&out.Ancillary.ProShop, o.Ancillary.ProShop)
	setFloat(&out.Ancillary.Sponsorship, o.Ancillary.Sponsorship)
	setFloat(&out.DefaultDailyHours, o.DefaultDailyHours)

	if len(o.Scenarios) > 0 {
		out.Scenarios = append([]projection.ComparisonScenario(nil), o.Scenarios...)
	}
	return out, nil
}

func mergeCourt(dst *projection.CourtType, src courtOverlay) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Units != nil {
		dst.Units = *src.Units
	}
	setFloat(&dst.PriceNormal, src.PriceNormal)
	setFloat(&dst.PriceDiscount, src.PriceDiscount)
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
