package reference

import (
	"fmt"

	projection "padel-projection/internal/projection/domain"
)

// Tables is the raw reference data a Store is built from.
type Tables struct {
	Courts            []projection.CourtType
	Opex              projection.CostSchedule
	Capex             projection.CapexSchedule
	Ancillary         projection.AncillaryRevenue
	DefaultDailyHours float64
	Scenarios         []projection.ComparisonScenario
}

// Store exposes immutable reference tables and the constants derived from them.
type Store struct {
	tables     Tables
	cashOpex   float64
	totalCapex float64
}

// New validates tables and derives cash opex and total capex once.
func New(tables Tables) (*Store, error) {
	if len(tables.Courts) == 0 {
		return nil, ErrNoCourts
	}
	seen := make(map[projection.CourtID]struct{}, len(tables.Courts))
	for _, court := range tables.Courts {
		if _, err := projection.ParseCourtID(string(court.ID)); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCourt, court.ID)
		}
		if _, dup := seen[court.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCourt, court.ID)
		}
		seen[court.ID] = struct{}{}
		if court.Units < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativeUnits, court.ID)
		}
		if court.PriceDiscount > court.PriceNormal {
			return nil, fmt.Errorf("%w: %s", ErrDiscountAboveNormal, court.ID)
		}
	}
	if _, ok := tables.Opex.DepreciationReserve(); !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingDepreciation, tables.Opex.DepreciationItem)
	}

	return &Store{
		tables:     cloneTables(tables),
		cashOpex:   tables.Opex.CashOpexMonthly(),
		totalCapex: tables.Capex.Total(),
	}, nil
}

// Default returns the store built from DefaultTables.
func Default() *Store {
	store, err := New(DefaultTables())
	if err != nil {
		panic(err)
	}
	return store
}

// ListCourtTypes returns the court types in display order.
func (s *Store) ListCourtTypes() []projection.CourtType {
	return append([]projection.CourtType(nil), s.tables.Courts...)
}

// CourtType looks up one court type.
func (s *Store) CourtType(id projection.CourtID) (projection.CourtType, bool) {
	for _, court := range s.tables.Courts {
		if court.ID == id {
			return court, true
		}
	}
	return projection.CourtType{}, false
}

// CashOpexMonthly is total monthly opex minus the depreciation reserve.
func (s *Store) CashOpexMonthly() float64 { return s.cashOpex }

// TotalCapex is the sum of the capex schedule.
func (s *Store) TotalCapex() float64 { return s.totalCapex }

// DefaultAncillaryRevenue seeds a new session's ancillary inputs.
func (s *Store) DefaultAncillaryRevenue() projection.AncillaryRevenue {
	return s.tables.Ancillary
}

// DefaultAssumptions seeds a new session: default hours on every court,
// normal pricing and default ancillary revenue.
func (s *Store) DefaultAssumptions() projection.OperatingAssumptions {
	hours := make(map[projection.CourtID]float64, len(s.tables.Courts))
	for _, court := range s.tables.Courts {
		hours[court.ID] = s.tables.DefaultDailyHours
	}
	return projection.NewOperatingAssumptions(hours, projection.PricingNormal, s.tables.Ancillary)
}

// OpexSchedule returns the monthly operating cost schedule.
func (s *Store) OpexSchedule() projection.CostSchedule {
	return cloneTables(s.tables).Opex
}

// CapexSchedule returns the capital expenditure schedule.
func (s *Store) CapexSchedule() projection.CapexSchedule {
	return cloneTables(s.tables).Capex
}

// ComparisonScenarios returns the static reference scenarios.
func (s *Store) ComparisonScenarios() []projection.ComparisonScenario {
	return append([]projection.ComparisonScenario(nil), s.tables.Scenarios...)
}

func cloneTables(t Tables) Tables {
	t.Courts = append([]projection.CourtType(nil), t.Courts...)
	t.Opex.Items = append([]projection.LineItem(nil), t.Opex.Items...)
	t.Capex.Items = append([]projection.LineItem(nil), t.Capex.Items...)
	t.Scenarios = append([]projection.ComparisonScenario(nil), t.Scenarios...)
	return t
}
