package projection

// LineItem is a labelled currency amount.
type LineItem struct {
	Item   string  `json:"item" yaml:"item"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// CapexSchedule lists one-time investment items.
type CapexSchedule struct {
	Items []LineItem
}

// Total sums all capex items.
func (s CapexSchedule) Total() float64 {
	return sumItems(s.Items)
}

// CostSchedule lists monthly operating cost items.
// ReportedTotal, when non-zero, is the authoritative monthly total; the
// itemised lines of the source document are rounded and may not add up to it.
type CostSchedule struct {
	Items            []LineItem
	DepreciationItem string
	ReportedTotal    float64
}

// ItemizedTotal sums the listed items.
func (s CostSchedule) ItemizedTotal() float64 {
	return sumItems(s.Items)
}

// TotalMonthlyOpex returns the reported total, or the itemised sum without one.
func (s CostSchedule) TotalMonthlyOpex() float64 {
	if s.ReportedTotal != 0 {
		return s.ReportedTotal
	}
	return s.ItemizedTotal()
}

// Unitemized is the part of the total not covered by listed items.
func (s CostSchedule) Unitemized() float64 {
	return s.TotalMonthlyOpex() - s.ItemizedTotal()
}

// DepreciationReserve returns the amount of the depreciation line.
func (s CostSchedule) DepreciationReserve() (float64, bool) {
	for _, item := range s.Items {
		if item.Item == s.DepreciationItem {
			return item.Amount, true
		}
	}
	return 0, false
}

// CashOpexMonthly is total opex minus the depreciation reserve.
func (s CostSchedule) CashOpexMonthly() float64 {
	reserve, _ := s.DepreciationReserve()
	return s.TotalMonthlyOpex() - reserve
}

func sumItems(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return total
}

// ComparisonScenario is a fixed reference point from the source financial study.
// It is not derived from the engine.
type ComparisonScenario struct {
	Name           string  `json:"name" yaml:"name"`
	MonthlyRevenue float64 `json:"monthly_revenue" yaml:"monthly_revenue"`
	MonthlyEBITDA  float64 `json:"monthly_ebitda" yaml:"monthly_ebitda"`
}
