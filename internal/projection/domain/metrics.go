package projection

// CourtRevenue is one court type's monthly revenue.
type CourtRevenue struct {
	Court   CourtID `json:"court"`
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// RevenueBreakdown splits monthly revenue by source.
type RevenueBreakdown struct {
	CourtsTotal     float64        `json:"courts_total"`
	Courts          []CourtRevenue `json:"courts"`
	FoodAndBeverage float64        `json:"fb"`
	Fitness         float64        `json:"fitness"`
	ProShop         float64        `json:"pro_shop"`
	Sponsorship     float64        `json:"sponsorship"`
	TotalAncillary  float64        `json:"total_ancillary"`
}

// Court returns the monthly revenue of one court type, zero when absent.
func (b RevenueBreakdown) Court(id CourtID) float64 {
	for _, c := range b.Courts {
		if c.Court == id {
			return c.Revenue
		}
	}
	return 0
}

// FinancialMetrics is the full projection result. It is replaced, never mutated.
type FinancialMetrics struct {
	MonthlyRevenue float64          `json:"monthly_revenue"`
	MonthlyEBITDA  float64          `json:"monthly_ebitda"`
	AnnualEBITDA   float64          `json:"annual_ebitda"`
	Payback        Payback          `json:"payback"`
	Breakdown      RevenueBreakdown `json:"revenue_breakdown"`
}

// EBITDAMargin returns monthly EBITDA over revenue; false when revenue is zero.
func (m FinancialMetrics) EBITDAMargin() (float64, bool) {
	if m.MonthlyRevenue == 0 {
		return 0, false
	}
	return m.MonthlyEBITDA / m.MonthlyRevenue, true
}
