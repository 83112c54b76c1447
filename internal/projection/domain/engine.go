package projection

const (
	// DaysPerMonth is the fixed calendar-day count used for every month.
	DaysPerMonth = 30
	// MonthsPerYear extrapolates one steady-state month to a year.
	MonthsPerYear = 12
)

// CourtMonthlyRevenue returns units × price(mode) × hours × DaysPerMonth.
func CourtMonthlyRevenue(court CourtType, mode PricingMode, dailyHours float64) float64 {
	daily := float64(court.Units) * court.Price(mode) * dailyHours
	return daily * DaysPerMonth
}

// Compute derives financial metrics from the assumptions.
// It never fails and never mutates its arguments: hours outside the UI range
// and negative amounts are taken as given.
func Compute(assumptions OperatingAssumptions, courts []CourtType, cashOpexMonthly, totalCapex float64) FinancialMetrics {
	mode := assumptions.PricingMode()

	breakdown := RevenueBreakdown{Courts: make([]CourtRevenue, 0, len(courts))}
	for _, court := range courts {
		revenue := CourtMonthlyRevenue(court, mode, assumptions.DailyHours(court.ID))
		breakdown.Courts = append(breakdown.Courts, CourtRevenue{Court: court.ID, Name: court.Name, Revenue: revenue})
		breakdown.CourtsTotal += revenue
	}

	ancillary := assumptions.Ancillary()
	breakdown.FoodAndBeverage = ancillary.FoodAndBeverage
	breakdown.Fitness = ancillary.Fitness
	breakdown.ProShop = ancillary.ProShop
	breakdown.Sponsorship = ancillary.Sponsorship
	breakdown.TotalAncillary = ancillary.Total()

	monthlyRevenue := breakdown.CourtsTotal + breakdown.TotalAncillary
	monthlyEBITDA := monthlyRevenue - cashOpexMonthly
	annualEBITDA := monthlyEBITDA * MonthsPerYear

	payback := NeverPaysBack()
	if annualEBITDA > 0 {
		payback = FiniteYears(totalCapex / annualEBITDA)
	}

	return FinancialMetrics{
		MonthlyRevenue: monthlyRevenue,
		MonthlyEBITDA:  monthlyEBITDA,
		AnnualEBITDA:   annualEBITDA,
		Payback:        payback,
		Breakdown:      breakdown,
	}
}
