package application

import (
	projection "padel-projection/internal/projection/domain"
)

// RevenueSlice is one positive category of the revenue-share chart.
type RevenueSlice struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Share float64 `json:"share"`
}

var ancillaryLabels = map[projection.AncillaryCategory]string{
	projection.CategoryFoodAndBeverage: "F&B",
	projection.CategoryFitness:         "Fitness",
	projection.CategoryProShop:         "Pro Shop",
	projection.CategorySponsorship:     "Sponsorship",
}

// AncillaryLabel returns the display label of a category.
func AncillaryLabel(category projection.AncillaryCategory) string {
	return ancillaryLabels[category]
}

// RevenueSlices lists courts then ancillary streams, keeping only positive values.
// Share is relative to the sum of the kept slices.
func RevenueSlices(m projection.FinancialMetrics) []RevenueSlice {
	var slices []RevenueSlice
	for _, court := range m.Breakdown.Courts {
		if court.Revenue > 0 {
			slices = append(slices, RevenueSlice{Key: string(court.Court), Label: court.Name, Value: court.Revenue})
		}
	}
	ancillary := projection.AncillaryRevenue{
		FoodAndBeverage: m.Breakdown.FoodAndBeverage,
		Fitness:         m.Breakdown.Fitness,
		ProShop:         m.Breakdown.ProShop,
		Sponsorship:     m.Breakdown.Sponsorship,
	}
	for _, category := range projection.AllAncillaryCategories() {
		if v := ancillary.Get(category); v > 0 {
			slices = append(slices, RevenueSlice{Key: string(category), Label: AncillaryLabel(category), Value: v})
		}
	}

	var total float64
	for _, s := range slices {
		total += s.Value
	}
	for i := range slices {
		slices[i].Share = slices[i].Value / total
	}
	return slices
}

// ComparisonRow is one bar of the scenario comparison chart.
type ComparisonRow struct {
	Name           string  `json:"name"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	MonthlyEBITDA  float64 `json:"monthly_ebitda"`
	Current        bool    `json:"current"`
}

// CurrentScenarioName labels the live projection in comparisons.
const CurrentScenarioName = "Current Sim"

// ComparisonRows puts the current projection first, followed by the static scenarios.
func ComparisonRows(m projection.FinancialMetrics, scenarios []projection.ComparisonScenario) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(scenarios)+1)
	rows = append(rows, ComparisonRow{
		Name:           CurrentScenarioName,
		MonthlyRevenue: m.MonthlyRevenue,
		MonthlyEBITDA:  m.MonthlyEBITDA,
		Current:        true,
	})
	for _, sc := range scenarios {
		rows = append(rows, ComparisonRow{Name: sc.Name, MonthlyRevenue: sc.MonthlyRevenue, MonthlyEBITDA: sc.MonthlyEBITDA})
	}
	return rows
}

// SummaryRowKind classifies rows of the summary table.
type SummaryRowKind string

const (
	RowCourt     SummaryRowKind = "court"
	RowAncillary SummaryRowKind = "ancillary"
	RowSubtotal  SummaryRowKind = "subtotal"
	RowCost      SummaryRowKind = "cost"
	RowResult    SummaryRowKind = "result"
)

// SummaryRow is one line of the itemised simulation summary.
// Court rows also carry the inputs behind the amount.
type SummaryRow struct {
	Label      string         `json:"label"`
	Kind       SummaryRowKind `json:"kind"`
	Amount     float64        `json:"amount"`
	Units      int            `json:"units,omitempty"`
	UnitPrice  float64        `json:"unit_price,omitempty"`
	DailyHours float64        `json:"daily_hours,omitempty"`
}

// SummaryRows builds the simulation summary table.
func SummaryRows(m projection.FinancialMetrics, a projection.OperatingAssumptions, courts []projection.CourtType, cashOpex, totalCapex float64) []SummaryRow {
	rows := make([]SummaryRow, 0, len(courts)+11)
	mode := a.PricingMode()
	for _, court := range courts {
		rows = append(rows, SummaryRow{
			Label:      court.Name,
			Kind:       RowCourt,
			Amount:     m.Breakdown.Court(court.ID),
			Units:      court.Units,
			UnitPrice:  court.Price(mode),
			DailyHours: a.DailyHours(court.ID),
		})
	}
	rows = append(rows, SummaryRow{Label: "Court Revenue", Kind: RowSubtotal, Amount: m.Breakdown.CourtsTotal})

	b := m.Breakdown
	for _, item := range []struct {
		category projection.AncillaryCategory
		amount   float64
	}{
		{projection.CategoryFoodAndBeverage, b.FoodAndBeverage},
		{projection.CategoryFitness, b.Fitness},
		{projection.CategoryProShop, b.ProShop},
		{projection.CategorySponsorship, b.Sponsorship},
	} {
		rows = append(rows, SummaryRow{Label: AncillaryLabel(item.category), Kind: RowAncillary, Amount: item.amount})
	}
	rows = append(rows,
		SummaryRow{Label: "Non-Court Revenue", Kind: RowSubtotal, Amount: b.TotalAncillary},
		SummaryRow{Label: "Total Monthly Revenue", Kind: RowSubtotal, Amount: m.MonthlyRevenue},
		SummaryRow{Label: "Cash OPEX", Kind: RowCost, Amount: -cashOpex},
		SummaryRow{Label: "Monthly EBITDA", Kind: RowResult, Amount: m.MonthlyEBITDA},
		SummaryRow{Label: "Annual EBITDA", Kind: RowResult, Amount: m.AnnualEBITDA},
		SummaryRow{Label: "Total Investment (CAPEX)", Kind: RowCost, Amount: totalCapex},
	)
	return rows
}
