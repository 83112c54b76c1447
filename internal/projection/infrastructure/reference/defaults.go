package reference

import projection "padel-projection/internal/projection/domain"

const (
	depreciationItem = "Depreciation Reserve"

	// reportedMonthlyOpex is the total stated by the financial summary; its
	// itemised lines are rounded to the nearest 100k.
	reportedMonthlyOpex = 437_708_125

	defaultDailyHours = 8
)

// DefaultTables returns the built-in reference tables.
func DefaultTables() Tables {
	return Tables{
		Courts: []projection.CourtType{
			{ID: projection.CourtSide, Name: "Side Courts", Units: 6, PriceNormal: 382_500, PriceDiscount: 292_500},
			{ID: projection.CourtCenter, Name: "Center Courts", Units: 2, PriceNormal: 472_500, PriceDiscount: 382_500},
			{ID: projection.CourtStadium, Name: "Stadium Court", Units: 1, PriceNormal: 675_000, PriceDiscount: 585_000},
		},
		Opex: projection.CostSchedule{
			Items: []projection.LineItem{
				{Item: "Land Rental", Amount: 169_600_000},
				{Item: depreciationItem, Amount: 105_400_000},
				{Item: "Salaries (17 staff)", Amount: 84_300_000},
				{Item: "Electricity", Amount: 23_200_000},
				{Item: "Hygiene & Cleanliness", Amount: 13_900_000},
				{Item: "Maintenance", Amount: 11_600_000},
				{Item: "Management Fee (4%)", Amount: 9_300_000},
				{Item: "Customer Experience", Amount: 7_000_000},
				{Item: "Marketing & Campaign", Amount: 4_600_000},
				{Item: "Court Supplies", Amount: 4_600_000},
				{Item: "Other Supplies", Amount: 2_300_000},
				{Item: "Phone & Internet", Amount: 1_700_000},
			},
			DepreciationItem: depreciationItem,
			ReportedTotal:    reportedMonthlyOpex,
		},
		Capex: projection.CapexSchedule{
			Items: []projection.LineItem{
				{Item: "Building & Structure", Amount: 21_190_000_000},
				{Item: "Land Rental (6,000m², 3 years)", Amount: 5_400_000_000},
				{Item: "Padel Courts (9 units @ Rp 250M)", Amount: 2_250_000_000},
				{Item: "Pickleball Courts (2 units)", Amount: 100_000_000},
				{Item: "Gym Equipment", Amount: 500_000_000},
				{Item: "Other Equipment", Amount: 250_000_000},
				{Item: "Legal & Administration", Amount: 310_000_000},
			},
		},
		Ancillary: projection.AncillaryRevenue{
			FoodAndBeverage: 300_000_000, // cafeteria 150M + restaurant 150M
			Fitness:         25_000_000,
			ProShop:         45_000_000,
			Sponsorship:     135_000_000,
		},
		DefaultDailyHours: defaultDailyHours,
		Scenarios: []projection.ComparisonScenario{
			{Name: "Scenario A (8h)", MonthlyRevenue: 1_445_000_000, MonthlyEBITDA: 1_112_000_000},
			{Name: "Scenario F (6h)", MonthlyRevenue: 914_000_000, MonthlyEBITDA: 582_000_000},
		},
	}
}
