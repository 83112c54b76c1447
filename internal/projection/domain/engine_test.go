package projection

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

const (
	testCashOpex   = 332_308_125.0
	testTotalCapex = 30_000_000_000.0
)

func testCourts() []CourtType {
	return []CourtType{
		{ID: CourtSide, Name: "Side Courts", Units: 6, PriceNormal: 382_500, PriceDiscount: 292_500},
		{ID: CourtCenter, Name: "Center Courts", Units: 2, PriceNormal: 472_500, PriceDiscount: 382_500},
		{ID: CourtStadium, Name: "Stadium Court", Units: 1, PriceNormal: 675_000, PriceDiscount: 585_000},
	}
}

func testAncillary() AncillaryRevenue {
	return AncillaryRevenue{FoodAndBeverage: 300_000_000, Fitness: 25_000_000, ProShop: 45_000_000, Sponsorship: 135_000_000}
}

func uniformHours(hours float64) map[CourtID]float64 {
	out := make(map[CourtID]float64)
	for _, id := range AllCourtIDs() {
		out[id] = hours
	}
	return out
}

func TestComputeReferenceScenario(t *testing.T) {
	assumptions := NewOperatingAssumptions(uniformHours(8), PricingNormal, testAncillary())
	m := Compute(assumptions, testCourts(), testCashOpex, testTotalCapex)

	wantCourts := 30.0 * 8 * (6*382_500 + 2*472_500 + 1*675_000)
	if m.Breakdown.CourtsTotal != wantCourts {
		t.Fatalf("courts total: got %v want %v", m.Breakdown.CourtsTotal, wantCourts)
	}
	if m.Breakdown.CourtsTotal != 939_600_000 {
		t.Fatalf("courts total: got %v", m.Breakdown.CourtsTotal)
	}
	if m.Breakdown.TotalAncillary != 505_000_000 {
		t.Fatalf("ancillary total: got %v", m.Breakdown.TotalAncillary)
	}
	if m.MonthlyRevenue != 1_444_600_000 {
		t.Fatalf("monthly revenue: got %v", m.MonthlyRevenue)
	}
	if m.MonthlyEBITDA != m.MonthlyRevenue-testCashOpex {
		t.Fatalf("monthly ebitda: got %v", m.MonthlyEBITDA)
	}
	if m.MonthlyEBITDA != 1_112_291_875 {
		t.Fatalf("monthly ebitda: got %v", m.MonthlyEBITDA)
	}
	years, ok := m.Payback.Years()
	if !ok {
		t.Fatalf("expected finite payback")
	}
	if want := testTotalCapex / (m.MonthlyEBITDA * 12); years != want {
		t.Fatalf("payback: got %v want %v", years, want)
	}
	if got := m.Breakdown.Court(CourtSide); got != 550_800_000 {
		t.Fatalf("side courts: got %v", got)
	}
	if got := m.Breakdown.Court(CourtCenter); got != 226_800_000 {
		t.Fatalf("center courts: got %v", got)
	}
	if got := m.Breakdown.Court(CourtStadium); got != 162_000_000 {
		t.Fatalf("stadium court: got %v", got)
	}
}

func TestComputeZeroInputsNeverPaysBack(t *testing.T) {
	assumptions := NewOperatingAssumptions(uniformHours(0), PricingNormal, AncillaryRevenue{})
	m := Compute(assumptions, testCourts(), testCashOpex, testTotalCapex)

	if m.MonthlyRevenue != 0 {
		t.Fatalf("monthly revenue: got %v", m.MonthlyRevenue)
	}
	if m.MonthlyEBITDA != -testCashOpex {
		t.Fatalf("monthly ebitda: got %v", m.MonthlyEBITDA)
	}
	if !m.Payback.Never() {
		t.Fatalf("expected never pays back")
	}
	if m.Payback.SortValue() != PaybackNeverSentinel {
		t.Fatalf("sort value: got %v", m.Payback.SortValue())
	}
	if _, ok := m.EBITDAMargin(); ok {
		t.Fatalf("margin must be undefined for zero revenue")
	}
}

func TestComputeMissingHoursReadAsZero(t *testing.T) {
	assumptions := NewOperatingAssumptions(map[CourtID]float64{CourtStadium: 10}, PricingNormal, AncillaryRevenue{})
	m := Compute(assumptions, testCourts(), testCashOpex, testTotalCapex)

	if m.Breakdown.Court(CourtSide) != 0 || m.Breakdown.Court(CourtCenter) != 0 {
		t.Fatalf("expected zero revenue for courts without hours")
	}
	if m.Breakdown.CourtsTotal != 675_000*10*30 {
		t.Fatalf("courts total: got %v", m.Breakdown.CourtsTotal)
	}
}

func TestCourtMonthlyRevenueFormula(t *testing.T) {
	for _, court := range testCourts() {
		for _, mode := range []PricingMode{PricingNormal, PricingDiscount} {
			prev := -1.0
			for _, hours := range []float64{0, 0.5, 1, 6, 8, 12.5, 16, 20} {
				got := CourtMonthlyRevenue(court, mode, hours)
				want := float64(court.Units) * court.Price(mode) * hours * 30
				if got != want {
					t.Fatalf("%s %s %vh: got %v want %v", court.ID, mode, hours, got, want)
				}
				if got < prev {
					t.Fatalf("%s %s: revenue decreased at %vh", court.ID, mode, hours)
				}
				prev = got
			}
		}
	}
}

func TestDiscountNeverIncreasesCourtRevenue(t *testing.T) {
	for _, hours := range []float64{0, 3, 8, 16} {
		normal := Compute(NewOperatingAssumptions(uniformHours(hours), PricingNormal, AncillaryRevenue{}), testCourts(), testCashOpex, testTotalCapex)
		discount := Compute(NewOperatingAssumptions(uniformHours(hours), PricingDiscount, AncillaryRevenue{}), testCourts(), testCashOpex, testTotalCapex)
		if discount.Breakdown.CourtsTotal > normal.Breakdown.CourtsTotal {
			t.Fatalf("%vh: discount %v above normal %v", hours, discount.Breakdown.CourtsTotal, normal.Breakdown.CourtsTotal)
		}
	}
}

func TestRevenueAndEBITDAIdentities(t *testing.T) {
	cases := []AncillaryRevenue{
		{},
		testAncillary(),
		{FoodAndBeverage: -10_000_000, Fitness: 1, ProShop: 2, Sponsorship: 3},
	}
	for _, anc := range cases {
		for _, hours := range []float64{0, 4, 8, 16} {
			m := Compute(NewOperatingAssumptions(uniformHours(hours), PricingNormal, anc), testCourts(), testCashOpex, testTotalCapex)
			if want := m.Breakdown.CourtsTotal + anc.FoodAndBeverage + anc.Fitness + anc.ProShop + anc.Sponsorship; m.MonthlyRevenue != want {
				t.Fatalf("revenue identity: got %v want %v", m.MonthlyRevenue, want)
			}
			if want := (m.MonthlyRevenue - testCashOpex) * 12; m.AnnualEBITDA != want {
				t.Fatalf("annual ebitda identity: got %v want %v", m.AnnualEBITDA, want)
			}
			if m.AnnualEBITDA <= 0 {
				if !m.Payback.Never() {
					t.Fatalf("expected sentinel payback for ebitda %v", m.AnnualEBITDA)
				}
				continue
			}
			years, ok := m.Payback.Years()
			if !ok || years != testTotalCapex/m.AnnualEBITDA {
				t.Fatalf("payback: got %v ok=%v", years, ok)
			}
			if math.IsInf(years, 0) || math.IsNaN(years) || years < 0 {
				t.Fatalf("payback not finite: %v", years)
			}
		}
	}
}

func TestHigherHoursIncreaseRevenueAndShortenPayback(t *testing.T) {
	eight := Compute(NewOperatingAssumptions(uniformHours(8), PricingNormal, testAncillary()), testCourts(), testCashOpex, testTotalCapex)
	sixteen := Compute(NewOperatingAssumptions(uniformHours(16), PricingNormal, testAncillary()), testCourts(), testCashOpex, testTotalCapex)

	if sixteen.MonthlyRevenue <= eight.MonthlyRevenue {
		t.Fatalf("16h revenue %v not above 8h revenue %v", sixteen.MonthlyRevenue, eight.MonthlyRevenue)
	}
	if sixteen.Payback.SortValue() >= eight.Payback.SortValue() {
		t.Fatalf("16h payback %v not below 8h payback %v", sixteen.Payback.SortValue(), eight.Payback.SortValue())
	}
}

func TestComputeIsDeterministicAndPure(t *testing.T) {
	hours := uniformHours(7.5)
	assumptions := NewOperatingAssumptions(hours, PricingDiscount, testAncillary())
	courts := testCourts()

	first := Compute(assumptions, courts, testCashOpex, testTotalCapex)
	second := Compute(assumptions, courts, testCashOpex, testTotalCapex)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("compute not deterministic: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(courts, testCourts()) {
		t.Fatalf("courts mutated")
	}
	if assumptions.DailyHours(CourtSide) != 7.5 {
		t.Fatalf("assumptions mutated")
	}
	hours[CourtSide] = 1
	if assumptions.DailyHours(CourtSide) != 7.5 {
		t.Fatalf("assumptions share the caller's map")
	}
}

func TestComputeToleratesOutOfRangeHours(t *testing.T) {
	m := Compute(NewOperatingAssumptions(uniformHours(40), PricingNormal, AncillaryRevenue{}), testCourts(), testCashOpex, testTotalCapex)
	if m.Breakdown.CourtsTotal != 30*40*3_915_000 {
		t.Fatalf("courts total: got %v", m.Breakdown.CourtsTotal)
	}
}

func TestPaybackJSON(t *testing.T) {
	data, err := json.Marshal(NeverPaysBack())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"years":null,"never_pays_back":true,"sort_value":999}` {
		t.Fatalf("never json: %s", data)
	}
	data, err = json.Marshal(FiniteYears(2.5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"years":2.5,"never_pays_back":false,"sort_value":2.5}` {
		t.Fatalf("finite json: %s", data)
	}
}
