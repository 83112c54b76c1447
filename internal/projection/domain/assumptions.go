package projection

import "strings"

// AncillaryCategory names one of the non-court revenue streams.
type AncillaryCategory string

const (
	CategoryFoodAndBeverage AncillaryCategory = "fb"
	CategoryFitness         AncillaryCategory = "fitness"
	CategoryProShop         AncillaryCategory = "pro_shop"
	CategorySponsorship     AncillaryCategory = "sponsorship"
)

// AllAncillaryCategories returns the categories in display order.
func AllAncillaryCategories() []AncillaryCategory {
	return []AncillaryCategory{CategoryFoodAndBeverage, CategoryFitness, CategoryProShop, CategorySponsorship}
}

// ParseAncillaryCategory validates a category string.
func ParseAncillaryCategory(value string) (AncillaryCategory, error) {
	category := AncillaryCategory(strings.ToLower(strings.TrimSpace(value)))
	switch category {
	case CategoryFoodAndBeverage, CategoryFitness, CategoryProShop, CategorySponsorship:
		return category, nil
	default:
		return "", ErrUnknownCategory
	}
}

// AncillaryRevenue holds monthly non-court revenue in base currency units.
type AncillaryRevenue struct {
	FoodAndBeverage float64
	Fitness         float64
	ProShop         float64
	Sponsorship     float64
}

// Total sums all ancillary streams.
func (a AncillaryRevenue) Total() float64 {
	return a.FoodAndBeverage + a.Fitness + a.ProShop + a.Sponsorship
}

// Get returns the amount of one category.
func (a AncillaryRevenue) Get(category AncillaryCategory) float64 {
	switch category {
	case CategoryFoodAndBeverage:
		return a.FoodAndBeverage
	case CategoryFitness:
		return a.Fitness
	case CategoryProShop:
		return a.ProShop
	case CategorySponsorship:
		return a.Sponsorship
	}
	return 0
}

// With returns a copy with one category replaced.
func (a AncillaryRevenue) With(category AncillaryCategory, amount float64) AncillaryRevenue {
	switch category {
	case CategoryFoodAndBeverage:
		a.FoodAndBeverage = amount
	case CategoryFitness:
		a.Fitness = amount
	case CategoryProShop:
		a.ProShop = amount
	case CategorySponsorship:
		a.Sponsorship = amount
	}
	return a
}

// OperatingAssumptions is an immutable snapshot of the adjustable inputs.
// Every With* method returns a new value; the receiver is left untouched.
type OperatingAssumptions struct {
	hours     map[CourtID]float64
	mode      PricingMode
	ancillary AncillaryRevenue
}

// NewOperatingAssumptions builds a snapshot. The hours map is copied.
func NewOperatingAssumptions(hours map[CourtID]float64, mode PricingMode, ancillary AncillaryRevenue) OperatingAssumptions {
	if mode == "" {
		mode = PricingNormal
	}
	return OperatingAssumptions{hours: copyHours(hours), mode: mode, ancillary: ancillary}
}

// DailyHours returns hours per day for a court; absent courts read as zero.
func (a OperatingAssumptions) DailyHours(id CourtID) float64 {
	return a.hours[id]
}

// HoursByCourt returns a copy of the hours mapping.
func (a OperatingAssumptions) HoursByCourt() map[CourtID]float64 {
	return copyHours(a.hours)
}

// PricingMode returns the active pricing mode.
func (a OperatingAssumptions) PricingMode() PricingMode {
	if a.mode == "" {
		return PricingNormal
	}
	return a.mode
}

// Ancillary returns the ancillary revenue inputs.
func (a OperatingAssumptions) Ancillary() AncillaryRevenue {
	return a.ancillary
}

// WithCourtHours returns a copy with one court's daily hours replaced.
func (a OperatingAssumptions) WithCourtHours(id CourtID, hours float64) OperatingAssumptions {
	next := a.clone()
	next.hours[id] = hours
	return next
}

// WithPricingMode returns a copy with the pricing mode replaced.
func (a OperatingAssumptions) WithPricingMode(mode PricingMode) OperatingAssumptions {
	next := a.clone()
	next.mode = mode
	return next
}

// WithAncillary returns a copy with one ancillary category replaced.
func (a OperatingAssumptions) WithAncillary(category AncillaryCategory, amount float64) OperatingAssumptions {
	next := a.clone()
	next.ancillary = next.ancillary.With(category, amount)
	return next
}

func (a OperatingAssumptions) clone() OperatingAssumptions {
	return OperatingAssumptions{hours: copyHours(a.hours), mode: a.mode, ancillary: a.ancillary}
}

func copyHours(src map[CourtID]float64) map[CourtID]float64 {
	dst := make(map[CourtID]float64, len(src))
	for id, h := range src {
		dst[id] = h
	}
	return dst
}
