package projection

import "strings"

// CourtID identifies a court type.
type CourtID string

const (
	CourtSide    CourtID = "side"
	CourtCenter  CourtID = "center"
	CourtStadium CourtID = "stadium"
)

// AllCourtIDs returns every court id in canonical order.
func AllCourtIDs() []CourtID {
	return []CourtID{CourtSide, CourtCenter, CourtStadium}
}

// ParseCourtID validates a court id string.
func ParseCourtID(value string) (CourtID, error) {
	id := CourtID(strings.ToLower(strings.TrimSpace(value)))
	switch id {
	case CourtSide, CourtCenter, CourtStadium:
		return id, nil
	default:
		return "", ErrUnknownCourt
	}
}

// CourtType is a rentable court class with its per-hour price list.
// PriceDiscount is never above PriceNormal.
type CourtType struct {
	ID            CourtID
	Name          string
	Units         int
	PriceNormal   float64
	PriceDiscount float64
}

// Price returns the hourly price active under mode.
func (c CourtType) Price(mode PricingMode) float64 {
	if mode == PricingDiscount {
		return c.PriceDiscount
	}
	return c.PriceNormal
}

// PricingMode selects the price column for all courts at once.
type PricingMode string

const (
	PricingNormal   PricingMode = "NORMAL"
	PricingDiscount PricingMode = "DISCOUNT"
)

// ParsePricingMode parses "normal" or "discount" case-insensitively.
func ParsePricingMode(value string) (PricingMode, error) {
	switch PricingMode(strings.ToUpper(strings.TrimSpace(value))) {
	case PricingNormal:
		return PricingNormal, nil
	case PricingDiscount:
		return PricingDiscount, nil
	default:
		return "", ErrUnknownPricingMode
	}
}
