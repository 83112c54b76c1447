package projection

import "errors"

var (
	// ErrUnknownCourt is returned when a court id is not one of the known court types.
	ErrUnknownCourt = errors.New("projection: unknown court")
	// ErrUnknownPricingMode is returned when a pricing mode cannot be parsed.
	ErrUnknownPricingMode = errors.New("projection: unknown pricing mode")
	// ErrUnknownCategory is returned when an ancillary category cannot be parsed.
	ErrUnknownCategory = errors.New("projection: unknown ancillary category")
)
