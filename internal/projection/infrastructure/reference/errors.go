package reference

import "errors"

var (
	// ErrUnknownCourt is returned when a table references a court id that does not exist.
	ErrUnknownCourt = errors.New("reference: unknown court")
	// ErrDuplicateCourt is returned when a court id appears twice.
	ErrDuplicateCourt = errors.New("reference: duplicate court")
	// ErrNegativeUnits is returned when a court has a negative unit count.
	ErrNegativeUnits = errors.New("reference: negative units")
	// ErrDiscountAboveNormal is returned when a discounted price exceeds the normal price.
	ErrDiscountAboveNormal = errors.New("reference: discount price above normal price")
	// ErrMissingDepreciation is returned when the opex schedule lacks the depreciation line.
	ErrMissingDepreciation = errors.New("reference: depreciation item not in opex schedule")
	// ErrNoCourts is returned when the court table is empty.
	ErrNoCourts = errors.New("reference: no courts")
)
