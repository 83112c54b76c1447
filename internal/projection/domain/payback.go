package projection

import "encoding/json"

// PaybackNeverSentinel orders a never-paying scenario after every finite payback.
const PaybackNeverSentinel = 999.0

// Payback is either a finite number of years or "never pays back".
type Payback struct {
	years float64
	never bool
}

// FiniteYears builds a finite payback period.
func FiniteYears(years float64) Payback {
	return Payback{years: years}
}

// NeverPaysBack builds the payback returned when annual EBITDA is not positive.
func NeverPaysBack() Payback {
	return Payback{never: true}
}

// Years returns the payback period and false when it never occurs.
func (p Payback) Years() (float64, bool) {
	if p.never {
		return 0, false
	}
	return p.years, true
}

// Never reports whether the investment is never recovered.
func (p Payback) Never() bool { return p.never }

// SortValue maps the payback onto a finite, orderable number.
func (p Payback) SortValue() float64 {
	if p.never {
		return PaybackNeverSentinel
	}
	return p.years
}

type paybackJSON struct {
	Years         *float64 `json:"years"`
	NeverPaysBack bool     `json:"never_pays_back"`
	SortValue     float64  `json:"sort_value"`
}

// MarshalJSON encodes the tagged value; years is null when payback never occurs.
func (p Payback) MarshalJSON() ([]byte, error) {
	out := paybackJSON{NeverPaysBack: p.never, SortValue: p.SortValue()}
	if !p.never {
		years := p.years
		out.Years = &years
	}
	return json.Marshal(out)
}
