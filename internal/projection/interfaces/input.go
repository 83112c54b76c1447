package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"

	"padel-projection/internal/projection/application"
	projection "padel-projection/internal/projection/domain"
)

const (
	// MaxDailyHours is the upper bound of the daily-hours input.
	MaxDailyHours = 16.0
	// MillionUnit converts query ancillary values (Juta) into base units.
	MillionUnit = 1_000_000.0

	maxBodyBytes = 1 << 16
)

var (
	ErrInvalidJSON    = errors.New("projection input: invalid json")
	ErrUnknownField   = errors.New("projection input: unknown key")
	ErrInvalidPricing = errors.New("projection input: invalid pricing mode")
)

// ClampHours bounds daily hours to [0, MaxDailyHours]; non-finite values become 0.
func ClampHours(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > MaxDailyHours {
		return MaxDailyHours
	}
	return v
}

// ClampAmount bounds an ancillary amount to [0, +inf); non-finite values become 0.
func ClampAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// parseNumber returns 0 for malformed input.
func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// EditsFromQuery converts query parameters into session edits.
// Absent parameters produce no edit. Ancillary values are in millions.
func EditsFromQuery(q url.Values) ([]application.Edit, error) {
	var edits []application.Edit
	for _, id := range projection.AllCourtIDs() {
		if !q.Has(string(id)) {
			continue
		}
		edits = append(edits, application.SetCourtHours{Court: id, Hours: ClampHours(parseNumber(q.Get(string(id))))})
	}
	if q.Has("mode") {
		mode, err := projection.ParsePricingMode(q.Get("mode"))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPricing, q.Get("mode"))
		}
		edits = append(edits, application.SetPricingMode{Mode: mode})
	}
	for _, category := range projection.AllAncillaryCategories() {
		if !q.Has(string(category)) {
			continue
		}
		amount := ClampAmount(parseNumber(q.Get(string(category))) * MillionUnit)
		edits = append(edits, application.SetAncillary{Category: category, Amount: amount})
	}
	return edits, nil
}

// projectionRequest is the POST body. Amounts are in base currency units.
type projectionRequest struct {
	DailyHours  map[string]float64 `json:"daily_hours"`
	PricingMode string             `json:"pricing_mode"`
	Ancillary   map[string]float64 `json:"ancillary"`
}

// EditsFromJSON decodes a projection request body into session edits.
func EditsFromJSON(body io.Reader) ([]application.Edit, error) {
	var req projectionRequest
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	var edits []application.Edit
	for key, hours := range req.DailyHours {
		id, err := projection.ParseCourtID(key)
		if err != nil {
			return nil, fmt.Errorf("%w: court %q", ErrUnknownField, key)
		}
		edits = append(edits, application.SetCourtHours{Court: id, Hours: ClampHours(hours)})
	}
	if req.PricingMode != "" {
		mode, err := projection.ParsePricingMode(req.PricingMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPricing, req.PricingMode)
		}
		edits = append(edits, application.SetPricingMode{Mode: mode})
	}
	for key, amount := range req.Ancillary {
		category, err := projection.ParseAncillaryCategory(key)
		if err != nil {
			return nil, fmt.Errorf("%w: ancillary %q", ErrUnknownField, key)
		}
		edits = append(edits, application.SetAncillary{Category: category, Amount: ClampAmount(amount)})
	}
	return edits, nil
}
