package application

import (
	"context"

	projection "padel-projection/internal/projection/domain"
)

// Edit is one user change to the operating assumptions.
type Edit interface {
	Apply(projection.OperatingAssumptions) projection.OperatingAssumptions
}

// SetCourtHours changes one court type's daily sold hours.
type SetCourtHours struct {
	Court projection.CourtID
	Hours float64
}

// Apply implements Edit.
func (e SetCourtHours) Apply(a projection.OperatingAssumptions) projection.OperatingAssumptions {
	return a.WithCourtHours(e.Court, e.Hours)
}

// SetPricingMode switches the global price column.
type SetPricingMode struct {
	Mode projection.PricingMode
}

// Apply implements Edit.
func (e SetPricingMode) Apply(a projection.OperatingAssumptions) projection.OperatingAssumptions {
	return a.WithPricingMode(e.Mode)
}

// SetAncillary changes one ancillary monthly revenue stream.
type SetAncillary struct {
	Category projection.AncillaryCategory
	Amount   float64
}

// Apply implements Edit.
func (e SetAncillary) Apply(a projection.OperatingAssumptions) projection.OperatingAssumptions {
	return a.WithAncillary(e.Category, e.Amount)
}

// Session owns one user's assumptions and the metrics derived from them.
// A session is not safe for concurrent use; each caller owns its own.
type Session struct {
	service     *ProjectionService
	assumptions projection.OperatingAssumptions
	metrics     projection.FinancialMetrics
}

// Assumptions returns the current snapshot.
func (s *Session) Assumptions() projection.OperatingAssumptions { return s.assumptions }

// Metrics returns the metrics of the current snapshot.
func (s *Session) Metrics() projection.FinancialMetrics { return s.metrics }

// Apply replaces the assumptions with the edited snapshot and recomputes.
func (s *Session) Apply(ctx context.Context, edits ...Edit) projection.FinancialMetrics {
	next := s.assumptions
	for _, edit := range edits {
		if edit == nil {
			continue
		}
		next = edit.Apply(next)
	}
	s.assumptions = next
	s.metrics = s.service.Project(ctx, next)
	return s.metrics
}

// Replace swaps in a whole snapshot and recomputes.
func (s *Session) Replace(ctx context.Context, assumptions projection.OperatingAssumptions) projection.FinancialMetrics {
	s.assumptions = assumptions
	s.metrics = s.service.Project(ctx, assumptions)
	return s.metrics
}
