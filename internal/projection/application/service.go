package application

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"padel-projection/internal/observability/metrics"
	projection "padel-projection/internal/projection/domain"
)

// ReferenceData provides the static tables a projection runs over.
type ReferenceData interface {
	ListCourtTypes() []projection.CourtType
	CashOpexMonthly() float64
	TotalCapex() float64
	DefaultAssumptions() projection.OperatingAssumptions
	OpexSchedule() projection.CostSchedule
	CapexSchedule() projection.CapexSchedule
	ComparisonScenarios() []projection.ComparisonScenario
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ProjectionService runs projections against the reference data.
type ProjectionService struct {
	ref    ReferenceData
	logger *log.Logger
	clock  Clock
}

// NewProjectionService constructs the service.
func NewProjectionService(ref ReferenceData, logger *log.Logger, clock Clock) (*ProjectionService, error) {
	if ref == nil {
		return nil, errors.New("projection service: nil reference data")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &ProjectionService{ref: ref, logger: logger, clock: clock}, nil
}

// Reference returns the reference data the service was built with.
func (s *ProjectionService) Reference() ReferenceData { return s.ref }

// NewSession starts a session seeded with the default assumptions.
func (s *ProjectionService) NewSession(ctx context.Context) *Session {
	session := &Session{service: s}
	session.Replace(ctx, s.ref.DefaultAssumptions())
	return session
}

// Project computes metrics for a snapshot.
func (s *ProjectionService) Project(_ context.Context, assumptions projection.OperatingAssumptions) projection.FinancialMetrics {
	start := time.Now()
	m := projection.Compute(assumptions, s.ref.ListCourtTypes(), s.ref.CashOpexMonthly(), s.ref.TotalCapex())
	result := projectionResult(m)
	metrics.ObserveProjection(result, time.Since(start))
	if s.logger != nil {
		switch result {
		case metrics.ResultError:
			s.logger.Printf("projection: non-finite result, revenue %v ebitda %v", m.MonthlyRevenue, m.MonthlyEBITDA)
		case metrics.ResultNoPayback:
			s.logger.Printf("projection: annual ebitda %.0f not positive, payback never occurs", m.AnnualEBITDA)
		}
	}
	return m
}

func projectionResult(m projection.FinancialMetrics) string {
	for _, v := range []float64{m.MonthlyRevenue, m.MonthlyEBITDA, m.AnnualEBITDA} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return metrics.ResultError
		}
	}
	if m.Payback.Never() {
		return metrics.ResultNoPayback
	}
	return metrics.ResultSuccess
}

// Report bundles everything the presentation layer renders for a snapshot.
type Report struct {
	Assumptions     projection.OperatingAssumptions
	Metrics         projection.FinancialMetrics
	Slices          []RevenueSlice
	Comparison      []ComparisonRow
	Summary         []SummaryRow
	Courts          []projection.CourtType
	Capex           projection.CapexSchedule
	Opex            projection.CostSchedule
	CashOpexMonthly float64
	TotalCapex      float64
	GeneratedAt     time.Time
}

// BuildReport projects the session's current snapshot into a Report.
func (s *ProjectionService) BuildReport(session *Session) Report {
	courts := s.ref.ListCourtTypes()
	a := session.Assumptions()
	m := session.Metrics()
	return Report{
		Assumptions:     a,
		Metrics:         m,
		Slices:          RevenueSlices(m),
		Comparison:      ComparisonRows(m, s.ref.ComparisonScenarios()),
		Summary:         SummaryRows(m, a, courts, s.ref.CashOpexMonthly(), s.ref.TotalCapex()),
		Courts:          courts,
		Capex:           s.ref.CapexSchedule(),
		Opex:            s.ref.OpexSchedule(),
		CashOpexMonthly: s.ref.CashOpexMonthly(),
		TotalCapex:      s.ref.TotalCapex(),
		GeneratedAt:     s.clock.Now(),
	}
}
