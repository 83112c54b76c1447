package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"padel-projection/internal/audit"
	"padel-projection/internal/observability/metrics"
	"padel-projection/internal/projection/application"
	projection "padel-projection/internal/projection/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type courtView struct {
	ID            projection.CourtID `json:"id"`
	Name          string             `json:"name"`
	Units         int                `json:"units"`
	PriceNormal   float64            `json:"price_normal"`
	PriceDiscount float64            `json:"price_discount"`
}

type assumptionsView struct {
	DailyHours  map[projection.CourtID]float64 `json:"daily_hours"`
	PricingMode projection.PricingMode         `json:"pricing_mode"`
	Ancillary   map[string]float64             `json:"ancillary"`
}

func newCourtViews(courts []projection.CourtType) []courtView {
	views := make([]courtView, 0, len(courts))
	for _, c := range courts {
		views = append(views, courtView{ID: c.ID, Name: c.Name, Units: c.Units, PriceNormal: c.PriceNormal, PriceDiscount: c.PriceDiscount})
	}
	return views
}

func newAssumptionsView(a projection.OperatingAssumptions) assumptionsView {
	anc := a.Ancillary()
	view := assumptionsView{
		DailyHours:  a.HoursByCourt(),
		PricingMode: a.PricingMode(),
		Ancillary:   make(map[string]float64, 4),
	}
	for _, category := range projection.AllAncillaryCategories() {
		view.Ancillary[string(category)] = anc.Get(category)
	}
	return view
}

// ReferenceHandler serves the reference tables under /api/v1/reference.
type ReferenceHandler struct {
	ref      application.ReferenceData
	currency string
}

// NewReferenceHandler constructs a handler.
func NewReferenceHandler(ref application.ReferenceData, currency string) (*ReferenceHandler, error) {
	if ref == nil {
		return nil, errors.New("reference handler: nil reference data")
	}
	return &ReferenceHandler{ref: ref, currency: currency}, nil
}

// ServeHTTP handles GET /api/v1/reference.
func (h *ReferenceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/reference" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	opex := h.ref.OpexSchedule()
	capex := h.ref.CapexSchedule()
	resp := map[string]any{
		"currency": h.currency,
		"courts":   newCourtViews(h.ref.ListCourtTypes()),
		"opex": map[string]any{
			"items":             opex.Items,
			"depreciation_item": opex.DepreciationItem,
			"itemized_total":    opex.ItemizedTotal(),
			"total_monthly":     opex.TotalMonthlyOpex(),
			"unitemized":        opex.Unitemized(),
			"cash_opex_monthly": h.ref.CashOpexMonthly(),
		},
		"capex": map[string]any{
			"items": capex.Items,
			"total": h.ref.TotalCapex(),
		},
		"defaults":  newAssumptionsView(h.ref.DefaultAssumptions()),
		"scenarios": h.ref.ComparisonScenarios(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// ProjectionHandler handles projection APIs.
type ProjectionHandler struct {
	service     *application.ProjectionService
	auditLogger audit.Logger
	logger      *log.Logger
	currency    string
}

// NewProjectionHandler constructs a handler.
func NewProjectionHandler(service *application.ProjectionService, auditLogger audit.Logger, logger *log.Logger, currency string) (*ProjectionHandler, error) {
	if service == nil {
		return nil, errors.New("projection handler: nil service")
	}
	return &ProjectionHandler{service: service, auditLogger: auditLogger, logger: logger, currency: currency}, nil
}

// ServeHTTP handles routes under /api/v1/projections.
func (h *ProjectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/projections":
		switch r.Method {
		case http.MethodGet:
			h.handleQuery(w, r)
		case http.MethodPost:
			h.handlePost(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	case "/api/v1/projections/export.pdf":
		if r.Method == http.MethodGet {
			h.handleExport(w, r, "pdf")
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	case "/api/v1/projections/export.xlsx":
		if r.Method == http.MethodGet {
			h.handleExport(w, r, "xlsx")
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

type projectionResponse struct {
	Currency    string                      `json:"currency"`
	Assumptions assumptionsView             `json:"assumptions"`
	Metrics     projection.FinancialMetrics `json:"metrics"`
	Margin      *float64                    `json:"ebitda_margin"`
	Slices      []application.RevenueSlice  `json:"revenue_slices"`
	Comparison  []application.ComparisonRow `json:"comparison"`
	Summary     []application.SummaryRow    `json:"summary"`
	Display     map[string]string           `json:"display"`
}

func newProjectionResponse(report application.Report, currency string) projectionResponse {
	m := report.Metrics
	resp := projectionResponse{
		Currency:    currency,
		Assumptions: newAssumptionsView(report.Assumptions),
		Metrics:     m,
		Slices:      report.Slices,
		Comparison:  report.Comparison,
		Summary:     report.Summary,
		Display: map[string]string{
			"monthly_revenue":   FormatIDR(m.MonthlyRevenue),
			"monthly_ebitda":    FormatIDR(m.MonthlyEBITDA),
			"annual_ebitda":     FormatBillions(m.AnnualEBITDA),
			"payback":           FormatPayback(m.Payback),
			"ebitda_margin":     FormatMargin(m),
			"total_ancillary":   FormatMillions(m.Breakdown.TotalAncillary),
			"cash_opex_monthly": FormatIDR(report.CashOpexMonthly),
		},
	}
	if margin, ok := m.EBITDAMargin(); ok {
		resp.Margin = &margin
	}
	if resp.Slices == nil {
		resp.Slices = []application.RevenueSlice{}
	}
	return resp
}

func (h *ProjectionHandler) handleQuery(w http.ResponseWriter, r *http.Request) {
	edits, err := EditsFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.respond(w, r, edits)
}

func (h *ProjectionHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	edits, err := EditsFromJSON(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.respond(w, r, edits)
}

func (h *ProjectionHandler) respond(w http.ResponseWriter, r *http.Request, edits []application.Edit) {
	session := h.service.NewSession(r.Context())
	session.Apply(r.Context(), edits...)
	report := h.service.BuildReport(session)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(newProjectionResponse(report, h.currency))
}

func (h *ProjectionHandler) handleExport(w http.ResponseWriter, r *http.Request, format string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport(format, result, time.Since(start))
	}()

	edits, err := EditsFromQuery(r.URL.Query())
	if err != nil {
		result = metrics.ResultError
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session := h.service.NewSession(r.Context())
	session.Apply(r.Context(), edits...)
	report := h.service.BuildReport(session)

	var (
		data        []byte
		contentType string
		action      string
	)
	switch format {
	case "pdf":
		data, err = BuildProjectionPDF(report, h.currency)
		contentType, action = "application/pdf", audit.ActionExportPDF
	default:
		data, err = BuildProjectionXLSX(report, h.currency)
		contentType, action = xlsxContentType, audit.ActionExportXLSX
	}
	if err != nil {
		result = metrics.ResultError
		if h.logger != nil {
			h.logger.Printf("projection export: %s: %v", format, err)
		}
		http.Error(w, "export "+format+" error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=projection."+format)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, action, newAssumptionsView(report.Assumptions))
}

func (h *ProjectionHandler) logAudit(r *http.Request, action string, meta any) {
	if h.auditLogger == nil {
		return
	}
	entry := audit.EntryFromRequest(r, action, "projection", meta)
	if err := h.auditLogger.Log(r.Context(), entry); err != nil && h.logger != nil {
		h.logger.Printf("projection audit: %v", err)
	}
}
