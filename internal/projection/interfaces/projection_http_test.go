package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/xuri/excelize/v2"

	"padel-projection/internal/audit"
	"padel-projection/internal/auth"
	"padel-projection/internal/projection/application"
	"padel-projection/internal/projection/infrastructure/reference"
)

type stubAudit struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (s *stubAudit) Log(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

type decodedProjection struct {
	Currency    string `json:"currency"`
	Assumptions struct {
		DailyHours  map[string]float64 `json:"daily_hours"`
		PricingMode string             `json:"pricing_mode"`
		Ancillary   map[string]float64 `json:"ancillary"`
	} `json:"assumptions"`
	Metrics struct {
		MonthlyRevenue float64 `json:"monthly_revenue"`
		MonthlyEBITDA  float64 `json:"monthly_ebitda"`
		AnnualEBITDA   float64 `json:"annual_ebitda"`
		Payback        struct {
			Years         *float64 `json:"years"`
			NeverPaysBack bool     `json:"never_pays_back"`
			SortValue     float64  `json:"sort_value"`
		} `json:"payback"`
		Breakdown struct {
			CourtsTotal float64 `json:"courts_total"`
		} `json:"revenue_breakdown"`
	} `json:"metrics"`
	Margin     *float64                    `json:"ebitda_margin"`
	Slices     []application.RevenueSlice  `json:"revenue_slices"`
	Comparison []application.ComparisonRow `json:"comparison"`
	Summary    []application.SummaryRow    `json:"summary"`
	Display    map[string]string           `json:"display"`
}

func newTestHandler(t *testing.T) (*ProjectionHandler, *stubAudit) {
	t.Helper()
	service, err := application.NewProjectionService(reference.Default(), nil, nil)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	sink := &stubAudit{}
	handler, err := NewProjectionHandler(service, sink, nil, "IDR")
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return handler, sink
}

func doProjection(t *testing.T, handler http.Handler, req *http.Request) decodedProjection {
	t.Helper()
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out decodedProjection
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestProjectionHandler_Defaults(t *testing.T) {
	handler, _ := newTestHandler(t)
	out := doProjection(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/projections", nil))

	if out.Metrics.MonthlyRevenue != 1_444_600_000 {
		t.Fatalf("revenue: %v", out.Metrics.MonthlyRevenue)
	}
	if out.Metrics.MonthlyEBITDA != 1_112_291_875 {
		t.Fatalf("ebitda: %v", out.Metrics.MonthlyEBITDA)
	}
	if out.Metrics.Payback.NeverPaysBack || out.Metrics.Payback.Years == nil {
		t.Fatalf("payback should be finite: %+v", out.Metrics.Payback)
	}
	if out.Margin == nil {
		t.Fatalf("margin should be present")
	}
	if out.Display["monthly_revenue"] != "Rp 1.444.600.000" {
		t.Fatalf("display revenue: %q", out.Display["monthly_revenue"])
	}
	if out.Display["payback"] != "2.2 Years" {
		t.Fatalf("display payback: %q", out.Display["payback"])
	}
	if out.Display["annual_ebitda"] != "13.35 M" {
		t.Fatalf("display annual: %q", out.Display["annual_ebitda"])
	}
	if out.Assumptions.PricingMode != "NORMAL" || out.Assumptions.DailyHours["side"] != 8 {
		t.Fatalf("assumptions: %+v", out.Assumptions)
	}
	if len(out.Comparison) != 3 || !out.Comparison[0].Current {
		t.Fatalf("comparison: %+v", out.Comparison)
	}
	if len(out.Slices) != 7 {
		t.Fatalf("expected 7 slices, got %d", len(out.Slices))
	}
	if out.Currency != "IDR" {
		t.Fatalf("currency: %s", out.Currency)
	}
}

func TestProjectionHandler_QueryInputBoundary(t *testing.T) {
	handler, _ := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projections?side=abc&fb=100", nil)
	out := doProjection(t, handler, req)

	if out.Metrics.Breakdown.CourtsTotal != 388_800_000 {
		t.Fatalf("courts total: %v", out.Metrics.Breakdown.CourtsTotal)
	}
	if out.Assumptions.Ancillary["fb"] != 100_000_000 {
		t.Fatalf("fb: %v", out.Assumptions.Ancillary["fb"])
	}
}

func TestProjectionHandler_AllZero(t *testing.T) {
	handler, _ := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projections?side=0&center=0&stadium=0&fb=0&fitness=0&pro_shop=0&sponsorship=0", nil)
	out := doProjection(t, handler, req)

	if out.Metrics.MonthlyRevenue != 0 {
		t.Fatalf("revenue: %v", out.Metrics.MonthlyRevenue)
	}
	if out.Metrics.MonthlyEBITDA != -332_308_125 {
		t.Fatalf("ebitda: %v", out.Metrics.MonthlyEBITDA)
	}
	if !out.Metrics.Payback.NeverPaysBack || out.Metrics.Payback.SortValue != 999 {
		t.Fatalf("payback: %+v", out.Metrics.Payback)
	}
	if out.Margin != nil {
		t.Fatalf("margin should be null at zero revenue")
	}
	if out.Display["payback"] != "> 50 Years" {
		t.Fatalf("display payback: %q", out.Display["payback"])
	}
	if len(out.Slices) != 0 {
		t.Fatalf("expected no slices, got %+v", out.Slices)
	}
}

func TestProjectionHandler_Post(t *testing.T) {
	handler, _ := newTestHandler(t)
	body := `{"daily_hours":{"side":16,"center":16,"stadium":16},"pricing_mode":"DISCOUNT"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projections", strings.NewReader(body))
	out := doProjection(t, handler, req)

	// 16h discount: side 6*292500*480 + center 2*382500*480 + stadium 585000*480.
	want := 6*292500*480.0 + 2*382500*480.0 + 585000*480.0
	if out.Metrics.Breakdown.CourtsTotal != want {
		t.Fatalf("courts total: got %v want %v", out.Metrics.Breakdown.CourtsTotal, want)
	}
	if out.Assumptions.PricingMode != "DISCOUNT" {
		t.Fatalf("mode: %s", out.Assumptions.PricingMode)
	}
}

func TestProjectionHandler_BadRequests(t *testing.T) {
	handler, _ := newTestHandler(t)
	cases := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/projections?mode=weekend", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/projections", strings.NewReader("{")),
		httptest.NewRequest(http.MethodPost, "/api/v1/projections", strings.NewReader(`{"daily_hours":{"rooftop":2}}`)),
	}
	for _, req := range cases {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s %s: expected 400, got %d", req.Method, req.URL, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/projections", nil))
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/projections/export.csv", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestProjectionHandler_ExportPDF(t *testing.T) {
	handler, sink := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projections/export.pdf?side=6", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.RoleOperator, "analyst-1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("content type: %s", resp.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("body is not a pdf")
	}
	if len(sink.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(sink.entries))
	}
	entry := sink.entries[0]
	if entry.Action != audit.ActionExportPDF || entry.Actor != "analyst-1" || entry.ResourceType != "projection" {
		t.Fatalf("audit entry: %+v", entry)
	}
	if !strings.Contains(string(entry.Metadata), `"side":6`) {
		t.Fatalf("audit metadata: %s", entry.Metadata)
	}
}

func TestProjectionHandler_ExportXLSX(t *testing.T) {
	handler, sink := newTestHandler(t)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/projections/export.xlsx", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	f, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if strings.Join(sheets, ",") != "summary,capex,opex,comparison" {
		t.Fatalf("sheets: %v", sheets)
	}
	title, _ := f.GetCellValue("summary", "A1")
	if title != "Padel Facility Financial Projection" {
		t.Fatalf("title: %q", title)
	}
	rows, err := f.GetRows("opex")
	if err != nil {
		t.Fatalf("opex rows: %v", err)
	}
	var sawUnitemized bool
	for _, row := range rows {
		if len(row) > 0 && row[0] == "Unitemized" {
			sawUnitemized = true
		}
	}
	if !sawUnitemized {
		t.Fatalf("opex sheet should list the unitemized remainder")
	}
	if len(sink.entries) != 1 || sink.entries[0].Action != audit.ActionExportXLSX {
		t.Fatalf("audit entries: %+v", sink.entries)
	}
}

func TestReferenceHandler(t *testing.T) {
	handler, err := NewReferenceHandler(reference.Default(), "IDR")
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/reference", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out struct {
		Courts []courtView `json:"courts"`
		Opex   struct {
			CashOpexMonthly float64 `json:"cash_opex_monthly"`
			TotalMonthly    float64 `json:"total_monthly"`
		} `json:"opex"`
		Capex struct {
			Total float64 `json:"total"`
		} `json:"capex"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Courts) != 3 || out.Courts[0].ID != "side" || out.Courts[0].Units != 6 {
		t.Fatalf("courts: %+v", out.Courts)
	}
	if out.Opex.CashOpexMonthly != 332_308_125 || out.Opex.TotalMonthly != 437_708_125 {
		t.Fatalf("opex: %+v", out.Opex)
	}
	if out.Capex.Total != 30_000_000_000 {
		t.Fatalf("capex: %v", out.Capex.Total)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/reference", nil))
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}

func TestNewHandlers_NilDeps(t *testing.T) {
	if _, err := NewProjectionHandler(nil, nil, nil, ""); err == nil {
		t.Fatalf("expected error for nil service")
	}
	if _, err := NewReferenceHandler(nil, ""); err == nil {
		t.Fatalf("expected error for nil reference data")
	}
}

func TestProjectionHandler_LargeAncillaryDisplay(t *testing.T) {
	handler, _ := newTestHandler(t)
	out := doProjection(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/projections?fb=1e13", nil))

	if got := out.Display["monthly_revenue"]; !strings.HasPrefix(got, "Rp 10.000.000.001.") {
		t.Fatalf("display revenue: %q", got)
	}
}
