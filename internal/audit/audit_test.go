package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"padel-projection/internal/auth"
)

func TestDigestJSON(t *testing.T) {
	if DigestJSON(nil) != "" {
		t.Fatalf("expected empty digest for empty payload")
	}
	a := DigestJSON([]byte(`{"side":8}`))
	b := DigestJSON([]byte(`{"side":8}`))
	if a == "" || a != b {
		t.Fatalf("digest not stable: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected sha256 hex, got %d chars", len(a))
	}
}

func TestNewID_Unique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Fatalf("ids collide: %s", a)
	}
	if !strings.HasPrefix(a, "audit-") {
		t.Fatalf("unexpected id %s", a)
	}
}

func TestLogLogger_WritesEntry(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogLogger(log.New(&buf, "", 0))
	sink.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	meta, _ := json.Marshal(map[string]any{"side": 8})
	err := sink.Log(context.Background(), Entry{
		Actor:        "user-1",
		Role:         "operator",
		Action:       ActionExportPDF,
		ResourceType: "projection",
		Metadata:     meta,
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	line := buf.String()
	for _, want := range []string{"action=" + ActionExportPDF, `actor="user-1"`, "digest=" + DigestJSON(meta), "at=2026-01-02T03:04:05Z"} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %q in %q", want, line)
		}
	}
}

func TestLogLogger_Nil(t *testing.T) {
	if NewLogLogger(nil) != nil {
		t.Fatalf("expected nil sink for nil logger")
	}
	var sink *LogLogger
	if err := sink.Log(context.Background(), Entry{}); err == nil {
		t.Fatalf("expected error from nil sink")
	}
}

func TestRepository_NilDB(t *testing.T) {
	if NewRepository(nil) != nil {
		t.Fatalf("expected nil repository")
	}
	var repo *Repository
	if err := repo.Log(context.Background(), Entry{}); err == nil {
		t.Fatalf("expected error from nil repository")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5:4321"
	if got := ClientIP(req); got != "10.0.0.5" {
		t.Fatalf("remote addr: got %s", got)
	}
	req.Header.Set("X-Real-IP", "192.168.1.9")
	if got := ClientIP(req); got != "192.168.1.9" {
		t.Fatalf("x-real-ip: got %s", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Fatalf("x-forwarded-for: got %s", got)
	}
}

func TestEntryFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/projections/export.pdf", nil)
	req.Header.Set("User-Agent", "report-client")
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.RoleOperator, "analyst-7"))

	entry := EntryFromRequest(req, ActionExportPDF, "projection", map[string]float64{"side": 8})
	if entry.Actor != "analyst-7" || entry.Role != "operator" {
		t.Fatalf("identity: %+v", entry)
	}
	if entry.UserAgent != "report-client" {
		t.Fatalf("user agent: %s", entry.UserAgent)
	}
	if string(entry.Metadata) != `{"side":8}` {
		t.Fatalf("metadata: %s", entry.Metadata)
	}
}
