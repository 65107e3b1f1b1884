package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/phishscan/internal/config"
	"github.com/nao1215/phishscan/internal/model"
)

// scannerFunc adapts a function to the Scanner interface.
type scannerFunc func(raw string) (*model.Report, error)

func (f scannerFunc) Analyze(raw string) (*model.Report, error) {
	return f(raw)
}

// newTestServer creates a Server that discards its logs.
func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()

	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	s, err := New(config.NewConfig(), opts...)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return s
}

// postScan sends body to POST /scan and returns the recorded response.
func postScan(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// get sends a GET request to path and returns the recorded response.
func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// decodeError decodes an error response body.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

// TestScanHandler tests the POST /scan contract.
func TestScanHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns the report for a phishing URL", func(t *testing.T) {
		t.Parallel()

		rec := postScan(t, newTestServer(t), `{"url": "http://paypal-secure-login.xyz"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var report model.Report
		if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
			t.Fatalf("failed to decode report: %v", err)
		}
		if report.RiskScore != 100 {
			t.Errorf("expected risk score 100, got %d", report.RiskScore)
		}
		if report.Verdict != model.VerdictAnomalous {
			t.Errorf("expected verdict Anomalous, got %s", report.Verdict)
		}
		if len(report.ForensicReport) != 4 {
			t.Errorf("expected 4 forensic entries, got %d", len(report.ForensicReport))
		}
	})

	t.Run("uses the wire keys of the report", func(t *testing.T) {
		t.Parallel()

		rec := postScan(t, newTestServer(t), `{"url": "https://www.google.com"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		body := rec.Body.String()
		for _, want := range []string{
			`"risk_score":0`,
			`"verdict":"Standard"`,
			`"forensic_report":[]`,
			`"neutral_opinion":"CLEAN:`,
			`"has_https":"Detected"`,
			`"has_tld":"Standard"`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("expected body to contain %s: %s", want, body)
			}
		}
	})

	t.Run("rejects missing input", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			body string
		}{
			{name: "empty url", body: `{"url": ""}`},
			{name: "null url", body: `{"url": null}`},
			{name: "no url key", body: `{}`},
			{name: "empty body", body: ``},
		}
		s := newTestServer(t)
		for _, tt := range tests {
			rec := postScan(t, s, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected status 400, got %d", tt.name, rec.Code)
				continue
			}
			if got := decodeError(t, rec); got != NoInputMessage {
				t.Errorf("%s: expected error %q, got %q", tt.name, NoInputMessage, got)
			}
		}
	})

	t.Run("returns 500 for a malformed URL", func(t *testing.T) {
		t.Parallel()

		rec := postScan(t, newTestServer(t), `{"url": "http://[::1"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != model.MalformedURLMessage {
			t.Errorf("expected error %q, got %q", model.MalformedURLMessage, got)
		}
	})

	t.Run("returns 500 for an undecodable body", func(t *testing.T) {
		t.Parallel()

		for _, body := range []string{`{"url":`, `not json`, `{"url": 42}`} {
			rec := postScan(t, newTestServer(t), body)
			if rec.Code != http.StatusInternalServerError {
				t.Errorf("body %q: expected status 500, got %d", body, rec.Code)
				continue
			}
			if decodeError(t, rec) == "" {
				t.Errorf("body %q: expected a non-empty error message", body)
			}
		}
	})

	t.Run("returns 500 for an oversized body", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.MaxBodySize = 16
		s, err := New(cfg, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		if err != nil {
			t.Fatalf("failed to create server: %v", err)
		}

		rec := postScan(t, s, `{"url": "http://`+strings.Repeat("a", 64)+`.com"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
	})

	t.Run("returns 500 when the analyzer panics", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, WithScanner(scannerFunc(func(string) (*model.Report, error) {
			panic("boom")
		})))

		rec := postScan(t, s, `{"url": "http://example.com"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "boom" {
			t.Errorf("expected error %q, got %q", "boom", got)
		}
	})

	t.Run("passes the analyzer error message through", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, WithScanner(scannerFunc(func(string) (*model.Report, error) {
			return nil, errors.New("analyzer unavailable")
		})))

		rec := postScan(t, s, `{"url": "http://example.com"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "analyzer unavailable" {
			t.Errorf("expected error %q, got %q", "analyzer unavailable", got)
		}
	})
}

// TestPages tests the HTML pages.
func TestPages(t *testing.T) {
	t.Parallel()

	t.Run("renders the scanner page", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(t), "/")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("expected text/html content type, got %q", ct)
		}
		body := rec.Body.String()
		for _, want := range []string{"<title>PhishScan</title>", `fetch("/scan"`} {
			if !strings.Contains(body, want) {
				t.Errorf("expected page to contain %q", want)
			}
		}
	})

	t.Run("renders the education page with every threat", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(t), "/education.html")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		for _, tag := range model.ThreatTags() {
			if !strings.Contains(body, string(tag)) {
				t.Errorf("expected page to mention %q", tag)
			}
		}
		if !strings.Contains(body, "<code>tld-reputation</code>") {
			t.Error("expected page to list the tld-reputation layer")
		}
	})

	t.Run("returns 404 for unknown paths", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(t), "/admin")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})
}

// TestHealthz tests the liveness endpoint.
func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("unexpected body: %s", got)
	}
}

// TestMetricsEndpoint tests that scans are counted and exposed.
func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("counts scans by verdict and errors", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		postScan(t, s, `{"url": "http://paypal-secure-login.xyz"}`)
		postScan(t, s, `{"url": "http://user@evil.top"}`)
		postScan(t, s, `{"url": "http://[::1"}`)

		rec := get(t, s, "/metrics")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{
			`phishscan_scans_total{verdict="Anomalous"} 2`,
			`phishscan_scans_total{verdict="Standard"} 0`,
			`phishscan_scan_errors_total 1`,
			`phishscan_risk_score_count 2`,
			`phishscan_http_requests_total{code="200",method="POST",route="/scan"} 2`,
			`phishscan_http_requests_total{code="500",method="POST",route="/scan"} 1`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("expected metrics to contain %s", want)
			}
		}
	})

	t.Run("keeps registries separate per server", func(t *testing.T) {
		t.Parallel()

		first := newTestServer(t)
		second := newTestServer(t)
		postScan(t, first, `{"url": "http://example.com"}`)

		body := get(t, second, "/metrics").Body.String()
		if !strings.Contains(body, `phishscan_scans_total{verdict="Standard"} 0`) {
			t.Error("expected the second server to have no scans")
		}
	})
}

// TestRequestID tests the request ID middleware.
func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates an ID when none is sent", func(t *testing.T) {
		t.Parallel()

		rec := get(t, newTestServer(t), "/healthz")
		if rec.Header().Get(RequestIDHeader) == "" {
			t.Error("expected a generated request ID")
		}
	})

	t.Run("reuses a valid incoming ID", func(t *testing.T) {
		t.Parallel()

		const id = "7d444840-9dc0-11d1-b245-5ffdce74fad2"
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIDHeader, id)
		rec := httptest.NewRecorder()
		newTestServer(t).Handler().ServeHTTP(rec, req)

		if got := rec.Header().Get(RequestIDHeader); got != id {
			t.Errorf("expected request ID %q, got %q", id, got)
		}
	})

	t.Run("replaces an invalid incoming ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		newTestServer(t).Handler().ServeHTTP(rec, req)

		got := rec.Header().Get(RequestIDHeader)
		if got == "" || got == "<script>" {
			t.Errorf("expected a generated request ID, got %q", got)
		}
	})
}

// TestCORS tests the CORS middleware.
func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("allows any origin by default", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://client.example.com")
		rec := httptest.NewRecorder()
		newTestServer(t).Handler().ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("expected allow origin *, got %q", got)
		}
	})

	t.Run("rejects origins outside the allow list", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.AllowOrigins = []string{"https://app.example.com"}
		s, err := New(cfg, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		if err != nil {
			t.Fatalf("failed to create server: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rec.Code)
		}
	})

	t.Run("rejects a malformed origin at construction", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.AllowOrigins = []string{"app.example.com"}
		if _, err := New(cfg); !errors.Is(err, ErrInvalidOrigin) {
			t.Errorf("expected ErrInvalidOrigin, got %v", err)
		}
	})
}

// TestServe tests serving on a real listener and shutting down.
func TestServe(t *testing.T) {
	t.Parallel()

	t.Run("serves until the context is cancelled", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("failed to listen: %v", err)
		}

		s := newTestServer(t)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- s.Serve(ctx, ln)
		}()

		resp, err := http.Post("http://"+ln.Addr().String()+"/scan", "application/json",
			bytes.NewBufferString(`{"url": "http://example.com"}`))
		if err != nil {
			cancel()
			t.Fatalf("request failed: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", resp.StatusCode)
		}

		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("expected clean shutdown, got %v", err)
			}
		case <-time.After(10 * time.Second):
			t.Fatal("server did not shut down")
		}
	})
}
