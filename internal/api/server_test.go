package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outbound-cli/internal/estimate"
	"github.com/sells-group/outbound-cli/internal/waterfall"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(t *testing.T) {
	t.Parallel()
	h := NewServer(Options{}).Router()

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 11, body["vendors"])
}

func TestVendors(t *testing.T) {
	t.Parallel()
	h := NewServer(Options{}).Router()

	var all []map[string]any
	rec := do(t, h, http.MethodGet, "/v1/vendors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &all)
	assert.Len(t, all, 11)

	var senders []map[string]any
	rec = do(t, h, http.MethodGet, "/v1/vendors?category=email_sending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &senders)
	assert.Len(t, senders, 2)

	rec = do(t, h, http.MethodGet, "/v1/vendors?category=fax", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/vendors/instantly", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Instantly"`)

	rec = do(t, h, http.MethodGet, "/v1/vendors/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRatesAndPresets(t *testing.T) {
	t.Parallel()
	h := NewServer(Options{}).Router()

	var rates struct {
		Defaults    map[string]float64 `json:"defaults"`
		Assumptions []map[string]any   `json:"assumptions"`
	}
	rec := do(t, h, http.MethodGet, "/v1/rates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &rates)
	assert.InDelta(t, 0.055, rates.Defaults["reply_rate"], 1e-9)
	assert.Len(t, rates.Assumptions, 6)

	var presets map[string]waterfall.Config
	rec = do(t, h, http.MethodGet, "/v1/waterfalls/presets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &presets)
	assert.Len(t, presets, 3)
	assert.Equal(t, "preset-phone-std", presets["phone_finding_standard"].ID)
}

func TestEstimate(t *testing.T) {
	t.Parallel()
	h := NewServer(Options{}).Router()

	rec := do(t, h, http.MethodPost, "/v1/estimate", `{"meetings_needed": 10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res estimate.Result
	decodeBody(t, rec, &res)
	assert.Equal(t, 5034, res.Stages.LeadsToSource)
	assert.InDelta(t, 410.8641, res.Summary.TotalCost, 1e-3)
	assert.Len(t, res.LineItems, 5)
}

func TestEstimate_ServerDefaults(t *testing.T) {
	t.Parallel()
	s := NewServer(Options{})
	s.headcount.Include = true
	s.headcount.SDRCount = 1
	s.headcount.SDRMonthlyCost = 4000

	rec := do(t, s.Router(), http.MethodPost, "/v1/estimate", `{"meetings_needed": 10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res estimate.Result
	decodeBody(t, rec, &res)
	require.NotNil(t, res.Summary.Headcount)
	assert.InDelta(t, 4000, res.Summary.Headcount.HeadcountCost, 1e-9)
}

func TestEstimate_Errors(t *testing.T) {
	t.Parallel()
	h := NewServer(Options{}).Router()

	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"bad json", `{"meetings_needed":`, http.StatusBadRequest, "invalid request body"},
		{"unknown field", `{"meetings": 10}`, http.StatusBadRequest, "invalid request body"},
		{"invalid rate", `{"meetings_needed": 10, "conversion_rates": {"reply_rate": -1}}`, http.StatusUnprocessableEntity, "reply_rate"},
		{"zero rate", `{"meetings_needed": 10, "conversion_rates": {"meeting_set_rate": 0}}`, http.StatusUnprocessableEntity, "meeting_set_rate"},
		{"invalid target", `{"meetings_needed": 0}`, http.StatusUnprocessableEntity, "meetings"},
		{
			"missing vendor",
			`{"meetings_needed": 10, "providers": {"email_finding": "ghost", "email_sending": "instantly"}}`,
			http.StatusUnprocessableEntity, "ghost",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, h, http.MethodPost, "/v1/estimate", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]string
			decodeBody(t, rec, &body)
			assert.Contains(t, body["error"], tt.msg)
		})
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()
	h := NewServer(Options{}).Router()

	body := `{
		"total_contacts": 1000,
		"config": {
			"name": "emails",
			"category": "email_finding",
			"enabled": true,
			"steps": [
				{"provider_id": "icypeas", "order": 2, "expected_coverage_rate": 0.5},
				{"provider_id": "leadmagic", "order": 1, "expected_coverage_rate": 0.6}
			]
		}
	}`
	rec := do(t, h, http.MethodPost, "/v1/waterfalls/analyze", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var a waterfall.Analysis
	decodeBody(t, rec, &a)
	assert.Equal(t, 800, a.TotalFound)
	assert.InDelta(t, 0.8, a.TotalCoverageRate, 1e-9)
	require.Len(t, a.Steps, 2)
	assert.Equal(t, "leadmagic", a.Steps[0].VendorID)

	rec = do(t, h, http.MethodPost, "/v1/waterfalls/analyze", `{"preset": "email_finding_cost_optimized", "total_contacts": 100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &a)
	assert.Equal(t, []string{"findymail"}, a.SkippedSteps)
}

func TestAnalyze_Errors(t *testing.T) {
	t.Parallel()
	h := NewServer(Options{}).Router()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"nothing to analyze", `{"total_contacts": 10}`, http.StatusBadRequest},
		{"negative contacts", `{"preset": "phone_finding_standard", "total_contacts": -1}`, http.StatusBadRequest},
		{"unknown preset", `{"preset": "nope", "total_contacts": 10}`, http.StatusNotFound},
		{"invalid config", `{"config": {"category": "fax_finding"}, "total_contacts": 10}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, h, http.MethodPost, "/v1/waterfalls/analyze", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()
	h := NewServer(Options{}).Router()

	rec := do(t, h, http.MethodPost, "/v1/waterfalls/compare",
		`{"preset": "email_finding_max_coverage", "total_contacts": 1000, "provider_id": "leadmagic"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Analysis   waterfall.Analysis   `json:"analysis"`
		Comparison waterfall.Comparison `json:"comparison"`
	}
	decodeBody(t, rec, &body)
	assert.InDelta(t, 0.65, body.Comparison.Single.Coverage, 1e-9)
	assert.InDelta(t, 24.0, body.Comparison.Single.Cost, 1e-9)

	rec = do(t, h, http.MethodPost, "/v1/waterfalls/compare",
		`{"preset": "email_finding_max_coverage", "total_contacts": 1000, "provider_id": "ghost"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/waterfalls/compare",
		`{"preset": "email_finding_max_coverage", "total_contacts": 1000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	h := NewServer(Options{RateLimit: 0.001, Burst: 2}).Router()

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/rates", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/rates", "").Code)

	rec := do(t, h, http.MethodGet, "/v1/rates", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// health is outside the limited group
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)
}

func TestClientLimiter_EvictsIdle(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewClientLimiter(1, 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.Equal(t, 2, l.Len())

	now = now.Add(idleClientTTL + time.Second)
	assert.True(t, l.Allow("c"))
	assert.Equal(t, 1, l.Len())
}

func TestCORS(t *testing.T) {
	t.Parallel()
	h := NewServer(Options{AllowedOrigins: []string{"https://app.example.com"}}).Router()

	req := httptest.NewRequest(http.MethodOptions, "/v1/estimate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
