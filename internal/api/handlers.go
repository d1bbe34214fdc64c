package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/outbound-cli/internal/catalog"
	"github.com/sells-group/outbound-cli/internal/cost"
	"github.com/sells-group/outbound-cli/internal/estimate"
	"github.com/sells-group/outbound-cli/internal/funnel"
	"github.com/sells-group/outbound-cli/internal/rates"
	"github.com/sells-group/outbound-cli/internal/waterfall"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok", "vendors": s.catalog.Len()})
}

func (s *Server) handleVendors(w http.ResponseWriter, r *http.Request) {
	if c := r.URL.Query().Get("category"); c != "" {
		cat := catalog.Category(c)
		if !cat.Valid() {
			respondError(w, http.StatusBadRequest, "unknown category "+c)
			return
		}
		respondJSON(w, http.StatusOK, s.catalog.ByCategory(cat))
		return
	}
	respondJSON(w, http.StatusOK, s.catalog.Vendors())
}

func (s *Server) handleVendor(w http.ResponseWriter, r *http.Request) {
	v, ok := s.catalog.Vendor(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "vendor not found")
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (s *Server) handleRates(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"defaults":    rates.Defaults(),
		"assumptions": rates.Assumptions(),
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.presets)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	// Rates the body leaves out keep their defaults; an explicit 0 is
	// rejected by the estimator.
	in := estimate.Input{Rates: rates.Defaults()}
	if !decode(w, r, &in) {
		return
	}
	if in.Vendors == (cost.Selection{}) {
		in.Vendors = estimate.DefaultSelection()
	}
	if in.Infrastructure == (cost.Infrastructure{}) {
		in.Infrastructure = s.infra
	}
	if in.Headcount == (cost.Headcount{}) {
		in.Headcount = s.headcount
	}

	res, err := s.estimator.Estimate(in)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type analyzeRequest struct {
	Preset        string            `json:"preset,omitempty"`
	Config        *waterfall.Config `json:"config,omitempty"`
	TotalContacts int               `json:"total_contacts"`
	VendorID      string            `json:"provider_id,omitempty"`
}

// waterfall resolves the request's inline config or named preset.
func (s *Server) waterfall(req analyzeRequest) (waterfall.Config, int, string) {
	if req.TotalContacts < 0 {
		return waterfall.Config{}, http.StatusBadRequest, "total_contacts must be >= 0"
	}
	switch {
	case req.Config != nil:
		if err := req.Config.Validate(); err != nil {
			return waterfall.Config{}, http.StatusUnprocessableEntity, err.Error()
		}
		return *req.Config, 0, ""
	case req.Preset != "":
		cfg, ok := s.presets[req.Preset]
		if !ok {
			return waterfall.Config{}, http.StatusNotFound, "preset not found"
		}
		return cfg, 0, ""
	}
	return waterfall.Config{}, http.StatusBadRequest, "config or preset is required"
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}
	cfg, status, msg := s.waterfall(req)
	if status != 0 {
		respondError(w, status, msg)
		return
	}
	respondJSON(w, http.StatusOK, s.estimator.Analyzer().Analyze(cfg, req.TotalContacts))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}
	if req.VendorID == "" {
		respondError(w, http.StatusBadRequest, "provider_id is required")
		return
	}
	cfg, status, msg := s.waterfall(req)
	if status != 0 {
		respondError(w, status, msg)
		return
	}

	analyzer := s.estimator.Analyzer()
	analysis := analyzer.Analyze(cfg, req.TotalContacts)
	cmp, err := analyzer.Compare(analysis, req.VendorID, req.TotalContacts)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"analysis":   analysis,
		"comparison": cmp,
	})
}

// statusFor maps engine errors to HTTP statuses. Configuration mistakes in
// a well-formed request are 422.
func statusFor(err error) int {
	switch {
	case errors.Is(err, rates.ErrInvalidRate),
		errors.Is(err, cost.ErrMissingVendor),
		errors.Is(err, funnel.ErrInvalidTarget),
		errors.Is(err, waterfall.ErrUnknownVendor):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
