package handlers

import (
	"net/http"
	"strings"

	"github.com/nikbrunner/nexus/internal/ai"
	"github.com/nikbrunner/nexus/internal/httpserver/deps"
)

type analyzeRequest struct {
	URL string `json:"url"`
}

type analyzeResponse struct {
	ai.Analysis
	Error string `json:"error,omitempty"`
}

// Analyze answers 200 with either real or fallback metadata. Enrichment
// failures are reported in the body, never as a server error.
func Analyze(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		url := strings.TrimSpace(req.URL)
		if url == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		var result ai.Analysis
		if d.Analyzer == nil {
			result = ai.Analysis{URL: url, Metadata: ai.Fallback(), Fallback: true, Err: ai.ErrNoAPIKey}
		} else {
			result = d.Analyzer.Analyze(r.Context(), url)
		}

		resp := analyzeResponse{Analysis: result}
		if result.Err != nil {
			resp.Error = result.Err.Error()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
