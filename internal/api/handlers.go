// Package api exposes the analysis service over HTTP: analysis intake,
// report reads at either access tier, and report listing.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tonyback0101-cmyk/seeqi/internal/feature"
	"github.com/tonyback0101-cmyk/seeqi/internal/genproxy"
	"github.com/tonyback0101-cmyk/seeqi/internal/pipeline"
	"github.com/tonyback0101-cmyk/seeqi/internal/report"
	"github.com/tonyback0101-cmyk/seeqi/internal/storage"
	"github.com/tonyback0101-cmyk/seeqi/internal/view"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Analyzer runs one analysis request.
type Analyzer interface {
	Analyze(ctx context.Context, req pipeline.Request) (report.Report, pipeline.Metadata, error)
}

// ReportReader loads and lists stored reports.
type ReportReader interface {
	GetReport(id string) (report.Report, error)
	ListReports(limit int) ([]storage.ReportMeta, error)
}

// AccessResolver computes the caller's access tier for a report. The real
// implementation lives with the payment collaborator; QueryResolver is the
// development default.
type AccessResolver interface {
	Resolve(r *http.Request, reportID string) view.AccessLevel
}

// QueryResolver trusts the ?view= query parameter. Anything except "full"
// resolves to preview.
type QueryResolver struct{}

func (QueryResolver) Resolve(r *http.Request, _ string) view.AccessLevel {
	if r.URL.Query().Get("view") == string(view.AccessFull) {
		return view.AccessFull
	}
	return view.AccessPreview
}

// Deps carries the handler dependencies.
type Deps struct {
	Analyzer Analyzer
	Reports  ReportReader
	Access   AccessResolver
	Token    string
}

// NewHandler returns the service's HTTP handler.
func NewHandler(deps Deps) http.Handler {
	if deps.Access == nil {
		deps.Access = QueryResolver{}
	}

	r := chi.NewRouter()
	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))
		r.Post("/v1/analyses", handleAnalyze(deps))
		r.Get("/v1/reports", handleListReports(deps))
		r.Get("/v1/reports/{id}", handleGetReport(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// AnalyzeRequest is the analysis intake payload.
type AnalyzeRequest struct {
	Palm     feature.PalmFeatures   `json:"palm"`
	Tongue   feature.TongueFeatures `json:"tongue"`
	Dream    feature.DreamNarrative `json:"dream"`
	Locale   string                 `json:"locale"`
	Timezone string                 `json:"timezone"`
}

// AnalyzeResponse returns the new report identifier and full payload.
type AnalyzeResponse struct {
	ReportID string        `json:"report_id"`
	Report   report.Report `json:"report"`
}

func handleAnalyze(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request", userMessage("invalid_request", req.Locale))
			return
		}
		if req.Locale == "" {
			req.Locale = "en"
		}

		rep, meta, err := deps.Analyzer.Analyze(r.Context(), pipeline.Request{
			Features: feature.Set{Palm: req.Palm, Tongue: req.Tongue, Dream: req.Dream},
			Locale:   req.Locale,
			Timezone: req.Timezone,
		})
		if err != nil {
			writeAnalysisError(w, err, req.Locale)
			return
		}

		slog.Debug("analysis served",
			"report_id", rep.ID,
			"duration_ms", meta.AnalysisDurationMs,
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(AnalyzeResponse{ReportID: rep.ID, Report: rep})
	}
}

// writeAnalysisError maps the pipeline error taxonomy to HTTP responses.
// Only catalog text reaches the body.
func writeAnalysisError(w http.ResponseWriter, err error, locale string) {
	var qe *feature.QualityError
	var gerr *genproxy.Error
	var pe *pipeline.PersistenceError

	switch {
	case errors.As(err, &qe):
		httpError(w, http.StatusUnprocessableEntity, "input_quality", userMessage("input_quality", locale))
	case errors.As(err, &gerr):
		slog.Error("generation failure", "stage", gerr.Stage, "reason", string(gerr.Reason))
		httpError(w, http.StatusBadGateway, "generation_failure", userMessage("generation_failure", locale))
	case errors.As(err, &pe):
		slog.Error("persistence failure", "error", pe.Err)
		httpError(w, http.StatusInternalServerError, "persistence_failure", userMessage("persistence_failure", locale))
	default:
		slog.Error("analysis failure", "error", err)
		httpError(w, http.StatusInternalServerError, "internal_error", userMessage("generation_failure", locale))
	}
}

func handleGetReport(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		rep, err := deps.Reports.GetReport(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", userMessage("not_found", r.URL.Query().Get("locale")))
			return
		}
		if err != nil {
			slog.Error("report read failure", "report_id", id, "error", err)
			httpError(w, http.StatusInternalServerError, "internal_error", userMessage("persistence_failure", ""))
			return
		}

		level := deps.Access.Resolve(r, id)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(view.Derive(rep, level))
	}
}

func handleListReports(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		list, err := deps.Reports.ListReports(limit)
		if err != nil {
			slog.Error("report list failure", "error", err)
			httpError(w, http.StatusInternalServerError, "internal_error", userMessage("persistence_failure", ""))
			return
		}
		if list == nil {
			list = []storage.ReportMeta{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"reports": list})
	}
}

// httpError writes the stable error body shape.
func httpError(w http.ResponseWriter, status int, class string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"type":    class,
			"message": fmt.Sprintf(format, args...),
		},
	})
}
