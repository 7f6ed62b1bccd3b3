package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/cenipa-dashboard/internal/dashboard"
	"github.com/couchcryptid/cenipa-dashboard/internal/dataset"
	"github.com/couchcryptid/cenipa-dashboard/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dashboard computes views for the HTTP surfaces. *dashboard.Service implements it.
type Dashboard interface {
	Compute(ctx context.Context, q url.Values, surface string) (dashboard.Result, error)
	Dataset(ctx context.Context) (*dataset.Dataset, error)
	Years() dashboard.YearRange
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dashboard page, its JSON and GeoJSON feeds, and the
// health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	dash       Dashboard
	logger     *slog.Logger
}

// NewServer creates an HTTP server bound to addr.
func NewServer(addr string, dash Dashboard, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      requestLogger(logger, mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dash:   dash,
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/view", s.handleView)
	mux.HandleFunc("GET /api/points", s.handlePoints)
	mux.HandleFunc("GET /api/classifications", s.handleClassifications)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(dash))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	res, ok := s.compute(w, r, dashboard.SurfacePage)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "base", newPageData(res, s.dash.Years())); err != nil {
		s.logger.Error("render dashboard page", "error", err, "request_id", RequestID(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	res, ok := s.compute(w, r, dashboard.SurfaceView)
	if !ok {
		return
	}
	if notModified(w, r, res.ETag()) {
		return
	}
	writeJSON(w, http.StatusOK, newViewResponse(res))
}

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	res, ok := s.compute(w, r, dashboard.SurfacePoints)
	if !ok {
		return
	}
	if notModified(w, r, res.ETag()) {
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dashboard.GeoJSON(res.View.Points)) //nolint:errcheck // client went away
}

func (s *Server) handleClassifications(w http.ResponseWriter, r *http.Request) {
	ds, err := s.dash.Dataset(r.Context())
	if err != nil {
		s.unavailable(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, classificationsResponse{
		Classifications: ds.Classifications(),
		Years:           ds.Years(),
	})
}

// compute builds the view for r, answering 503 itself when the dataset is unavailable.
func (s *Server) compute(w http.ResponseWriter, r *http.Request, surface string) (dashboard.Result, bool) {
	res, err := s.dash.Compute(r.Context(), r.URL.Query(), surface)
	if err != nil {
		s.unavailable(w, r, err)
		return dashboard.Result{}, false
	}
	return res, true
}

func (s *Server) unavailable(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("dataset unavailable", "error", err, "request_id", RequestID(r.Context()))
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "dataset unavailable"})
}

// notModified sets the ETag and answers 304 when the client already holds it.
func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && (match == etag || match == "*") {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

type datasetInfo struct {
	Checksum string    `json:"checksum"`
	LoadedAt time.Time `json:"loaded_at"`
	Rows     int       `json:"rows"`
}

type tableRow struct {
	ID string `json:"codigo_ocorrencia"`
	domain.Occurrence
}

type viewResponse struct {
	Year          int         `json:"year"`
	Labels        []string    `json:"labels"`
	ShowTable     bool        `json:"table"`
	Count         int         `json:"count"`
	Summary       string      `json:"summary"`
	Caption       string      `json:"caption"`
	Points        int         `json:"points"`
	SkippedPoints int         `json:"skipped_points"`
	Rows          []tableRow  `json:"rows,omitempty"`
	Dataset       datasetInfo `json:"dataset"`
}

func newViewResponse(res dashboard.Result) viewResponse {
	v := res.View
	resp := viewResponse{
		Year:          v.Year,
		Labels:        v.Labels,
		ShowTable:     res.Params.ShowTable,
		Count:         v.Count,
		Summary:       v.Summary,
		Caption:       v.Caption,
		Points:        len(v.Points),
		SkippedPoints: v.SkippedPoints,
		Dataset: datasetInfo{
			Checksum: res.Dataset.Checksum(),
			LoadedAt: res.Dataset.LoadedAt(),
			Rows:     res.Dataset.Len(),
		},
	}
	if resp.Labels == nil {
		resp.Labels = []string{}
	}
	for _, o := range v.Table {
		resp.Rows = append(resp.Rows, tableRow{ID: o.ID, Occurrence: o})
	}
	return resp
}

type classificationsResponse struct {
	Classifications []string `json:"classifications"`
	Years           []int    `json:"years"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
