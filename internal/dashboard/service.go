package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/couchcryptid/cenipa-dashboard/internal/config"
	"github.com/couchcryptid/cenipa-dashboard/internal/dataset"
	"github.com/couchcryptid/cenipa-dashboard/internal/observability"
)

// Surfaces reported in the views_built_total metric.
const (
	SurfacePage   = "page"
	SurfaceView   = "view"
	SurfacePoints = "points"
)

// DatasetProvider hands out the process-wide dataset. *dataset.Cache implements it.
type DatasetProvider interface {
	Get(ctx context.Context) (*dataset.Dataset, error)
	CheckReadiness(ctx context.Context) error
}

// Result is a computed view together with the inputs that produced it.
type Result struct {
	Dataset  *dataset.Dataset
	Defaults Params
	Params   Params
	View     View
}

// ETag identifies the response for a result: same file, same parameters.
func (r Result) ETag() string {
	return fmt.Sprintf(`"%s-%s"`, r.Dataset.Checksum(), url.QueryEscape(r.Params.Canonical()))
}

// Service computes views on demand from the cached dataset.
type Service struct {
	data    DatasetProvider
	cfg     *config.Config
	years   YearRange
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates a Service reading from data.
func NewService(data DatasetProvider, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		data:    data,
		cfg:     cfg,
		years:   YearRangeFrom(cfg),
		logger:  logger,
		metrics: metrics,
	}
}

// Years is the selectable year range.
func (s *Service) Years() YearRange { return s.years }

// CheckReadiness returns nil once the dataset has loaded.
func (s *Service) CheckReadiness(ctx context.Context) error {
	return s.data.CheckReadiness(ctx)
}

// Dataset returns the cached dataset.
func (s *Service) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	return s.data.Get(ctx)
}

// Compute parses q against the dataset defaults and builds the view for surface.
func (s *Service) Compute(ctx context.Context, q url.Values, surface string) (Result, error) {
	ds, err := s.data.Get(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("get dataset: %w", err)
	}

	defaults := DefaultParams(ds, s.cfg)
	params := ParseParams(q, defaults, s.years)
	view := Build(ds, params)

	s.metrics.ViewsBuilt.WithLabelValues(surface).Inc()
	s.metrics.MatchedRows.Observe(float64(view.Count))
	s.metrics.SkippedPoints.Add(float64(view.SkippedPoints))

	s.logger.Debug("view built",
		"surface", surface,
		"year", params.Year,
		"labels", params.Labels,
		"table", params.ShowTable,
		"count", view.Count,
		"skipped_points", view.SkippedPoints,
	)

	return Result{Dataset: ds, Defaults: defaults, Params: params, View: view}, nil
}
