package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/couchcryptid/cenipa-dashboard/internal/domain"
	"github.com/couchcryptid/cenipa-dashboard/internal/observability"
)

// Loader reads the occurrence file at a fixed path.
type Loader struct {
	path     string
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewLoader creates a Loader for path. Pass a nil geocoder to keep
// coordinates exactly as they appear in the file.
func NewLoader(path string, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		path:     path,
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

// Load reads, projects, and indexes the whole file. Any missing column,
// duplicate identifier, or unparseable timestamp fails the load; no partial
// dataset is returned.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	ds, err := l.load(ctx)
	if err != nil {
		l.metrics.DatasetLoads.WithLabelValues("error").Inc()
		l.logger.Error("dataset load failed", "path", l.path, "error", err)
		return nil, err
	}

	l.metrics.DatasetLoads.WithLabelValues("success").Inc()
	l.metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	l.metrics.DatasetRows.Set(float64(ds.Len()))
	l.logger.Info("dataset loaded",
		"path", l.path,
		"rows", ds.Len(),
		"classifications", ds.Classifications(),
		"checksum", ds.Checksum(),
		"duration", time.Since(start),
	)
	return ds, nil
}

func (l *Loader) load(ctx context.Context) (*Dataset, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	names, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset %s is empty", l.path)
		}
		return nil, fmt.Errorf("read header from %s: %w", l.path, err)
	}
	header, err := domain.NewHeader(names)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", l.path, err)
	}

	rows := make([]domain.Occurrence, 0, bytes.Count(data, []byte{'\n'}))
	seen := make(map[string]int)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", l.path, err)
		}
		line, _ := reader.FieldPos(0)

		o, err := domain.ParseRow(header, record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", l.path, line, err)
		}
		if first, dup := seen[o.ID]; dup {
			return nil, fmt.Errorf("%s line %d: %w %s (first seen on line %d)",
				l.path, line, domain.ErrDuplicateID, strconv.Quote(o.ID), first)
		}
		seen[o.ID] = line

		if l.geocoder != nil {
			var outcome string
			o, outcome = domain.EnrichWithGeocoding(ctx, o, header.Get(record, domain.StateColumn), l.geocoder, l.logger)
			if outcome != domain.GeoSkipped {
				l.metrics.GeocodeRequests.WithLabelValues(outcome).Inc()
			}
		}

		rows = append(rows, o)
	}

	checksum := strconv.FormatUint(xxhash.Sum64(data), 16)
	return New(l.path, checksum, domain.Now(), rows), nil
}
