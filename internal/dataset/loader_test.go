package dataset

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/cenipa-dashboard/internal/domain"
	"github.com/couchcryptid/cenipa-dashboard/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePath = "testdata/ocorrencias.csv"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLoader(path string, geocoder domain.Geocoder) (*Loader, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	return NewLoader(path, geocoder, discardLogger(), metrics), metrics
}

// writeFixture writes a variant of the fixture with edit applied to its text.
func writeFixture(t *testing.T, edit func(string) string) string {
	t.Helper()
	data, err := os.ReadFile(fixturePath)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "ocorrencias.csv")
	require.NoError(t, os.WriteFile(path, []byte(edit(string(data))), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	defer domain.SetClock(nil)

	loader, metrics := newTestLoader(fixturePath, nil)

	ds, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 6, ds.Len())
	assert.Equal(t, fixturePath, ds.Source())
	assert.Equal(t, fixed, ds.LoadedAt())
	assert.NotEmpty(t, ds.Checksum())
	assert.Equal(t, []string{
		"201605121234501", "201703051430001", "201708200900002",
		"201711301845003", "201702140700004", "201801011200005",
	}, ds.IDs())
	assert.Equal(t, []string{"INCIDENTE", "ACIDENTE", "INCIDENTE GRAVE"}, ds.Classifications())
	assert.Equal(t, []int{2016, 2017, 2018}, ds.Years())
	assert.Equal(t, domain.Columns, ds.Columns())

	assert.Equal(t, float64(6), testutil.ToFloat64(metrics.DatasetRows))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DatasetLoads.WithLabelValues("success")))
}

func TestLoader_TimestampReconstruction(t *testing.T) {
	loader, _ := newTestLoader(fixturePath, nil)
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	o, ok := ds.Lookup("201703051430001")
	require.True(t, ok)
	assert.Equal(t, time.Date(2017, 3, 5, 14, 30, 0, 0, time.UTC), o.Date)

	// day-first date without seconds
	o, ok = ds.Lookup("201708200900002")
	require.True(t, ok)
	assert.Equal(t, time.Date(2017, 8, 20, 9, 0, 0, 0, time.UTC), o.Date)
}

func TestLoader_ProjectsWhitelistedColumns(t *testing.T) {
	loader, _ := newTestLoader(fixturePath, nil)
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	o, ok := ds.Lookup("201708200900002")
	require.True(t, ok)

	assert.Equal(t, "INCIDENTE GRAVE", o.Classification)
	assert.Equal(t, "COLISÃO COM AVE, EM SOLO", o.Type)
	assert.Equal(t, "COLISÃO COM FAUNA", o.TypeCategory)
	assert.Equal(t, "BIRD", o.TypeICAO)
	assert.Equal(t, "SBRJ", o.Aerodrome)
	assert.Equal(t, "RIO DE JANEIRO", o.City)
	assert.Equal(t, "ATIVA", o.Status)
	assert.Empty(t, o.ReportNumber)
	assert.Equal(t, 2, o.AircraftInvolved)
	assert.Nil(t, o.Latitude, "sentinel coordinates are kept as missing")
	assert.Nil(t, o.Longitude)
}

func TestLoader_MissingFile(t *testing.T) {
	loader, metrics := newTestLoader(filepath.Join(t.TempDir(), "nope.csv"), nil)

	ds, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.Nil(t, ds)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "nope.csv")
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DatasetLoads.WithLabelValues("error")))
}

func TestLoader_EmptyFile(t *testing.T) {
	path := writeFixture(t, func(string) string { return "" })
	loader, _ := newTestLoader(path, nil)

	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoader_MissingColumn(t *testing.T) {
	path := writeFixture(t, func(s string) string {
		return strings.Replace(s, "investigacao_status", "status_investigacao", 1)
	})
	loader, _ := newTestLoader(path, nil)

	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingColumn))
	assert.Contains(t, err.Error(), "investigacao_status")
}

func TestLoader_DuplicateIdentifier(t *testing.T) {
	path := writeFixture(t, func(s string) string {
		return strings.Replace(s, "201801011200005", "201605121234501", 1)
	})
	loader, _ := newTestLoader(path, nil)

	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateID))
	assert.Contains(t, err.Error(), "line 7")
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoader_UnparseableTimestampFailsWholeLoad(t *testing.T) {
	path := writeFixture(t, func(s string) string {
		return strings.Replace(s, "2017-11-30,18:45:00", "2017-11-31,18:45:00", 1)
	})
	loader, _ := newTestLoader(path, nil)

	ds, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.Nil(t, ds)
	assert.True(t, errors.Is(err, domain.ErrTimestamp))
	assert.Contains(t, err.Error(), "line 5")
}

func TestLoader_ChecksumTracksContent(t *testing.T) {
	loaderA, _ := newTestLoader(fixturePath, nil)
	a, err := loaderA.Load(context.Background())
	require.NoError(t, err)

	loaderB, _ := newTestLoader(writeFixture(t, func(s string) string { return s }), nil)
	b, err := loaderB.Load(context.Background())
	require.NoError(t, err)

	loaderC, _ := newTestLoader(writeFixture(t, func(s string) string {
		return strings.Replace(s, "GUARULHOS", "GUARULHOS ", 1)
	}), nil)
	c, err := loaderC.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Checksum(), b.Checksum())
	assert.NotEqual(t, a.Checksum(), c.Checksum())
}

type stubGeocoder struct {
	calls atomic.Int32
}

func (s *stubGeocoder) ForwardGeocode(_ context.Context, city, _ string) (domain.GeocodingResult, error) {
	s.calls.Add(1)
	if city == "CAMPINAS" {
		return domain.GeocodingResult{Lat: -23.0074, Lon: -47.1345}, nil
	}
	return domain.GeocodingResult{}, nil
}

func TestLoader_GeocodesMissingCoordinates(t *testing.T) {
	geo := &stubGeocoder{}
	loader, metrics := newTestLoader(fixturePath, geo)

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	campinas, _ := ds.Lookup("201702140700004")
	require.NotNil(t, campinas.Latitude)
	assert.Equal(t, -23.0074, *campinas.Latitude)

	rio, _ := ds.Lookup("201708200900002")
	assert.Nil(t, rio.Latitude)

	assert.Equal(t, int32(2), geo.calls.Load(), "only rows without coordinates are geocoded")
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.GeocodeRequests.WithLabelValues(domain.GeoResolved)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.GeocodeRequests.WithLabelValues(domain.GeoEmpty)))
}

// --- dataset ---

func TestDataset_RowsReturnsCopy(t *testing.T) {
	loader, _ := newTestLoader(fixturePath, nil)
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	rows := ds.Rows()
	rows[0].Classification = "ALTERADO"
	labels := ds.Classifications()
	labels[0] = "ALTERADO"

	o, _ := ds.Lookup(rows[0].ID)
	assert.Equal(t, "INCIDENTE", o.Classification)
	assert.Equal(t, "INCIDENTE", ds.Classifications()[0])
}

func TestDataset_Filter(t *testing.T) {
	loader, _ := newTestLoader(fixturePath, nil)
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	before := ds.Rows()

	got := ds.Filter(2017, []string{"ACIDENTE"})
	ids := make([]string, len(got))
	for i, o := range got {
		ids[i] = o.ID
	}

	assert.Equal(t, []string{"201703051430001", "201702140700004"}, ids)
	assert.Empty(t, ds.Filter(2017, nil))
	if diff := cmp.Diff(before, ds.Rows()); diff != "" {
		t.Errorf("dataset mutated by filter (-want +got):\n%s", diff)
	}
}

func TestDataset_HasClassification(t *testing.T) {
	ds := New("mem", "0", time.Time{}, []domain.Occurrence{{ID: "1", Classification: "ACIDENTE"}})

	assert.True(t, ds.HasClassification("ACIDENTE"))
	assert.False(t, ds.HasClassification("INCIDENTE"))
}

func TestDataset_LookupMissing(t *testing.T) {
	ds := New("mem", "0", time.Time{}, nil)

	_, ok := ds.Lookup("x")
	assert.False(t, ok)
	assert.Empty(t, ds.Years())
	assert.Empty(t, ds.Classifications())
}

// --- cache ---

type countingSource struct {
	calls atomic.Int32
	ds    *Dataset
	err   error
}

func (s *countingSource) Load(_ context.Context) (*Dataset, error) {
	s.calls.Add(1)
	return s.ds, s.err
}

func TestCache_LoadsOnce(t *testing.T) {
	loader, _ := newTestLoader(fixturePath, nil)
	cache := NewCache(loader)

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	second, err := cache.Get(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.Columns(), second.Columns())
	assert.Equal(t, first.IDs(), second.IDs())
}

func TestCache_ConcurrentFirstCallsShareOneLoad(t *testing.T) {
	src := &countingSource{ds: New("mem", "0", time.Time{}, nil)}
	cache := NewCache(src)

	var wg sync.WaitGroup
	results := make([]*Dataset, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = cache.Get(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	for _, ds := range results {
		assert.Same(t, src.ds, ds)
	}
}

func TestCache_ErrorIsPermanent(t *testing.T) {
	src := &countingSource{err: errors.New("disk on fire")}
	cache := NewCache(src)

	_, err1 := cache.Get(context.Background())
	_, err2 := cache.Get(context.Background())

	require.Error(t, err1)
	assert.Equal(t, err1, err2)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestCache_CheckReadiness(t *testing.T) {
	t.Run("before load", func(t *testing.T) {
		cache := NewCache(&countingSource{})
		err := cache.CheckReadiness(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not been loaded")
	})

	t.Run("after success", func(t *testing.T) {
		cache := NewCache(&countingSource{ds: New("mem", "0", time.Time{}, nil)})
		_, _ = cache.Get(context.Background())
		assert.NoError(t, cache.CheckReadiness(context.Background()))
	})

	t.Run("after failure", func(t *testing.T) {
		cache := NewCache(&countingSource{err: errors.New("boom")})
		_, _ = cache.Get(context.Background())
		err := cache.CheckReadiness(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestDataset_YearsSorted(t *testing.T) {
	rows := []domain.Occurrence{
		{ID: "a", Date: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Date: time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "c", Date: time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	years := New("mem", "0", time.Time{}, rows).Years()
	assert.True(t, sort.IntsAreSorted(years))
	assert.Equal(t, []int{2009, 2018}, years)
}
