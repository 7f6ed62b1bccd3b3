// Package dashboard turns the cached occurrence dataset and a parameter tuple
// (year, classification labels, table visibility) into the view rendered by
// every display surface.
package dashboard

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/couchcryptid/cenipa-dashboard/internal/config"
	"github.com/couchcryptid/cenipa-dashboard/internal/dataset"
)

// Query parameter names.
const (
	ParamYear  = "year"
	ParamLabel = "label"
	ParamTable = "table"
)

// YearRange is the inclusive range offered by the year selector.
type YearRange struct {
	Min int
	Max int
}

// YearRangeFrom reads the selector range from configuration.
func YearRangeFrom(cfg *config.Config) YearRange {
	return YearRange{Min: cfg.YearMin, Max: cfg.YearMax}
}

// Clamp pins year into the range.
func (r YearRange) Clamp(year int) int {
	return min(max(year, r.Min), r.Max)
}

// Years lists every selectable year in ascending order.
func (r YearRange) Years() []int {
	years := make([]int, 0, r.Max-r.Min+1)
	for y := r.Min; y <= r.Max; y++ {
		years = append(years, y)
	}
	return years
}

// Params is one user parameter tuple.
type Params struct {
	Year      int
	Labels    []string
	ShowTable bool
}

// DefaultParams returns the initial selection: the configured default year,
// the configured default labels that actually occur in ds, and a hidden table.
func DefaultParams(ds *dataset.Dataset, cfg *config.Config) Params {
	labels := make([]string, 0, len(cfg.DefaultLabels))
	for _, l := range cfg.DefaultLabels {
		if ds.HasClassification(l) && !slices.Contains(labels, l) {
			labels = append(labels, l)
		}
	}
	return Params{Year: cfg.YearDefault, Labels: labels}
}

// ParseParams reads a parameter tuple from query values, falling back to
// defaults for anything absent. An unparseable year falls back to the default
// and a parseable one is clamped into years. A present "label" key is an
// explicit selection even when every value is empty, so a user can clear the
// selection; empty values are dropped and duplicates collapsed.
func ParseParams(q url.Values, defaults Params, years YearRange) Params {
	p := Params{
		Year:      defaults.Year,
		Labels:    slices.Clone(defaults.Labels),
		ShowTable: defaults.ShowTable,
	}

	if q.Has(ParamYear) {
		if y, err := strconv.Atoi(strings.TrimSpace(q.Get(ParamYear))); err == nil {
			p.Year = years.Clamp(y)
		}
	}

	if q.Has(ParamLabel) {
		p.Labels = make([]string, 0, len(q[ParamLabel]))
		for _, l := range q[ParamLabel] {
			l = strings.TrimSpace(l)
			if l == "" || slices.Contains(p.Labels, l) {
				continue
			}
			p.Labels = append(p.Labels, l)
		}
	}

	if q.Has(ParamTable) {
		p.ShowTable = truthy(q.Get(ParamTable))
	}

	return p
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on":
		return true
	default:
		return false
	}
}

// Query encodes p back into query values. The "label" key is always present
// so an empty selection round-trips.
func (p Params) Query() url.Values {
	q := url.Values{}
	q.Set(ParamYear, strconv.Itoa(p.Year))
	if len(p.Labels) == 0 {
		q.Set(ParamLabel, "")
	}
	for _, l := range p.Labels {
		q.Add(ParamLabel, l)
	}
	if p.ShowTable {
		q.Set(ParamTable, "1")
	}
	return q
}

// Canonical is a stable encoding of p. Label order is kept since it shapes
// the caption.
func (p Params) Canonical() string {
	return p.Query().Encode()
}
