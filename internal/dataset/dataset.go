// Package dataset loads the CENIPA occurrence file into an immutable,
// identifier-indexed, in-memory dataset and memoizes it for the process lifetime.
package dataset

import (
	"slices"
	"sort"
	"time"

	"github.com/couchcryptid/cenipa-dashboard/internal/domain"
)

// Dataset is the full, read-only set of occurrences loaded from one file.
// Nothing in this package or its callers mutates it after Load returns.
type Dataset struct {
	source          string
	checksum        string
	loadedAt        time.Time
	rows            []domain.Occurrence
	index           map[string]int
	classifications []string
}

// New builds a Dataset from already-parsed rows. It is used by Load and by
// tests; rows must have unique IDs.
func New(source, checksum string, loadedAt time.Time, rows []domain.Occurrence) *Dataset {
	index := make(map[string]int, len(rows))
	for i, o := range rows {
		index[o.ID] = i
	}
	return &Dataset{
		source:          source,
		checksum:        checksum,
		loadedAt:        loadedAt,
		rows:            rows,
		index:           index,
		classifications: domain.Classifications(rows),
	}
}

// Source is the path the dataset was read from.
func (d *Dataset) Source() string { return d.source }

// Checksum is the xxhash64 digest of the source file, hex encoded.
func (d *Dataset) Checksum() string { return d.checksum }

// LoadedAt is when the file finished loading.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Len is the number of occurrences.
func (d *Dataset) Len() int { return len(d.rows) }

// Columns is the projected column set, in table order.
func (d *Dataset) Columns() []string { return slices.Clone(domain.Columns) }

// Rows returns a copy of all occurrences in file order.
func (d *Dataset) Rows() []domain.Occurrence { return slices.Clone(d.rows) }

// Lookup finds an occurrence by identifier.
func (d *Dataset) Lookup(id string) (domain.Occurrence, bool) {
	i, ok := d.index[id]
	if !ok {
		return domain.Occurrence{}, false
	}
	return d.rows[i], true
}

// IDs returns every identifier in file order.
func (d *Dataset) IDs() []string {
	ids := make([]string, len(d.rows))
	for i, o := range d.rows {
		ids[i] = o.ID
	}
	return ids
}

// Classifications returns the discovered labels in order of first appearance.
func (d *Dataset) Classifications() []string { return slices.Clone(d.classifications) }

// HasClassification reports whether label occurs in the data.
func (d *Dataset) HasClassification(label string) bool {
	return slices.Contains(d.classifications, label)
}

// Years returns the distinct occurrence years in ascending order.
func (d *Dataset) Years() []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, o := range d.rows {
		y := o.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Filter returns the occurrences of year whose classification is in labels.
// The result is a new slice; the dataset is untouched.
func (d *Dataset) Filter(year int, labels []string) []domain.Occurrence {
	return domain.Filter(d.rows, year, labels)
}
