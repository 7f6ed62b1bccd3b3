package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMissingColumn is returned when a required source column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrDuplicateID is returned when two rows share the same identifier.
	ErrDuplicateID = errors.New("duplicate occurrence identifier")
	// ErrTimestamp is returned when a date and time of day do not combine into a timestamp.
	ErrTimestamp = errors.New("unparseable occurrence timestamp")
)

// timestampLayouts are tried in order against "<date> <time>".
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

// Header locates source columns by name within a CSV row.
type Header map[string]int

// NewHeader indexes a CSV header row and checks that every required column
// is present. Surrounding whitespace and a UTF-8 BOM on the first name are ignored.
func NewHeader(names []string) (Header, error) {
	h := make(Header, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	for _, col := range RequiredColumns() {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return h, nil
}

// Get returns the trimmed value of the named column, or "" when the column
// is unknown or the row is short.
func (h Header) Get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseRow projects a CSV row onto an Occurrence. Only the timestamp can fail;
// coordinates and counts degrade to nil and zero.
func ParseRow(h Header, row []string) (Occurrence, error) {
	date, err := ParseTimestamp(h.Get(row, "ocorrencia_dia"), h.Get(row, TimeColumn))
	if err != nil {
		return Occurrence{}, err
	}

	return Occurrence{
		ID:               h.Get(row, IDColumn),
		Latitude:         parseCoordinate(h.Get(row, "ocorrencia_latitude")),
		Longitude:        parseCoordinate(h.Get(row, "ocorrencia_longitude")),
		Date:             date,
		Classification:   h.Get(row, "ocorrencia_classificacao"),
		Type:             h.Get(row, "ocorrencia_tipo"),
		TypeCategory:     h.Get(row, "ocorrencia_tipo_categoria"),
		TypeICAO:         h.Get(row, "ocorrencia_tipo_icao"),
		Aerodrome:        h.Get(row, "ocorrencia_aerodromo"),
		City:             h.Get(row, "ocorrencia_cidade"),
		Status:           h.Get(row, "investigacao_status"),
		ReportNumber:     h.Get(row, "divulgacao_relatorio_numero"),
		AircraftInvolved: parseCount(h.Get(row, "total_aeronaves_envolvidas")),
	}, nil
}

// ParseTimestamp joins a date and a time of day with a single space and
// parses the result in UTC, e.g. ("2017-03-05", "14:30:00") → 2017-03-05T14:30:00Z.
func ParseTimestamp(date, timeOfDay string) (time.Time, error) {
	combined := strings.TrimSpace(date) + " " + strings.TrimSpace(timeOfDay)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, combined, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrTimestamp, combined)
}

// parseCoordinate parses a decimal degree value. Empty, sentinel ("***") and
// non-finite values yield nil. A decimal comma is accepted.
func parseCoordinate(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseCount parses a non-negative integer, returning 0 on failure.
func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
