package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/cenipa-dashboard/internal/dataset"
	"github.com/couchcryptid/cenipa-dashboard/internal/domain"
)

// Point is one map marker.
type Point struct {
	ID             string
	Lat            float64
	Lon            float64
	Classification string
	Type           string
	City           string
	Date           time.Time
}

// View is the filtered result handed to the summary, table, and map surfaces.
// Count always equals len(Rows); Table is Rows when the table is shown and nil
// otherwise; Points holds the rows of Rows with a valid location, and
// SkippedPoints the number of rows left off the map.
type View struct {
	Year          int
	Labels        []string
	Count         int
	Summary       string
	Caption       string
	Rows          []domain.Occurrence
	Table         []domain.Occurrence
	Points        []Point
	SkippedPoints int
}

// Build recomputes the whole view for p. It never modifies ds.
func Build(ds *dataset.Dataset, p Params) View {
	rows := ds.Filter(p.Year, p.Labels)

	v := View{
		Year:    p.Year,
		Labels:  append([]string(nil), p.Labels...),
		Count:   len(rows),
		Summary: Summary(len(rows)),
		Caption: Caption(p.Labels, p.Year),
		Rows:    rows,
		Points:  make([]Point, 0, len(rows)),
	}
	if p.ShowTable {
		v.Table = rows
	}

	for _, o := range rows {
		if !o.HasValidLocation() {
			v.SkippedPoints++
			continue
		}
		v.Points = append(v.Points, Point{
			ID:             o.ID,
			Lat:            *o.Latitude,
			Lon:            *o.Longitude,
			Classification: o.Classification,
			Type:           o.Type,
			City:           o.City,
			Date:           o.Date,
		})
	}
	return v
}

// Summary reports the number of selected occurrences.
func Summary(count int) string {
	return fmt.Sprintf("%d ocorrências selecionadas.", count)
}

// Caption describes the active selection.
func Caption(labels []string, year int) string {
	return fmt.Sprintf("Estão sendo exibidas as ocorrências classificadas como %s para o ano de %d.",
		strings.Join(labels, ", "), year)
}
