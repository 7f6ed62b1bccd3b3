package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var testLabels = []string{"INCIDENTE", "ACIDENTE", "INCIDENTE GRAVE"}

// sampleOccurrences yields one row per (year, classification) pair for
// 2016-2018, with IDs of the form "<year>-<classification>".
func sampleOccurrences() []Occurrence {
	var rows []Occurrence
	for _, year := range []int{2016, 2017, 2018} {
		for _, label := range testLabels {
			rows = append(rows, Occurrence{
				ID:             fmt.Sprintf("%d-%s", year, label),
				Date:           time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC),
				Classification: label,
			})
		}
	}
	return rows
}

func ids(rows []Occurrence) []string {
	out := make([]string, len(rows))
	for i, o := range rows {
		out[i] = o.ID
	}
	return out
}

func TestFilter_ExactMatch(t *testing.T) {
	rows := sampleOccurrences()

	result := Filter(rows, 2017, []string{"ACIDENTE"})

	assert.Equal(t, []string{"2017-ACIDENTE"}, ids(result))
}

func TestFilter_MultipleLabels(t *testing.T) {
	rows := sampleOccurrences()

	result := Filter(rows, 2016, []string{"INCIDENTE GRAVE", "INCIDENTE"})

	// input order is preserved, not label order
	assert.Equal(t, []string{"2016-INCIDENTE", "2016-INCIDENTE GRAVE"}, ids(result))
}

func TestFilter_EveryResultSatisfiesPredicate(t *testing.T) {
	rows := sampleOccurrences()

	for _, year := range []int{2015, 2016, 2017, 2018, 2019} {
		for _, label := range testLabels {
			result := Filter(rows, year, []string{label})
			for _, o := range result {
				assert.Equal(t, year, o.Year())
				assert.Equal(t, label, o.Classification)
			}
			expected := 0
			if year >= 2016 && year <= 2018 {
				expected = 1
			}
			assert.Len(t, result, expected, "year=%d label=%s", year, label)
		}
	}
}

func TestFilter_EmptyLabelsMatchNothing(t *testing.T) {
	rows := sampleOccurrences()

	for _, year := range []int{2016, 2017, 2018, 1999} {
		assert.Empty(t, Filter(rows, year, nil))
		assert.Empty(t, Filter(rows, year, []string{}))
	}
}

func TestFilter_UnknownDomainIsEmptyNotError(t *testing.T) {
	rows := sampleOccurrences()

	assert.Empty(t, Filter(rows, 2030, testLabels))
	assert.Empty(t, Filter(rows, 2017, []string{"OUTRO"}))
	assert.NotNil(t, Filter(rows, 2030, testLabels))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	rows := sampleOccurrences()
	snapshot := sampleOccurrences()

	first := Filter(rows, 2017, []string{"ACIDENTE"})
	_ = Filter(rows, 2018, testLabels)
	again := Filter(rows, 2017, []string{"ACIDENTE"})

	if diff := cmp.Diff(snapshot, rows); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
	assert.Equal(t, first, again)

	first[0].Classification = "ALTERADO"
	assert.Equal(t, "ACIDENTE", rows[4].Classification, "result must not alias input")
}

func TestClassifications_FirstAppearanceOrder(t *testing.T) {
	rows := []Occurrence{
		{Classification: "INCIDENTE"},
		{Classification: "ACIDENTE"},
		{Classification: "INCIDENTE"},
		{Classification: "INCIDENTE GRAVE"},
		{Classification: "ACIDENTE"},
	}

	assert.Equal(t, []string{"INCIDENTE", "ACIDENTE", "INCIDENTE GRAVE"}, Classifications(rows))
}

func TestClassifications_Empty(t *testing.T) {
	assert.Empty(t, Classifications(nil))
}

func TestMatches(t *testing.T) {
	o := Occurrence{Date: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), Classification: "ACIDENTE"}

	assert.True(t, Matches(o, 2017, LabelSet([]string{"ACIDENTE"})))
	assert.False(t, Matches(o, 2016, LabelSet([]string{"ACIDENTE"})))
	assert.False(t, Matches(o, 2017, LabelSet([]string{"INCIDENTE"})))
	assert.False(t, Matches(o, 2017, LabelSet(nil)))
}
