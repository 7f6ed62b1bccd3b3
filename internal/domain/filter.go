package domain

// Matches reports whether an occurrence happened in year and carries one of
// labels. An empty label set matches nothing.
func Matches(o Occurrence, year int, labels map[string]struct{}) bool {
	if o.Year() != year {
		return false
	}
	_, ok := labels[o.Classification]
	return ok
}

// LabelSet builds a membership set from a label list.
func LabelSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

// Filter returns the occurrences matching year and labels, preserving input
// order. The input slice is never modified; the result is a fresh slice.
func Filter(rows []Occurrence, year int, labels []string) []Occurrence {
	out := make([]Occurrence, 0)
	if len(labels) == 0 {
		return out
	}
	set := LabelSet(labels)
	for _, o := range rows {
		if Matches(o, year, set) {
			out = append(out, o)
		}
	}
	return out
}

// Classifications returns the distinct classification labels in order of
// first appearance.
func Classifications(rows []Occurrence) []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0)
	for _, o := range rows {
		if _, ok := seen[o.Classification]; ok {
			continue
		}
		seen[o.Classification] = struct{}{}
		labels = append(labels, o.Classification)
	}
	return labels
}
