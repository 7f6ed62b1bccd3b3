// Command validate loads a CENIPA occurrence file with the same loader the
// dashboard uses and reports what the dashboard would see: row counts per
// year and classification, coordinate coverage, and whether the default
// selection exists. It exits non-zero on any fatal load error or failed check.
//
// Usage:
//
//	go run ./cmd/validate -dataset ./dataset/ocorrencias_aviacao.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/couchcryptid/cenipa-dashboard/internal/config"
	"github.com/couchcryptid/cenipa-dashboard/internal/dataset"
	"github.com/couchcryptid/cenipa-dashboard/internal/domain"
	"github.com/couchcryptid/cenipa-dashboard/internal/observability"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		os.Exit(1)
	}

	path := flag.String("dataset", cfg.DatasetPath, "path to the CENIPA occurrence CSV")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	loader := dataset.NewLoader(*path, nil, logger, observability.NewMetrics())

	os.Exit(run(context.Background(), loader, cfg, os.Stdout))
}

func run(ctx context.Context, src dataset.Source, cfg *config.Config, out io.Writer) int {
	fmt.Fprintln(out, "=== CENIPA Dataset Validation ===")
	fmt.Fprintln(out)

	ds, err := src.Load(ctx)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "Source:   %s\n", ds.Source())
	fmt.Fprintf(out, "Rows:     %d\n", ds.Len())
	fmt.Fprintf(out, "Checksum: %s\n", ds.Checksum())
	fmt.Fprintln(out)

	printCounts(out, ds)

	phases := []*phase{
		checkDefaultLabels(ds, cfg.DefaultLabels),
		checkIdentifiers(ds),
		checkYearRange(ds, cfg.YearMin, cfg.YearMax),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-36s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// printCounts writes a year by classification matrix plus map coverage.
func printCounts(out io.Writer, ds *dataset.Dataset) {
	labels := ds.Classifications()
	counts := make(map[int]map[string]int)
	located := 0
	for _, o := range ds.Rows() {
		if counts[o.Year()] == nil {
			counts[o.Year()] = make(map[string]int)
		}
		counts[o.Year()][o.Classification]++
		if o.HasValidLocation() {
			located++
		}
	}

	fmt.Fprintf(out, "%-6s", "ano")
	for _, l := range labels {
		fmt.Fprintf(out, " %16s", l)
	}
	fmt.Fprintln(out)
	for _, y := range ds.Years() {
		fmt.Fprintf(out, "%-6d", y)
		for _, l := range labels {
			fmt.Fprintf(out, " %16d", counts[y][l])
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "\nWith valid coordinates: %d of %d\n", located, ds.Len())
}

func checkDefaultLabels(ds *dataset.Dataset, defaults []string) *phase {
	p := &phase{name: "Default classifications present"}
	for _, l := range defaults {
		if !ds.HasClassification(l) {
			p.errorf("default label %q does not occur in the data (found: %s)", l, strings.Join(ds.Classifications(), ", "))
		}
	}
	return p
}

func checkIdentifiers(ds *dataset.Dataset) *phase {
	p := &phase{name: "Non-empty identifiers"}
	if slices.Contains(ds.IDs(), "") {
		p.errorf("a row has an empty %s", domain.IDColumn)
	}
	return p
}

func checkYearRange(ds *dataset.Dataset, minYear, maxYear int) *phase {
	p := &phase{name: "Data overlaps year selector"}
	for _, y := range ds.Years() {
		if y >= minYear && y <= maxYear {
			return p
		}
	}
	p.errorf("no occurrences between %d and %d", minYear, maxYear)
	return p
}
