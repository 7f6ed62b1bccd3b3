package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/cenipa-dashboard/internal/config"
	"github.com/couchcryptid/cenipa-dashboard/internal/dataset"
	"github.com/couchcryptid/cenipa-dashboard/internal/observability"
	"github.com/stretchr/testify/assert"
)

const fixture = "../../internal/dataset/testdata/ocorrencias.csv"

func testConfig(labels ...string) *config.Config {
	return &config.Config{YearMin: 2008, YearMax: 2018, YearDefault: 2017, DefaultLabels: labels}
}

func testLoader(path string) *dataset.Loader {
	return dataset.NewLoader(path, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
}

func TestRun_Passes(t *testing.T) {
	var out bytes.Buffer

	code := run(context.Background(), testLoader(fixture), testConfig("INCIDENTE", "ACIDENTE"), &out)

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "Rows:     6")
	assert.Contains(t, out.String(), "With valid coordinates: 4 of 6")
	assert.Contains(t, out.String(), "All validations passed.")
}

func TestRun_MissingDefaultLabel(t *testing.T) {
	var out bytes.Buffer

	code := run(context.Background(), testLoader(fixture), testConfig("INCIDENTE", "OCORRENCIA DE SOLO"), &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), `default label "OCORRENCIA DE SOLO"`)
	assert.Contains(t, out.String(), "Validation FAILED.")
}

func TestRun_FatalLoadError(t *testing.T) {
	var out bytes.Buffer

	code := run(context.Background(), testLoader(filepath.Join(t.TempDir(), "missing.csv")), testConfig(), &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "FATAL:")
}
