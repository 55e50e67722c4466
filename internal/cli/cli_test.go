package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acdata/internal/extractor"
	"acdata/internal/model"
	"acdata/internal/specs"
)

type fakeLookup struct {
	res  specs.Result
	err  error
	seen string
}

func (f *fakeLookup) Lookup(_ context.Context, modelName string) (specs.Result, error) {
	f.seen = modelName
	return f.res, f.err
}

type fakeCatalog struct {
	entries []model.CatalogEntry
	limit   int
}

func (f *fakeCatalog) List(_ context.Context, limit int) ([]model.CatalogEntry, error) {
	f.limit = limit
	return f.entries, nil
}

func execute(t *testing.T, deps DepsFunc, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmdWithDeps(deps)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func noDeps(context.Context) (*Deps, error) {
	return nil, errors.New("deps should not be built")
}

func TestExtractFromStdin(t *testing.T) {
	out, err := execute(t, noDeps, `Answer: {"consumption_kW": "1.2", "cooling_power_kW": 3.5, "inverter": true}`, "extract")
	require.NoError(t, err)

	var got extractOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, extractor.PathStructured, got.Path)
	assert.Equal(t, model.Float(1.2), got.Data.ConsumptionKW)
	assert.Equal(t, model.Float(3.5), got.Data.CoolingPowerKW)
	assert.Equal(t, model.Bool(true), got.Data.Inverter)
	assert.Empty(t, got.Missing)
	assert.Contains(t, out, `"missing": []`)
}

func TestExtractFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.txt")
	require.NoError(t, os.WriteFile(path, []byte("Cooling capacity: 12000 BTU, non inverter"), 0o600))

	out, err := execute(t, noDeps, "", "extract", path)
	require.NoError(t, err)

	var got extractOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, extractor.PathFallback, got.Path)
	assert.Nil(t, got.Data.ConsumptionKW)
	assert.Equal(t, model.Float(3.52), got.Data.CoolingPowerKW)
	assert.Equal(t, model.Bool(false), got.Data.Inverter)
	assert.Equal(t, []string{"consumption_kw"}, got.Missing)
}

func TestExtractMissingFile(t *testing.T) {
	_, err := execute(t, noDeps, "", "extract", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	f := &fakeLookup{res: specs.Result{
		Data:   model.TechnicalData{CoolingPowerKW: model.Float(3.5), Inverter: model.Bool(true)},
		Report: extractor.Report{Path: extractor.PathFallback},
		Source: specs.SourceLLM,
	}}
	closed := false
	deps := func(context.Context) (*Deps, error) {
		return &Deps{Specs: f, Close: func() { closed = true }}, nil
	}

	out, err := execute(t, deps, "", "lookup", "Daikin FTXF35C")
	require.NoError(t, err)
	assert.Equal(t, "Daikin FTXF35C", f.seen)
	assert.True(t, closed)

	var got lookupOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Inverter", got.Technology)
	assert.Equal(t, "llm", got.Source)
	assert.Equal(t, extractor.PathFallback, got.Path)
	assert.Equal(t, []string{"consumption_kw"}, got.Missing)
}

func TestLookupErrors(t *testing.T) {
	deps := func(context.Context) (*Deps, error) {
		return &Deps{Specs: &fakeLookup{err: specs.ErrNotConfigured}}, nil
	}
	_, err := execute(t, deps, "", "lookup", "X")
	assert.ErrorIs(t, err, specs.ErrNotConfigured)

	_, err = execute(t, deps, "", "lookup")
	assert.Error(t, err)
}

func TestCatalogList(t *testing.T) {
	cat := &fakeCatalog{entries: []model.CatalogEntry{
		{ModelName: "Split A", ConsumptionKW: model.Float(1.1), CoolingPowerKW: model.Float(3.52), Inverter: model.Bool(false), Source: "crawler"},
		{ModelName: "Split B", Source: "llm"},
	}}
	deps := func(context.Context) (*Deps, error) {
		return &Deps{Catalog: cat}, nil
	}

	out, err := execute(t, deps, "", "catalog", "list", "--limit", "5")
	require.NoError(t, err)
	assert.Equal(t, 5, cat.limit)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"Split", "A", "1.1", "kW", "3.52", "kW", "Standard", "crawler"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"Split", "B", "-", "-", "Unknown", "llm"}, strings.Fields(lines[3]))
}

func TestCatalogListWithoutDatabase(t *testing.T) {
	deps := func(context.Context) (*Deps, error) { return &Deps{}, nil }

	_, err := execute(t, deps, "", "catalog", "list")
	assert.ErrorIs(t, err, errNoCatalog)

	_, err = execute(t, deps, "", "catalog", "list", "--limit", "0")
	assert.ErrorContains(t, err, "limit must be > 0")
}

type fakeRaw struct {
	list  []model.RawResponse
	model string
	limit int
}

func (f *fakeRaw) ListByModel(_ context.Context, modelName string, limit int) ([]model.RawResponse, error) {
	f.model, f.limit = modelName, limit
	return f.list, nil
}

func TestRawList(t *testing.T) {
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	raw := &fakeRaw{list: []model.RawResponse{{
		ID:             "b6c0",
		ModelName:      "Split A",
		Content:        "{\n  \"consumption_kW\": 1.1,\n  \"cooling_power_kW\": 3.5,\n  \"inverter\": true,\n  \"note\": \"long answer\"\n}",
		ExtractionPath: "structured",
		CreatedAt:      created,
	}}}
	deps := func(context.Context) (*Deps, error) { return &Deps{Raw: raw}, nil }

	out, err := execute(t, deps, "", "raw", "list", "Split A", "--limit", "3")
	require.NoError(t, err)
	assert.Equal(t, "Split A", raw.model)
	assert.Equal(t, 3, raw.limit)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "2026-10-01T12:00:00Z")
	assert.Contains(t, lines[2], `{ "consumption_kW": 1.1, "cooling_power_kW": 3.5, "inverter"...`)

	out, err = execute(t, deps, "", "raw", "list", "Split A", "--full")
	require.NoError(t, err)
	assert.Equal(t, 10, raw.limit)
	assert.Contains(t, out, "== b6c0 2026-10-01T12:00:00Z structured\n{\n  \"consumption_kW\"")
}

func TestRawListWithoutDatabase(t *testing.T) {
	deps := func(context.Context) (*Deps, error) { return &Deps{}, nil }

	_, err := execute(t, deps, "", "raw", "list", "X")
	assert.ErrorIs(t, err, errNoAudit)

	_, err = execute(t, deps, "", "raw", "list")
	assert.Error(t, err)
}
