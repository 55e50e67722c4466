// Package specs resolves the technical data of an air conditioner model:
// catalog first, then the language model, whose answer goes through the
// extractor.
package specs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"acdata/internal/config"
	"acdata/internal/extractor"
	"acdata/internal/model"
	"acdata/internal/observability"
)

var ErrNotConfigured = errors.New("language model API key not configured")

const (
	SourceCatalog = "catalog"
	SourceLLM     = "llm"
	SourceManual  = "manual"
	SourceCrawler = "crawler"
)

type Fetcher interface {
	FetchSpecs(ctx context.Context, modelName string) (string, error)
}

type Catalog interface {
	FindByModel(ctx context.Context, modelName string) (*model.CatalogEntry, error)
	Upsert(ctx context.Context, e model.CatalogEntry) error
}

type RawStore interface {
	Save(ctx context.Context, raw model.RawResponse) error
}

type Result struct {
	Data   model.TechnicalData
	Raw    string
	Report extractor.Report
	Source string
}

// Service wires the lookup. Fetcher nil means no provider is configured;
// Catalog and Raw are optional.
type Service struct {
	Fetcher Fetcher
	Catalog Catalog
	Raw     RawStore
	Timeout time.Duration
}

func (s *Service) Lookup(ctx context.Context, modelName string) (Result, error) {
	logger := config.ComponentLogger("specs")
	modelName = strings.TrimSpace(modelName)

	if s.Fetcher == nil {
		observability.LookupsTotal.WithLabelValues(observability.OutcomeUnconfigured).Inc()
		return Result{}, ErrNotConfigured
	}

	if s.Catalog != nil && modelName != "" {
		entry, err := s.Catalog.FindByModel(ctx, modelName)
		if err != nil {
			logger.Warn().Err(err).Str("model_name", modelName).Msg("catalog lookup failed")
		} else if entry != nil && entry.TechnicalData().Complete() {
			observability.LookupsTotal.WithLabelValues(observability.OutcomeCached).Inc()
			return Result{Data: entry.TechnicalData(), Source: SourceCatalog}, nil
		}
	}

	callCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	raw, err := s.Fetcher.FetchSpecs(callCtx, modelName)
	if err != nil {
		observability.LookupsTotal.WithLabelValues(observability.OutcomeError).Inc()
		return Result{}, fmt.Errorf("lookup %q: %w", modelName, err)
	}

	data, report := extractor.ExtractWithReport(raw)
	observability.ExtractionsTotal.WithLabelValues(string(report.Path)).Inc()

	logger.Info().
		Str("model_name", modelName).
		Str("path", string(report.Path)).
		Strs("missing", data.Missing()).
		Strs("issues", report.Issues).
		Msg("technical data extracted")

	if s.Raw != nil {
		if err := s.Raw.Save(ctx, model.RawResponse{ModelName: modelName, Content: raw, ExtractionPath: string(report.Path)}); err != nil {
			logger.Warn().Err(err).Msg("failed to store raw response")
		}
	}

	outcome := observability.OutcomePartial
	if data.Complete() {
		outcome = observability.OutcomeComplete
		s.remember(ctx, modelName, SourceLLM, data)
	}
	observability.LookupsTotal.WithLabelValues(outcome).Inc()

	return Result{Data: data, Raw: raw, Report: report, Source: SourceLLM}, nil
}

// Remember stores manually validated data in the catalog, when there is one.
func (s *Service) Remember(ctx context.Context, modelName string, data model.TechnicalData) {
	s.remember(ctx, modelName, SourceManual, data)
}

func (s *Service) remember(ctx context.Context, modelName, source string, data model.TechnicalData) {
	if s.Catalog == nil || strings.TrimSpace(modelName) == "" {
		return
	}
	if err := s.Catalog.Upsert(ctx, model.NewCatalogEntry(modelName, source, data)); err != nil {
		l := config.ComponentLogger("specs")
		l.Warn().Err(err).Str("model_name", modelName).Msg("failed to update catalog")
	}
}
