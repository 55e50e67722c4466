package crawler

import (
	"context"
	"strings"

	"acdata/internal/extractor"
	"acdata/internal/model"
	"acdata/internal/observability"
	"acdata/internal/specs"
)

type CatalogWriter interface {
	Upsert(ctx context.Context, e model.CatalogEntry) error
}

// Ingester runs the extractor over crawled spec sheets and keeps whatever it
// finds in the catalog.
type Ingester struct {
	Catalog CatalogWriter
}

// Ingest returns the extracted data and whether anything was stored.
func (i *Ingester) Ingest(ctx context.Context, modelName, text string) (model.TechnicalData, bool, error) {
	data := dropZeros(extractor.Extract(normalizeText(text)))
	if strings.TrimSpace(modelName) == "" || len(data.Missing()) == 3 {
		observability.CrawledProductsTotal.WithLabelValues("empty").Inc()
		return data, false, nil
	}

	if err := i.Catalog.Upsert(ctx, model.NewCatalogEntry(modelName, specs.SourceCrawler, data)); err != nil {
		observability.CrawledProductsTotal.WithLabelValues("error").Inc()
		return data, false, err
	}

	observability.CrawledProductsTotal.WithLabelValues("stored").Inc()
	return data, true, nil
}

// dropZeros treats a zero reading as unknown: a storefront never lists a
// unit with no power, and a zero would make the entry look complete.
func dropZeros(d model.TechnicalData) model.TechnicalData {
	if d.ConsumptionKW != nil && *d.ConsumptionKW == 0 {
		d.ConsumptionKW = nil
	}
	if d.CoolingPowerKW != nil && *d.CoolingPowerKW == 0 {
		d.CoolingPowerKW = nil
	}
	return d
}
