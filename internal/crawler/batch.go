package crawler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"acdata/internal/config"
)

func (c *Client) CrawlBatch(ctx context.Context, productIDs []string, batchSize int, handler func(OCCProduct)) {
	logger := config.ComponentLogger("crawler")

	for i := 0; i < len(productIDs); i += batchSize {
		if ctx.Err() != nil {
			return
		}

		end := i + batchSize
		if end > len(productIDs) {
			end = len(productIDs)
		}

		products, err := c.FetchProductsByIDs(ctx, productIDs[i:end])
		if err != nil {
			logger.Error().Err(err).Strs("ids", productIDs[i:end]).Msg("erro batch")
			continue
		}

		for _, p := range products {
			handler(p)
		}
	}
}

// RunWorkers runs fn over items with at most n in flight and waits for them.
func RunWorkers[T any](ctx context.Context, items []T, n int, fn func(context.Context, T)) {
	if n <= 0 {
		n = 1
	}

	var g errgroup.Group
	g.SetLimit(n)

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			fn(ctx, item)
			return nil
		})
	}

	_ = g.Wait()
}
