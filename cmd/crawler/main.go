package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"

	"acdata/internal/config"
	"acdata/internal/crawler"
	"acdata/internal/db"
	"acdata/internal/repository"
)

// go run ./cmd/crawler -mode=ids -ids="kit123,kit456,kit789"
// go run ./cmd/crawler -mode=category -cat="ar-condicionado"
// go run ./cmd/crawler -mode=url -urls="https://example.com/split-12000"
func main() {
	mode := flag.String("mode", "category", "Modo de execução: 'ids', 'category' ou 'url'")
	cat := flag.String("cat", "ar-condicionado", "ID da categoria para busca")
	idsArg := flag.String("ids", "kit11106,kit9428,kit9429,kit10572", "IDs dos produtos separados por vírgula")
	urlsArg := flag.String("urls", "", "URLs de páginas de produto separadas por vírgula")
	flag.Parse()

	if err := run(*mode, *cat, *idsArg, *urlsArg); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(mode, cat, idsArg, urlsArg string) error {
	cfg := config.Load()
	config.InitLogger(cfg.LogLevel)
	logger := config.ComponentLogger("crawler")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL não configurada")
	}

	conn, err := db.New(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("erro ao abrir postgres: %w", err)
	}
	defer conn.Close()
	if err := db.EnsureSchema(ctx, conn); err != nil {
		return fmt.Errorf("erro ao criar schema: %w", err)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	ingester := &crawler.Ingester{Catalog: &repository.SpecRepository{DB: pool}}
	client := crawler.NewClient(cfg.CatalogBaseURL)

	var stored, seen int64
	ingest := func(name, text string) {
		atomic.AddInt64(&seen, 1)
		data, ok, err := ingester.Ingest(ctx, name, text)
		if err != nil {
			logger.Error().Err(err).Str("model", name).Msg("erro ao salvar no catálogo")
			return
		}
		if ok {
			atomic.AddInt64(&stored, 1)
		}
		logger.Debug().Str("model", name).Strs("missing", data.Missing()).Bool("stored", ok).Msg("produto processado")
	}

	handler := func(p crawler.OCCProduct) {
		ingest(p.DisplayName, crawler.ProductToText(&p))
	}

	switch mode {
	case "ids":
		client.CrawlBatch(ctx, splitList(idsArg), 10, handler)
	case "url":
		crawler.RunWorkers(ctx, splitList(urlsArg), cfg.WorkerCount, func(ctx context.Context, u string) {
			page, err := client.FetchPage(ctx, u)
			if err != nil {
				logger.Error().Err(err).Str("url", u).Msg("erro ao buscar página")
				return
			}
			if page.Title == "" {
				logger.Warn().Str("url", u).Msg("página sem título, ignorada")
				return
			}
			ingest(page.Title, page.Text)
		})
	case "category":
		if err := client.FetchProductsByCategory(ctx, cat, handler); err != nil {
			return fmt.Errorf("erro ao buscar categoria %s: %w", cat, err)
		}
	default:
		return fmt.Errorf("modo desconhecido: %q", mode)
	}

	logger.Info().Int64("seen", seen).Int64("stored", stored).Msg("Crawler finalizado")
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
