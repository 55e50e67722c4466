package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"acdata/internal/app"
	"acdata/internal/config"
	"acdata/internal/form"
	"acdata/internal/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	config.InitLogger(cfg.LogLevel)
	logger := config.ComponentLogger("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("erro ao inicializar dependências: %w", err)
	}
	defer container.Shutdown()

	handler, err := form.NewHandler(container.Service, container.Store)
	if err != nil {
		return fmt.Errorf("erro ao carregar templates: %w", err)
	}

	observability.Start(cfg.MetricsPort)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("port", cfg.HTTPPort).Bool("llm", cfg.LLMEnabled()).Msg("formulário de dados técnicos rodando")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("servidor parou: %w", err)
	}
	return nil
}
