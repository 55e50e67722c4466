// Package app wires configuration into the lookup service and its stores.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"acdata/internal/config"
	"acdata/internal/db"
	"acdata/internal/form"
	"acdata/internal/llm"
	"acdata/internal/repository"
	"acdata/internal/specs"
)

// Container holds the dependencies shared by the binaries. Postgres and
// Redis are optional: without them the catalog is skipped and form state
// lives in memory.
type Container struct {
	Config *config.Config

	SQL   *sql.DB
	Pool  *pgxpool.Pool
	Redis *redis.Client

	Catalog *repository.SpecRepository
	Raw     *repository.RawRepository

	Service *specs.Service
	Store   form.StateStore
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := config.ComponentLogger("app")
	c := &Container{Config: cfg}

	if cfg.DatabaseURL != "" {
		if err := c.initDatabase(ctx); err != nil {
			c.Shutdown()
			return nil, err
		}
	} else {
		logger.Warn().Msg("DATABASE_URL not set, catalog and audit disabled")
	}

	if cfg.RedisURL != "" {
		client, err := newRedis(cfg.RedisURL)
		if err != nil {
			c.Shutdown()
			return nil, err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			c.Shutdown()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		c.Redis = client
		c.Store = &form.RedisStore{Client: client, TTL: cfg.SessionTTL}
	} else {
		c.Store = form.NewMemoryStore()
	}

	c.Service = &specs.Service{Timeout: cfg.LLMTimeout}
	if cfg.LLMEnabled() {
		c.Service.Fetcher = llm.NewClient(cfg)
	} else {
		logger.Warn().Msg("no language model API key, lookups will ask for manual entry")
	}
	if c.Catalog != nil {
		c.Service.Catalog = c.Catalog
		c.Service.Raw = c.Raw
	}

	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	conn, err := db.New(c.Config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	c.SQL = conn

	if err := db.EnsureSchema(ctx, conn); err != nil {
		return err
	}

	pool, err := db.NewPool(ctx, c.Config.DatabaseURL)
	if err != nil {
		return err
	}
	c.Pool = pool

	c.Catalog = &repository.SpecRepository{DB: pool}
	c.Raw = &repository.RawRepository{DB: conn}
	return nil
}

// newRedis accepts a redis:// URL or a bare host:port.
func newRedis(addr string) (*redis.Client, error) {
	if strings.Contains(addr, "://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}

func (c *Container) Shutdown() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.SQL != nil {
		_ = c.SQL.Close()
	}
}
