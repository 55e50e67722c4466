// Package cli implements the acdata command line.
package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"acdata/internal/app"
	"acdata/internal/config"
	"acdata/internal/model"
	"acdata/internal/specs"
)

type Lookuper interface {
	Lookup(ctx context.Context, modelName string) (specs.Result, error)
}

type CatalogLister interface {
	List(ctx context.Context, limit int) ([]model.CatalogEntry, error)
}

type RawLister interface {
	ListByModel(ctx context.Context, modelName string, limit int) ([]model.RawResponse, error)
}

// Deps are the services behind the commands. Catalog and Raw are nil without
// a database.
type Deps struct {
	Specs   Lookuper
	Catalog CatalogLister
	Raw     RawLister
	Close   func()
}

type DepsFunc func(ctx context.Context) (*Deps, error)

// NewRootCmd creates the root command wired to the configured backends.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(containerDeps)
}

// NewRootCmdWithDeps lets tests inject the services.
func NewRootCmdWithDeps(deps DepsFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "acdata",
		Short:         "Air conditioner technical data extractor",
		Long:          "acdata reads consumption, cooling power and inverter technology from free text, a language model or the catalog.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newExtractCmd(),
		newLookupCmd(deps),
		newCatalogCmd(deps),
		newRawCmd(deps),
	)

	return cmd
}

func containerDeps(ctx context.Context) (*Deps, error) {
	cfg := config.Load()
	config.InitLogger(cfg.LogLevel)

	c, err := app.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	d := &Deps{Specs: c.Service, Close: c.Shutdown}
	if c.Catalog != nil {
		d.Catalog = c.Catalog
	}
	if c.Raw != nil {
		d.Raw = c.Raw
	}
	return d, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
