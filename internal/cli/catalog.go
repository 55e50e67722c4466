package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

const tabPadding = 2

var errNoCatalog = errors.New("catalog requires DATABASE_URL")

func newCatalogCmd(deps DepsFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the technical data catalog",
	}
	cmd.AddCommand(newCatalogListCmd(deps))
	return cmd
}

func newCatalogListCmd(deps DepsFunc) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recently updated catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be > 0, got %d", limit)
			}

			d, err := deps(cmd.Context())
			if err != nil {
				return err
			}
			if d.Close != nil {
				defer d.Close()
			}
			if d.Catalog == nil {
				return errNoCatalog
			}

			entries, err := d.Catalog.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "Model\tConsumption\tCooling\tTechnology\tSource")
			fmt.Fprintln(w, "-----\t-----------\t-------\t----------\t------")
			for _, e := range entries {
				td := e.TechnicalData()
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.ModelName, kw(td.ConsumptionKW), kw(td.CoolingPowerKW), td.Technology(), e.Source)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries")

	return cmd
}

func kw(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + " kW"
}
