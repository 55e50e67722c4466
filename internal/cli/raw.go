package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

const previewLen = 60

var errNoAudit = errors.New("raw responses require DATABASE_URL")

func newRawCmd(deps DepsFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raw",
		Short: "Inspect the stored language model answers",
	}
	cmd.AddCommand(newRawListCmd(deps))
	return cmd
}

func newRawListCmd(deps DepsFunc) *cobra.Command {
	var (
		limit int
		full  bool
	)

	cmd := &cobra.Command{
		Use:   "list <model>",
		Short: "List the latest raw answers for a model",
		Example: `  acdata raw list "Daikin FTXF35C"
  acdata raw list "Daikin FTXF35C" --limit 1 --full`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if d.Raw == nil {
				return errNoAudit
			}

			list, err := d.Raw.ListByModel(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			if full {
				for _, r := range list {
					fmt.Fprintf(cmd.OutOrStdout(), "== %s %s %s\n%s\n", r.ID, r.CreatedAt.Format(time.RFC3339), r.ExtractionPath, r.Content)
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "ID\tCreated\tPath\tContent")
			fmt.Fprintln(w, "--\t-------\t----\t-------")
			for _, r := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.CreatedAt.Format(time.RFC3339), r.ExtractionPath, preview(r.Content))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of answers")
	cmd.Flags().BoolVar(&full, "full", false, "Print the whole answer")

	return cmd
}

// preview flattens content to one line of at most previewLen runes.
func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > previewLen {
		return string(r[:previewLen]) + "..."
	}
	return s
}
