package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"acdata/internal/extractor"
	"acdata/internal/model"
)

type extractOutput struct {
	Data    model.TechnicalData `json:"data"`
	Path    extractor.Path      `json:"path"`
	Missing []string            `json:"missing"`
	Issues  []string            `json:"issues,omitempty"`
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract technical data from a text response",
		Example: `  # From a saved response
  acdata extract response.txt

  # From stdin
  echo '{"consumption_kW": 1.1}' | acdata extract`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			raw, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			data, report := extractor.ExtractWithReport(string(raw))
			return printJSON(cmd.OutOrStdout(), extractOutput{
				Data:    data,
				Path:    report.Path,
				Missing: nonNil(data.Missing()),
				Issues:  report.Issues,
			})
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
