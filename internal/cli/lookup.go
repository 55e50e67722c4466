package cli

import (
	"github.com/spf13/cobra"

	"acdata/internal/extractor"
	"acdata/internal/model"
)

type lookupOutput struct {
	ModelName  string              `json:"model_name"`
	Data       model.TechnicalData `json:"data"`
	Technology string              `json:"technology"`
	Source     string              `json:"source"`
	Path       extractor.Path      `json:"path,omitempty"`
	Missing    []string            `json:"missing"`
}

func newLookupCmd(deps DepsFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "lookup <model>",
		Short:   "Look up the technical data of an air conditioner model",
		Example: `  acdata lookup "Daikin FTXF35C"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deps(cmd.Context())
			if err != nil {
				return err
			}
			if d.Close != nil {
				defer d.Close()
			}

			res, err := d.Specs.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), lookupOutput{
				ModelName:  args[0],
				Data:       res.Data,
				Technology: res.Data.Technology(),
				Source:     res.Source,
				Path:       res.Report.Path,
				Missing:    nonNil(res.Data.Missing()),
			})
		},
	}
}
