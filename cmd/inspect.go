package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"unicorn/ml"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Check model artifacts and print their kind and feature columns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				model, err := ml.LoadModel(path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s\t-\t-\terror: %v\n", path, err)
					continue
				}

				kind, columns := "unknown", "-"
				if d, ok := model.(ml.Described); ok {
					kind = d.Kind()
					if cols := d.FeatureColumns(); len(cols) > 0 {
						columns = strings.Join(cols, ",")
					}
				}
				fmt.Fprintf(out, "%s\t%s\t%s\tok\n", path, kind, columns)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d artifacts invalid", failed, len(args))
			}
			return nil
		},
	}
}
