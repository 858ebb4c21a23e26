package cli

import (
	"fmt"

	"github.com/shestakovda/tinify"
	"github.com/spf13/cobra"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c tinify.Client) error {
				if err := tinify.Validate(cmd.Context(), c); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "API key is valid, compressions this month: %d\n", tinify.CompressionCount())
				return nil
			})
		},
	}
}
