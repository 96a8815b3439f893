package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nbelkacem/gestia/internal/llm"
)

func newLLMCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llm",
		Short: "Model endpoint utilities",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "probe",
		Short: "Check connectivity to the model endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.Probe(cmd.Context()); err != nil {
				return fmt.Errorf("probe failed (%s): %w", llm.ErrorKind(err), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Model endpoint reachable.")
			return nil
		},
	})

	return cmd
}
