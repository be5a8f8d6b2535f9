package cli

import (
	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/harmony-api/internal/models"
)

func analyzeCmd(transitions *string) *cobra.Command {
	return &cobra.Command{
		Use:     "analyze chord...",
		Short:   "Estimate the key of a progression and label each chord",
		Example: "  harmony-api analyze C G Am F",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(*transitions)
			if err != nil {
				return err
			}

			resp, err := service.Analyze(cmd.Context(), &models.AnalyzeRequest{Progression: args})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
}
