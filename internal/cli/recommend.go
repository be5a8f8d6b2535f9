package cli

import (
	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/harmony-api/internal/models"
)

func recommendCmd(transitions *string) *cobra.Command {
	var current string
	var pitchClasses []string
	var maxRecs int

	c := &cobra.Command{
		Use:     "recommend [chord...]",
		Short:   "Suggest next chords for a progression",
		Example: "  harmony-api recommend --current Am --max 6 C G Am F",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(*transitions)
			if err != nil {
				return err
			}

			req := &models.RecommendationRequest{
				Progression:         args,
				CurrentPitchClasses: pitchClasses,
			}
			if req.Progression == nil {
				req.Progression = []string{}
			}
			if current != "" {
				req.CurrentChord = &current
			}
			if maxRecs != 0 {
				req.MaxRecs = &maxRecs
			}

			resp, err := service.Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}

	c.Flags().StringVarP(&current, "current", "c", "", "Current chord symbol (defaults to the last chord of the progression)")
	c.Flags().StringSliceVar(&pitchClasses, "pitch-classes", nil, "Pitch classes of the current chord, used when --current is missing or unparsable")
	c.Flags().IntVarP(&maxRecs, "max", "n", 0, "Maximum number of recommendations (1-12)")
	return c
}
