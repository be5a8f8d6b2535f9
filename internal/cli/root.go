package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/harmony-api/internal/harmony"
	"github.com/Conceptual-Machines/harmony-api/internal/services"
)

func Execute(version string) {
	cmd := newRootCmd(version)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(version string) *cobra.Command {
	var transitions string

	cmd := &cobra.Command{
		Use:          "harmony-api",
		Short:        "Chord recommendation and key inference service",
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&transitions, "transitions", "", "YAML transition table (defaults to TRANSITIONS_FILE, then the embedded table)")

	cmd.AddCommand(serveCmd(version, &transitions))
	cmd.AddCommand(recommendCmd(&transitions))
	cmd.AddCommand(analyzeCmd(&transitions))
	return cmd
}

// loadService builds the recommendation service, reading a transition table
// from path when one is given.
func loadService(path string) (*services.RecommendationService, error) {
	if path == "" {
		return services.NewRecommendationService(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transitions: %w", err)
	}
	table, err := harmony.LoadTransitionTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return services.NewRecommendationServiceWithTable(table), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
