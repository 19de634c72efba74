package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/adapters/storage"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/config"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cycle progress and settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.New(config.GetDBPath(appConfig))
		if err != nil {
			return fmt.Errorf("failed to open progress store: %w", err)
		}
		defer store.Close()

		progress, err := store.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load progress: %w", err)
		}

		goals := appConfig.Goals()

		fmt.Println("🧘 ZenFlowz")
		fmt.Printf("   Zones:  %d/%d until drift\n", progress.CompletedZones, goals.ZonesUntilDrift)
		fmt.Printf("   Drifts: %d/%d until finish\n", progress.CompletedDrifts, goals.DriftsUntilFinish)
		if len(progress.ZoneQualities) > 0 {
			fmt.Printf("   Zone quality:  %s\n", formatQualities(progress.ZoneQualities))
		}
		if len(progress.DriftQualities) > 0 {
			fmt.Printf("   Drift quality: %s\n", formatQualities(progress.DriftQualities))
		}

		fmt.Println("\n⏱  Durations:")
		for _, mode := range domain.Modes() {
			fmt.Printf("   %-7s %d min\n", mode.Label(), appConfig.Minutes(mode))
		}

		return nil
	},
}

// formatQualities renders a quality history as percentages.
func formatQualities(qualities []float64) string {
	parts := make([]string, len(qualities))
	for i, q := range qualities {
		parts[i] = fmt.Sprintf("%.0f%%", q*100)
	}
	return strings.Join(parts, ", ")
}
