package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/config"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/domain"
)

// Settable configuration keys, in display order.
var configKeys = []string{
	"durations.zone",
	"durations.breath",
	"durations.drift",
	"cycle.zones_until_drift",
	"cycle.drifts_until_finish",
	"notifications.browser",
	"notifications.system",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit durations, cycle goals and notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println()
		fmt.Println("  Current configuration:")
		fmt.Println()
		for _, mode := range domain.Modes() {
			fmt.Printf("    durations.%-7s %3d min  (max %d)\n",
				string(mode), appConfig.Minutes(mode), mode.LimitMinutes())
		}
		fmt.Println()
		fmt.Printf("    cycle.zones_until_drift    %d\n", appConfig.Cycle.ZonesUntilDrift)
		fmt.Printf("    cycle.drifts_until_finish  %d\n", appConfig.Cycle.DriftsUntilFinish)
		fmt.Println()
		fmt.Printf("    notifications.browser  %v\n", appConfig.Notifications.Browser)
		fmt.Printf("    notifications.system   %v\n", appConfig.Notifications.System)
		fmt.Println()
		fmt.Println("  Change a value with: zenflowz config set <key> <value>")
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := applyConfigValue(appConfig, key, value); err != nil {
			return err
		}
		if err := config.Save(appConfig); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("Set %s.\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// applyConfigValue routes a key/value pair to the matching clamped
// setter. Unknown keys get a fuzzy-matched suggestion.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "durations.zone", "durations.breath", "durations.drift":
		minutes, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: expected minutes", value)
		}
		mode := domain.Mode(strings.TrimPrefix(key, "durations."))
		cfg.UpdateDuration(mode, minutes)
	case "cycle.zones_until_drift":
		goal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid goal %q: expected a number", value)
		}
		cfg.UpdateCycleSetting(config.KeyZonesUntilDrift, goal)
	case "cycle.drifts_until_finish":
		goal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid goal %q: expected a number", value)
		}
		cfg.UpdateCycleSetting(config.KeyDriftsUntilFinish, goal)
	case "notifications.browser", "notifications.system":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q: expected true or false", value)
		}
		if key == "notifications.browser" {
			cfg.Notifications.Browser = enabled
		} else {
			cfg.Notifications.System = enabled
		}
	default:
		if matches := fuzzy.Find(key, configKeys); len(matches) > 0 {
			return fmt.Errorf("unknown key %q (did you mean %q?)", key, matches[0].Str)
		}
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}
