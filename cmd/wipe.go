package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/adapters/storage"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/config"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/domain"
)

var wipeForce bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Zero all cycle progress (counters and quality history)",
	Long: `Resets completed zones, completed drifts and all recorded session
qualities back to zero. Durations and cycle goals are untouched.
Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !wipeForce {
			fmt.Print("This will zero all cycle progress. Type 'yes' to confirm: ")
			reader := bufio.NewReader(os.Stdin)
			input, _ := reader.ReadString('\n')
			if strings.TrimSpace(strings.ToLower(input)) != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		store, err := storage.New(config.GetDBPath(appConfig))
		if err != nil {
			return fmt.Errorf("failed to open progress store: %w", err)
		}
		defer store.Close()

		if err := store.Save(cmd.Context(), domain.CycleProgress{}); err != nil {
			return fmt.Errorf("failed to wipe progress: %w", err)
		}

		fmt.Println("Cycle progress wiped. Fresh start.")
		return nil
	},
}

func init() {
	wipeCmd.Flags().BoolVarP(&wipeForce, "force", "f", false, "Skip confirmation prompt")
}
