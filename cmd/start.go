package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/adapters/broadcast"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/adapters/notification"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/adapters/storage"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/adapters/tui"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/config"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/services"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the focus timer",
	RunE:  runTimer,
}

// runTimer wires the adapters together and runs the timer screen until
// the user quits.
func runTimer(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(appConfig.Storage.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := storage.New(config.GetDBPath(appConfig))
	if err != nil {
		return fmt.Errorf("failed to open progress store: %w", err)
	}
	defer store.Close()

	channel := broadcast.Open(appConfig.Storage.DataDir, broadcast.ChannelName)
	defer channel.Close()

	notifier := notification.New(&appConfig.Notifications)

	svc := services.NewCycleService(cmd.Context(), appConfig, store, channel, notifier)
	model := tui.NewModel(svc, appConfig, channel)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
