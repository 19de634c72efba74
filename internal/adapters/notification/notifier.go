// Package notification provides desktop notification utilities.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/config"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/ports"
)

// Notifier handles desktop notifications, gated by the system
// notification setting.
type Notifier struct {
	cfg         *config.NotificationConfig
	unavailable bool
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Notify displays a desktop notification if enabled. A host that cannot
// deliver marks the channel unavailable and flips the setting off; the
// failure never propagates to the timer.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}

	if err := beeep.Notify(title, message, ""); err != nil {
		n.unavailable = true
		n.cfg.System = false
	}
	return nil
}

// IsEnabled returns true if desktop notifications are active.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.System && !n.unavailable
}
