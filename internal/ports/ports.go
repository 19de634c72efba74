// Package ports defines the interfaces (driven ports) between the
// ZenFlowz cycle machine and external infrastructure: durable progress
// storage, cross-instance broadcast, and desktop notifications.
package ports

import (
	"context"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/domain"
)

// ProgressStore persists the cycle progression across restarts.
// Implementations must treat missing or unparsable values as their
// zero/default — corruption is never fatal.
// This is a driven port (implemented by adapters).
type ProgressStore interface {
	// Load reads the persisted progression. Absent keys rehydrate to
	// zero values.
	Load(ctx context.Context) (domain.CycleProgress, error)

	// Save writes the full progression synchronously.
	Save(ctx context.Context, p domain.CycleProgress) error

	// Close releases the underlying storage.
	Close() error
}

// Broadcaster propagates completion toasts to other running instances.
// Delivery is best-effort and presentational only: receivers display the
// toast and never re-run the state machine.
// This is a driven port (implemented by adapters).
type Broadcaster interface {
	// Post publishes a toast to every other instance on the channel.
	Post(toast domain.Toast) error

	// Subscribe installs the receive handler. The handler may be called
	// from a background goroutine; it replaces any previous handler.
	Subscribe(fn func(domain.Toast))

	// Close tears down the channel.
	Close() error
}

// Notifier delivers desktop-level notifications.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// Notify shows a desktop notification. Host incapability degrades to
	// a silent no-op, never an error that blocks the timer.
	Notify(title, message string) error

	// IsEnabled reports whether desktop notifications are active.
	IsEnabled() bool
}
