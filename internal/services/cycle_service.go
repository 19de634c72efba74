// Package services holds the use-case layer: the cycle state machine
// that owns the active mode, the progression counters, and the rules
// deciding what comes after each completed session.
package services

import (
	"context"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/config"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/domain"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/engine"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/ports"
)

// CompletionEvent describes a session completion for the driver. The
// driver is responsible for the two timed follow-ups: scheduling
// AutoStart after domain.AutoStartDelay when Celebrated is false, and
// FinishCelebration after domain.FinishedResetDelay when it is true.
type CompletionEvent struct {
	Completed  domain.Mode
	Next       domain.Mode
	Quality    float64
	Celebrated bool

	// Toast is the local toast payload, nil when browser notifications
	// are off. The same payload was already broadcast to other instances.
	Toast *domain.Toast
}

// CycleService is the cycle state machine. All methods must be called
// from one goroutine (the UI event loop); the service owns no timers and
// spawns no goroutines, so every mutation is synchronous.
type CycleService struct {
	ctx      context.Context
	cfg      *config.Config
	store    ports.ProgressStore
	channel  ports.Broadcaster
	notifier ports.Notifier

	countdown   *engine.Countdown
	mode        domain.Mode
	progress    domain.CycleProgress
	celebrating bool

	pending *CompletionEvent
}

// NewCycleService builds the state machine, rehydrating progression
// from the store. A failed load starts from zeroed counters — storage
// trouble is never fatal.
func NewCycleService(ctx context.Context, cfg *config.Config, store ports.ProgressStore, channel ports.Broadcaster, notifier ports.Notifier) *CycleService {
	s := &CycleService{
		ctx:      ctx,
		cfg:      cfg,
		store:    store,
		channel:  channel,
		notifier: notifier,
		mode:     domain.ModeZone,
	}

	if store != nil {
		if p, err := store.Load(ctx); err == nil {
			s.progress = p
		}
	}

	s.countdown = engine.New(cfg.Duration(s.mode))
	s.countdown.SetHandler(s.handleComplete)
	return s
}

// Countdown exposes the underlying engine for drivers that need to
// inject a clock in tests.
func (s *CycleService) Countdown() *engine.Countdown {
	return s.countdown
}

// Mode returns the active mode.
func (s *CycleService) Mode() domain.Mode {
	return s.mode
}

// Snapshot returns the full state handed to UI collaborators.
func (s *CycleService) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Mode:            s.mode,
		TimeLeft:        s.countdown.TimeLeft(),
		Progress:        s.countdown.Progress(),
		IsRunning:       s.countdown.Running(),
		CompletedZones:  s.progress.CompletedZones,
		CompletedDrifts: s.progress.CompletedDrifts,
		ZoneQualities:   append([]float64(nil), s.progress.ZoneQualities...),
		DriftQualities:  append([]float64(nil), s.progress.DriftQualities...),
		FinalStretch:    s.progress.FinalStretch,
		Celebrating:     s.celebrating,
	}
}

// Tick advances the countdown by one poll. When the session completed
// on this tick, the resulting event is returned for the driver to act
// on; otherwise nil.
func (s *CycleService) Tick() *CompletionEvent {
	s.countdown.Tick()
	ev := s.pending
	s.pending = nil
	return ev
}

// ToggleRun flips the running state. Only valid while time remains and
// no celebration is in flight.
func (s *CycleService) ToggleRun() {
	if s.celebrating {
		return
	}
	if s.countdown.Running() {
		s.countdown.Pause()
	} else {
		s.countdown.Start()
	}
}

// SwitchMode stops the clock and activates the chosen mode at full
// duration. Counters are untouched; the final stretch is cleared.
func (s *CycleService) SwitchMode(mode domain.Mode) {
	if s.celebrating {
		return
	}
	s.mode = mode
	s.progress.FinalStretch = false
	s.countdown.Reset(s.cfg.Duration(mode))
}

// SoftReset restarts the current mode's timer. Counters untouched.
func (s *CycleService) SoftReset() {
	if s.celebrating {
		return
	}
	s.countdown.Reset(s.cfg.Duration(s.mode))
}

// HardWipe zeroes all progression and restarts the current mode's
// timer. Applying it twice yields the same state as once.
func (s *CycleService) HardWipe() {
	s.celebrating = false
	s.progress.Wipe()
	s.persist()
	s.countdown.Reset(s.cfg.Duration(s.mode))
}

// CheatComplete force-completes the current session, recording the
// progress reached so far as its quality, and runs the normal
// completion transition.
func (s *CycleService) CheatComplete() *CompletionEvent {
	if s.celebrating {
		return nil
	}
	quality := s.countdown.Progress()
	s.countdown.Finish()
	s.handleComplete(quality)
	ev := s.pending
	s.pending = nil
	return ev
}

// AutoStart begins the chained session once the grace period elapsed.
// A user action in between (reset, wipe, mode switch) leaves a fresh
// stopped timer, which simply starts — matching the auto-chain rule.
func (s *CycleService) AutoStart() {
	if s.celebrating {
		return
	}
	s.countdown.Start()
}

// FinishCelebration performs the terminal reset after the celebration
// delay: everything zeroed, mode back to zone, timer stopped at full
// duration.
func (s *CycleService) FinishCelebration() {
	if !s.celebrating {
		return
	}
	s.celebrating = false
	s.progress.Wipe()
	s.persist()
	s.mode = domain.ModeZone
	s.countdown.Reset(s.cfg.Duration(domain.ModeZone))
}

// handleComplete is installed as the countdown's completion handler and
// also invoked by the cheat path. It notifies, decides the next mode,
// persists, and stages the event for the driver.
func (s *CycleService) handleComplete(quality float64) {
	s.countdown.Pause()

	ev := &CompletionEvent{Completed: s.mode, Quality: quality}

	if s.notifier != nil {
		title, body := completionCopy(s.mode)
		_ = s.notifier.Notify(title, body)
	}

	if s.cfg.Notifications.Browser {
		toast := domain.Toast{Message: toastMessage(s.mode), Type: "success"}
		ev.Toast = &toast
		if s.channel != nil {
			// Best-effort: a failed broadcast never blocks the cycle.
			_ = s.channel.Post(toast)
		}
	}

	if s.progress.FinalStretch {
		s.celebrating = true
		ev.Celebrated = true
		s.pending = ev
		return
	}

	next := s.mode
	switch s.mode {
	case domain.ModeZone:
		next = s.progress.CompleteZone(quality, s.cfg.Goals())
		s.persist()
	case domain.ModeBreath:
		next = domain.ModeZone
	case domain.ModeDrift:
		next = s.progress.CompleteDrift(quality, s.cfg.Goals())
		s.persist()
	}

	s.mode = next
	ev.Next = next
	s.countdown.Reset(s.cfg.Duration(next))
	s.pending = ev
}

// persist writes the progression synchronously. Write failures degrade
// silently: the in-memory state stays authoritative.
func (s *CycleService) persist() {
	if s.store == nil {
		return
	}
	_ = s.store.Save(s.ctx, s.progress)
}

// completionCopy returns the desktop notification for a finished mode.
func completionCopy(mode domain.Mode) (title, body string) {
	if mode == domain.ModeZone {
		return "Focus Complete!", "Time to recharge."
	}
	return "Break Over!", "Ready to flow?"
}

// toastMessage returns the in-app toast for a finished mode.
func toastMessage(mode domain.Mode) string {
	if mode == domain.ModeZone {
		return "Zone Complete! Take a breath."
	}
	return "Break finished. Let's flow."
}
