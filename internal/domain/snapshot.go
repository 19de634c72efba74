package domain

import "fmt"

// Snapshot is the read-only state handed to UI collaborators after each
// action. Everything a renderer needs is here; derived labels are
// computed from it, never stored.
type Snapshot struct {
	Mode            Mode
	TimeLeft        int // whole seconds
	Progress        float64
	IsRunning       bool
	CompletedZones  int
	CompletedDrifts int
	ZoneQualities   []float64
	DriftQualities  []float64
	FinalStretch    bool
	Celebrating     bool
}

// Started reports whether the current session has consumed any time.
func (s Snapshot) Started() bool {
	return s.Progress > 0
}

// Complete reports whether the current session has run out.
func (s Snapshot) Complete() bool {
	return s.TimeLeft == 0
}

// ControlLabel derives the primary control's label from the snapshot.
func (s Snapshot) ControlLabel() string {
	switch {
	case s.IsRunning:
		return "Pause"
	case s.Started() && !s.Complete():
		return "Resume"
	default:
		return "Start"
	}
}

// FormatClock renders a second count as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
