package domain

import "time"

// Timing constants for the cycle choreography.
const (
	// TickInterval is the poll cadence of the countdown engine.
	TickInterval = 100 * time.Millisecond

	// AutoStartDelay is the grace period before the next session
	// auto-chains after a completion.
	AutoStartDelay = 1200 * time.Millisecond

	// FinishedResetDelay is how long the full-cycle celebration runs
	// before the terminal reset. It must outlast the celebration effect.
	FinishedResetDelay = 5 * time.Second

	// ToastLifetime is how long an in-app toast stays visible.
	ToastLifetime = 3 * time.Second
)

// CycleGoals holds the two cycle targets: how many zones earn a drift,
// and how many drifts finish the full program. Both are clamped to 1..10
// by the configuration layer.
type CycleGoals struct {
	ZonesUntilDrift   int
	DriftsUntilFinish int
}

// CycleProgress is the mutable progression aggregate: counters since the
// last drift / full-cycle completion, per-session quality history, and
// the final-stretch flag. It is persisted after every mutation; the
// final-stretch flag is runtime-only and always rehydrates false.
type CycleProgress struct {
	CompletedZones  int
	CompletedDrifts int
	ZoneQualities   []float64
	DriftQualities  []float64
	FinalStretch    bool
}

// CompleteZone records a finished zone with the given quality and
// returns the next mode: a drift once the zone goal is met, otherwise a
// breath.
func (p *CycleProgress) CompleteZone(quality float64, goals CycleGoals) Mode {
	p.ZoneQualities = append(p.ZoneQualities, quality)
	p.CompletedZones++
	if p.CompletedZones >= goals.ZonesUntilDrift {
		return ModeDrift
	}
	return ModeBreath
}

// CompleteDrift records a finished drift. A drift always closes out the
// current macro-cycle, so the zone counter and its quality history reset.
// Meeting the drift goal arms the final stretch; either way the next
// mode is a zone.
func (p *CycleProgress) CompleteDrift(quality float64, goals CycleGoals) Mode {
	p.DriftQualities = append(p.DriftQualities, quality)
	p.CompletedDrifts++
	p.CompletedZones = 0
	p.ZoneQualities = nil
	if p.CompletedDrifts >= goals.DriftsUntilFinish {
		p.FinalStretch = true
	}
	return ModeZone
}

// Wipe zeroes every counter, history and flag.
func (p *CycleProgress) Wipe() {
	*p = CycleProgress{}
}

// Toast is the presentational payload shared between instances on a
// completion event. Receivers display it transiently and take no state
// action.
type Toast struct {
	Message string
	Type    string
}
