package domain

import (
	"reflect"
	"testing"
)

func defaultGoals() CycleGoals {
	return CycleGoals{ZonesUntilDrift: 3, DriftsUntilFinish: 3}
}

func TestCompleteZone_ShortOfGoal_NextIsBreath(t *testing.T) {
	p := CycleProgress{}

	next := p.CompleteZone(1.0, defaultGoals())

	if next != ModeBreath {
		t.Errorf("next = %v, want %v", next, ModeBreath)
	}
	if p.CompletedZones != 1 {
		t.Errorf("CompletedZones = %d, want 1", p.CompletedZones)
	}
	if len(p.ZoneQualities) != 1 || p.ZoneQualities[0] != 1.0 {
		t.Errorf("ZoneQualities = %v, want [1]", p.ZoneQualities)
	}
}

func TestCompleteZone_MeetsGoal_NextIsDrift(t *testing.T) {
	p := CycleProgress{CompletedZones: 2, ZoneQualities: []float64{1, 1}}

	next := p.CompleteZone(0.8, defaultGoals())

	if next != ModeDrift {
		t.Errorf("next = %v, want %v", next, ModeDrift)
	}
	// The zone counter stays at the goal until the drift completes.
	if p.CompletedZones != 3 {
		t.Errorf("CompletedZones = %d, want 3", p.CompletedZones)
	}
}

func TestCompleteDrift_ClosesMacroCycle(t *testing.T) {
	p := CycleProgress{CompletedZones: 3, ZoneQualities: []float64{1, 1, 0.5}}

	next := p.CompleteDrift(1.0, defaultGoals())

	if next != ModeZone {
		t.Errorf("next = %v, want %v", next, ModeZone)
	}
	if p.CompletedZones != 0 {
		t.Errorf("CompletedZones = %d, want 0 after drift", p.CompletedZones)
	}
	if len(p.ZoneQualities) != 0 {
		t.Errorf("ZoneQualities = %v, want empty after drift", p.ZoneQualities)
	}
	if p.CompletedDrifts != 1 {
		t.Errorf("CompletedDrifts = %d, want 1", p.CompletedDrifts)
	}
	if len(p.DriftQualities) != 1 {
		t.Errorf("DriftQualities = %v, want one entry", p.DriftQualities)
	}
	if p.FinalStretch {
		t.Error("FinalStretch should not arm before the drift goal")
	}
}

func TestCompleteDrift_MeetsGoal_ArmsFinalStretch(t *testing.T) {
	p := CycleProgress{CompletedDrifts: 2}

	next := p.CompleteDrift(1.0, defaultGoals())

	if !p.FinalStretch {
		t.Error("FinalStretch should arm when the drift goal is met")
	}
	if next != ModeZone {
		t.Errorf("next = %v, want the victory-lap zone", next)
	}
}

func TestWipe_Idempotent(t *testing.T) {
	p := CycleProgress{
		CompletedZones:  2,
		CompletedDrifts: 1,
		ZoneQualities:   []float64{1, 0.4},
		DriftQualities:  []float64{1},
		FinalStretch:    true,
	}

	p.Wipe()
	first := p
	p.Wipe()

	if !reflect.DeepEqual(p, first) {
		t.Errorf("second wipe changed state: %+v vs %+v", p, first)
	}
	if p.CompletedZones != 0 || p.CompletedDrifts != 0 || p.FinalStretch {
		t.Errorf("wipe left non-zero state: %+v", p)
	}
	if p.ZoneQualities != nil || p.DriftQualities != nil {
		t.Errorf("wipe left quality history: %+v", p)
	}
}
