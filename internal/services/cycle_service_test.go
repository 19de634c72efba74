package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/config"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/domain"
)

type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1700000000, 0)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeStore struct {
	progress domain.CycleProgress
	loadErr  error
	saves    []domain.CycleProgress
}

func (f *fakeStore) Load(context.Context) (domain.CycleProgress, error) {
	return f.progress, f.loadErr
}

func (f *fakeStore) Save(_ context.Context, p domain.CycleProgress) error {
	f.saves = append(f.saves, p)
	return nil
}

func (f *fakeStore) Close() error { return nil }

type fakeChannel struct {
	posted  []domain.Toast
	handler func(domain.Toast)
}

func (f *fakeChannel) Post(t domain.Toast) error {
	f.posted = append(f.posted, t)
	return nil
}

func (f *fakeChannel) Subscribe(fn func(domain.Toast)) { f.handler = fn }

func (f *fakeChannel) Close() error { return nil }

type fakeNotifier struct {
	titles []string
}

func (f *fakeNotifier) Notify(title, _ string) error {
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeNotifier) IsEnabled() bool { return true }

func newTestService(cfg *config.Config, store *fakeStore, ch *fakeChannel, n *fakeNotifier) (*CycleService, *testClock) {
	clock := newTestClock()
	svc := NewCycleService(context.Background(), cfg, store, ch, n)
	svc.Countdown().SetClock(clock.Now)
	return svc, clock
}

// completeSession starts the current session, lets the full duration
// elapse, and returns the completion event from the next poll.
func completeSession(t *testing.T, svc *CycleService, clock *testClock, cfg *config.Config) *CompletionEvent {
	t.Helper()
	mode := svc.Mode()
	svc.ToggleRun()
	clock.Advance(cfg.Duration(mode))
	ev := svc.Tick()
	if ev == nil {
		t.Fatalf("no completion event after a full %v session", mode)
	}
	if ev.Completed != mode {
		t.Fatalf("event Completed = %v, want %v", ev.Completed, mode)
	}
	return ev
}

func TestCycle_FullRunToCelebration(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Cycle.ZonesUntilDrift = 3
	cfg.Cycle.DriftsUntilFinish = 2
	store := &fakeStore{}
	svc, clock := newTestService(cfg, store, &fakeChannel{}, &fakeNotifier{})

	for lap := 1; lap <= 2; lap++ {
		for zone := 1; zone <= 3; zone++ {
			ev := completeSession(t, svc, clock, cfg)
			if ev.Quality != 1 {
				t.Errorf("lap %d zone %d quality = %v, want 1", lap, zone, ev.Quality)
			}
			if zone < 3 {
				if ev.Next != domain.ModeBreath {
					t.Fatalf("lap %d zone %d: next = %v, want breath", lap, zone, ev.Next)
				}
				ev = completeSession(t, svc, clock, cfg)
				if ev.Next != domain.ModeZone {
					t.Fatalf("lap %d breath %d: next = %v, want zone", lap, zone, ev.Next)
				}
			} else if ev.Next != domain.ModeDrift {
				t.Fatalf("lap %d: third zone should lead into a drift, got %v", lap, ev.Next)
			}
		}

		ev := completeSession(t, svc, clock, cfg)
		if ev.Next != domain.ModeZone {
			t.Fatalf("lap %d drift: next = %v, want zone", lap, ev.Next)
		}

		snap := svc.Snapshot()
		if snap.CompletedDrifts != lap {
			t.Errorf("lap %d: CompletedDrifts = %d, want %d", lap, snap.CompletedDrifts, lap)
		}
		if snap.CompletedZones != 0 {
			t.Errorf("lap %d: CompletedZones = %d, want 0 after drift", lap, snap.CompletedZones)
		}
	}

	snap := svc.Snapshot()
	if !snap.FinalStretch {
		t.Fatal("final stretch should arm after the second drift")
	}

	// Victory-lap zone ends the whole run with a celebration.
	ev := completeSession(t, svc, clock, cfg)
	if !ev.Celebrated {
		t.Fatal("event should carry Celebrated")
	}
	if !svc.Snapshot().Celebrating {
		t.Fatal("service should be celebrating")
	}

	// Input is ignored while the celebration plays out.
	svc.ToggleRun()
	if svc.Snapshot().IsRunning {
		t.Error("ToggleRun should be a no-op during celebration")
	}
	if svc.CheatComplete() != nil {
		t.Error("CheatComplete should be a no-op during celebration")
	}

	svc.FinishCelebration()
	snap = svc.Snapshot()
	if snap.Celebrating {
		t.Error("celebration should be over")
	}
	if snap.Mode != domain.ModeZone {
		t.Errorf("mode = %v, want zone after the finish reset", snap.Mode)
	}
	if snap.CompletedZones != 0 || snap.CompletedDrifts != 0 || snap.FinalStretch {
		t.Errorf("finish reset left progression: %+v", snap)
	}
	if len(snap.ZoneQualities) != 0 || len(snap.DriftQualities) != 0 {
		t.Errorf("finish reset left quality history: %+v", snap)
	}
	if snap.TimeLeft != 25*60 {
		t.Errorf("TimeLeft = %d, want a full zone", snap.TimeLeft)
	}
}

func TestCheatComplete_RecordsPartialQuality(t *testing.T) {
	cfg := config.DefaultConfig()
	store := &fakeStore{}
	svc, clock := newTestService(cfg, store, &fakeChannel{}, &fakeNotifier{})

	svc.ToggleRun()
	clock.Advance(10 * time.Minute) // 40% of a 25 minute zone
	svc.Tick()

	ev := svc.CheatComplete()
	if ev == nil {
		t.Fatal("cheat should yield a completion event")
	}
	if math.Abs(ev.Quality-0.4) > 1e-9 {
		t.Errorf("Quality = %v, want 0.4", ev.Quality)
	}
	if ev.Next != domain.ModeBreath {
		t.Errorf("Next = %v, want breath", ev.Next)
	}

	snap := svc.Snapshot()
	if len(snap.ZoneQualities) != 1 || math.Abs(snap.ZoneQualities[0]-0.4) > 1e-9 {
		t.Errorf("ZoneQualities = %v, want [0.4]", snap.ZoneQualities)
	}
	if snap.CompletedZones != 1 {
		t.Errorf("CompletedZones = %d, want 1", snap.CompletedZones)
	}
}

func TestBreathCompletion_LeavesCountersAlone(t *testing.T) {
	cfg := config.DefaultConfig()
	store := &fakeStore{}
	svc, clock := newTestService(cfg, store, &fakeChannel{}, &fakeNotifier{})

	svc.SwitchMode(domain.ModeBreath)
	saves := len(store.saves)

	ev := completeSession(t, svc, clock, cfg)
	if ev.Next != domain.ModeZone {
		t.Errorf("Next = %v, want zone", ev.Next)
	}

	snap := svc.Snapshot()
	if snap.CompletedZones != 0 || snap.CompletedDrifts != 0 {
		t.Errorf("breath changed counters: %+v", snap)
	}
	if len(store.saves) != saves {
		t.Error("breath completion should not persist")
	}
}

func TestSwitchMode_ClearsFinalStretch(t *testing.T) {
	cfg := config.DefaultConfig()
	svc, _ := newTestService(cfg, &fakeStore{}, &fakeChannel{}, &fakeNotifier{})

	svc.progress.FinalStretch = true
	svc.SwitchMode(domain.ModeDrift)

	snap := svc.Snapshot()
	if snap.FinalStretch {
		t.Error("mode switch should disarm the final stretch")
	}
	if snap.Mode != domain.ModeDrift {
		t.Errorf("mode = %v, want drift", snap.Mode)
	}
	if snap.TimeLeft != 15*60 {
		t.Errorf("TimeLeft = %d, want a full drift", snap.TimeLeft)
	}
}

func TestHardWipe_Idempotent(t *testing.T) {
	cfg := config.DefaultConfig()
	store := &fakeStore{}
	svc, clock := newTestService(cfg, store, &fakeChannel{}, &fakeNotifier{})

	completeSession(t, svc, clock, cfg)

	svc.HardWipe()
	first := svc.Snapshot()
	svc.HardWipe()
	second := svc.Snapshot()

	if first.CompletedZones != 0 || first.FinalStretch || len(first.ZoneQualities) != 0 {
		t.Errorf("wipe left progression: %+v", first)
	}
	if second.CompletedZones != first.CompletedZones ||
		second.CompletedDrifts != first.CompletedDrifts ||
		second.TimeLeft != first.TimeLeft {
		t.Errorf("second wipe diverged: %+v vs %+v", second, first)
	}

	last := store.saves[len(store.saves)-1]
	if last.CompletedZones != 0 || last.CompletedDrifts != 0 {
		t.Errorf("wipe persisted non-zero progression: %+v", last)
	}
}

func TestRehydration_FromStore(t *testing.T) {
	cfg := config.DefaultConfig()
	store := &fakeStore{progress: domain.CycleProgress{
		CompletedZones:  2,
		CompletedDrifts: 1,
		ZoneQualities:   []float64{1, 0.5},
		DriftQualities:  []float64{0.9},
	}}
	svc, _ := newTestService(cfg, store, &fakeChannel{}, &fakeNotifier{})

	snap := svc.Snapshot()
	if snap.CompletedZones != 2 || snap.CompletedDrifts != 1 {
		t.Errorf("rehydrated counters = %d/%d, want 2/1", snap.CompletedZones, snap.CompletedDrifts)
	}
	if len(snap.ZoneQualities) != 2 {
		t.Errorf("ZoneQualities = %v, want two entries", snap.ZoneQualities)
	}
	if snap.Mode != domain.ModeZone {
		t.Errorf("mode = %v, a restart always begins in zone", snap.Mode)
	}
}

func TestRehydration_LoadFailureStartsZeroed(t *testing.T) {
	cfg := config.DefaultConfig()
	store := &fakeStore{
		progress: domain.CycleProgress{CompletedZones: 9},
		loadErr:  context.DeadlineExceeded,
	}
	svc, _ := newTestService(cfg, store, &fakeChannel{}, &fakeNotifier{})

	snap := svc.Snapshot()
	if snap.CompletedZones != 0 {
		t.Errorf("CompletedZones = %d, want 0 on load failure", snap.CompletedZones)
	}
}

func TestCompletion_BroadcastsToast(t *testing.T) {
	cfg := config.DefaultConfig()
	ch := &fakeChannel{}
	svc, clock := newTestService(cfg, &fakeStore{}, ch, &fakeNotifier{})

	ev := completeSession(t, svc, clock, cfg)

	if ev.Toast == nil {
		t.Fatal("event should carry a local toast")
	}
	if ev.Toast.Message != "Zone Complete! Take a breath." {
		t.Errorf("toast message = %q", ev.Toast.Message)
	}
	if len(ch.posted) != 1 {
		t.Fatalf("posted %d toasts, want 1", len(ch.posted))
	}
	if ch.posted[0] != *ev.Toast {
		t.Errorf("broadcast toast %+v differs from local %+v", ch.posted[0], *ev.Toast)
	}
}

func TestCompletion_ToastSuppressedWhenBrowserOff(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Notifications.Browser = false
	ch := &fakeChannel{}
	svc, clock := newTestService(cfg, &fakeStore{}, ch, &fakeNotifier{})

	ev := completeSession(t, svc, clock, cfg)

	if ev.Toast != nil {
		t.Errorf("toast should be nil with browser notifications off, got %+v", ev.Toast)
	}
	if len(ch.posted) != 0 {
		t.Errorf("posted %d toasts, want 0", len(ch.posted))
	}
}

func TestCompletion_DesktopCopyPerMode(t *testing.T) {
	cfg := config.DefaultConfig()
	n := &fakeNotifier{}
	svc, clock := newTestService(cfg, &fakeStore{}, &fakeChannel{}, n)

	completeSession(t, svc, clock, cfg) // zone
	completeSession(t, svc, clock, cfg) // breath

	if len(n.titles) != 2 {
		t.Fatalf("got %d notifications, want 2", len(n.titles))
	}
	if n.titles[0] != "Focus Complete!" {
		t.Errorf("zone title = %q", n.titles[0])
	}
	if n.titles[1] != "Break Over!" {
		t.Errorf("breath title = %q", n.titles[1])
	}
}

func TestPersistence_AfterZoneCompletion(t *testing.T) {
	cfg := config.DefaultConfig()
	store := &fakeStore{}
	svc, clock := newTestService(cfg, store, &fakeChannel{}, &fakeNotifier{})

	completeSession(t, svc, clock, cfg)

	if len(store.saves) == 0 {
		t.Fatal("zone completion should persist")
	}
	last := store.saves[len(store.saves)-1]
	if last.CompletedZones != 1 || len(last.ZoneQualities) != 1 {
		t.Errorf("persisted progression = %+v, want one zone", last)
	}
}

func TestAutoStart_BeginsChainedSession(t *testing.T) {
	cfg := config.DefaultConfig()
	svc, clock := newTestService(cfg, &fakeStore{}, &fakeChannel{}, &fakeNotifier{})

	completeSession(t, svc, clock, cfg)
	if svc.Snapshot().IsRunning {
		t.Fatal("chained session must wait for the grace period")
	}

	clock.Advance(domain.AutoStartDelay)
	svc.AutoStart()
	if !svc.Snapshot().IsRunning {
		t.Error("AutoStart should begin the next session")
	}
	if svc.Mode() != domain.ModeBreath {
		t.Errorf("mode = %v, want breath", svc.Mode())
	}
}

func TestSoftReset_RestartsCurrentMode(t *testing.T) {
	cfg := config.DefaultConfig()
	svc, clock := newTestService(cfg, &fakeStore{}, &fakeChannel{}, &fakeNotifier{})

	svc.ToggleRun()
	clock.Advance(10 * time.Minute)
	svc.Tick()
	svc.SoftReset()

	snap := svc.Snapshot()
	if snap.IsRunning {
		t.Error("reset should stop the clock")
	}
	if snap.TimeLeft != 25*60 || snap.Progress != 0 {
		t.Errorf("reset state = %d/%v, want full duration", snap.TimeLeft, snap.Progress)
	}
}
