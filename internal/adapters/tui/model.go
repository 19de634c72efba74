// Package tui provides the terminal user interface for the timer using
// the Bubbletea framework.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/config"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/domain"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/ports"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/services"
)

// Mode accent colors.
var modeColors = map[domain.Mode]lipgloss.Color{
	domain.ModeZone:   lipgloss.Color("#7C6FE0"),
	domain.ModeBreath: lipgloss.Color("#4ECDC4"),
	domain.ModeDrift:  lipgloss.Color("#F6AD55"),
}

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#95A5A6"))
	toastStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71")).Bold(true)
	clockStyle  = lipgloss.NewStyle().Bold(true)
	stretchText = lipgloss.NewStyle().Foreground(lipgloss.Color("#F6AD55")).Italic(true)
)

// tickMsg drives the countdown poll.
type tickMsg time.Time

// autoStartMsg fires after the auto-chain grace period.
type autoStartMsg struct{}

// celebrationDoneMsg fires after the celebration delay.
type celebrationDoneMsg struct{}

// toastMsg carries a toast received from another instance.
type toastMsg domain.Toast

// clearToastMsg expires a toast; gen guards against clearing a newer one.
type clearToastMsg struct {
	gen int
}

// Model is the Bubbletea model for the timer screen.
type Model struct {
	svc *services.CycleService
	cfg *config.Config
	bar progress.Model

	width  int
	height int

	toast    *domain.Toast
	toastGen int
	toasts   chan domain.Toast

	quitting bool
}

// NewModel creates the timer model and wires the broadcast channel into
// the Bubbletea message loop.
func NewModel(svc *services.CycleService, cfg *config.Config, channel ports.Broadcaster) Model {
	m := Model{
		svc:    svc,
		cfg:    cfg,
		bar:    progress.New(progress.WithDefaultGradient()),
		toasts: make(chan domain.Toast, 8),
	}
	if channel != nil {
		ch := m.toasts
		channel.Subscribe(func(t domain.Toast) {
			select {
			case ch <- t:
			default:
			}
		})
	}
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.listenToasts())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(msg.Width-8, 48)
		return m, nil

	case tickMsg:
		ev := m.svc.Tick()
		cmds := append(m.applyEvent(ev), tickCmd())
		return m, tea.Batch(cmds...)

	case autoStartMsg:
		m.svc.AutoStart()
		return m, nil

	case celebrationDoneMsg:
		m.svc.FinishCelebration()
		return m, nil

	case toastMsg:
		t := domain.Toast(msg)
		cmds := append(m.setToast(&t), m.listenToasts())
		return m, tea.Batch(cmds...)

	case clearToastMsg:
		if msg.gen == m.toastGen {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey maps the original keyboard shortcuts onto service actions.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case " ":
		m.svc.ToggleRun()
	case "r":
		m.svc.SoftReset()
	case "z":
		m.svc.SwitchMode(domain.ModeZone)
	case "b":
		m.svc.SwitchMode(domain.ModeBreath)
	case "d":
		m.svc.SwitchMode(domain.ModeDrift)
	case "c":
		ev := m.svc.CheatComplete()
		cmds := m.applyEvent(ev)
		return m, tea.Batch(cmds...)
	case "w":
		m.svc.HardWipe()
	}
	return m, nil
}

// applyEvent schedules the timed follow-ups of a completion and shows
// the local toast. Mutates the model; call from Update only.
func (m *Model) applyEvent(ev *services.CompletionEvent) []tea.Cmd {
	if ev == nil {
		return nil
	}

	var cmds []tea.Cmd
	if ev.Toast != nil {
		cmds = append(cmds, m.setToast(ev.Toast)...)
	}
	if ev.Celebrated {
		cmds = append(cmds, tea.Tick(domain.FinishedResetDelay, func(time.Time) tea.Msg {
			return celebrationDoneMsg{}
		}))
	} else {
		cmds = append(cmds, tea.Tick(domain.AutoStartDelay, func(time.Time) tea.Msg {
			return autoStartMsg{}
		}))
	}
	return cmds
}

// setToast displays a toast and schedules its expiry.
func (m *Model) setToast(t *domain.Toast) []tea.Cmd {
	m.toast = t
	m.toastGen++
	gen := m.toastGen
	return []tea.Cmd{tea.Tick(domain.ToastLifetime, func(time.Time) tea.Msg {
		return clearToastMsg{gen: gen}
	})}
}

// listenToasts waits for the next cross-instance toast.
func (m Model) listenToasts() tea.Cmd {
	ch := m.toasts
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return toastMsg(t)
	}
}

// View renders the timer screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.svc.Snapshot()
	if snap.Celebrating {
		return m.viewCelebration()
	}

	var b strings.Builder

	b.WriteString(m.viewHeader(snap))
	b.WriteString("\n\n")
	b.WriteString(m.viewPills(snap))
	b.WriteString("\n\n")

	accent := lipgloss.NewStyle().Foreground(modeColors[snap.Mode])
	b.WriteString(clockStyle.Inherit(accent).Render("  " + domain.FormatClock(snap.TimeLeft)))
	if snap.FinalStretch {
		b.WriteString("  " + stretchText.Render("final stretch"))
	}
	b.WriteString("\n\n")

	b.WriteString("  " + m.bar.ViewAs(snap.Progress))
	b.WriteString("\n\n")
	b.WriteString(m.viewCycle(snap))
	b.WriteString("\n")

	if m.toast != nil {
		b.WriteString("\n  " + toastStyle.Render("✨ "+m.toast.Message) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(
		"  space "+strings.ToLower(snap.ControlLabel())+" · r reset · z/b/d switch · c cheat · w wipe · q quit"))
	b.WriteString("\n")

	return b.String()
}

// viewHeader mirrors the dynamic browser title of the web app.
func (m Model) viewHeader(snap domain.Snapshot) string {
	title := "ZenFlowz | Calm Focus"
	if snap.IsRunning || snap.Started() {
		title = fmt.Sprintf("%s | %s", domain.FormatClock(snap.TimeLeft), snap.Mode.Label())
	}
	return dimStyle.Render("  " + title)
}

// viewPills renders the mode selector.
func (m Model) viewPills(snap domain.Snapshot) string {
	var pills []string
	for _, mode := range domain.Modes() {
		style := dimStyle
		if mode == snap.Mode {
			style = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(modeColors[mode]).
				Padding(0, 1).
				Bold(true)
		}
		pills = append(pills, style.Render(mode.Label()))
	}
	return "  " + strings.Join(pills, "  ")
}

// viewCycle renders the progression pips and quality summary.
func (m Model) viewCycle(snap domain.Snapshot) string {
	goals := m.cfg.Goals()
	zones := pips(snap.CompletedZones, goals.ZonesUntilDrift, "●", "○")
	drifts := pips(snap.CompletedDrifts, goals.DriftsUntilFinish, "◆", "◇")

	line := fmt.Sprintf("  Zones %s %d/%d   Drifts %s %d/%d",
		zones, snap.CompletedZones, goals.ZonesUntilDrift,
		drifts, snap.CompletedDrifts, goals.DriftsUntilFinish)

	if q := averageQuality(snap.ZoneQualities); q >= 0 {
		line += dimStyle.Render(fmt.Sprintf("   focus quality %.0f%%", q*100))
	}
	return line
}

// viewCelebration renders the full-cycle completion screen.
func (m Model) viewCelebration() string {
	accent := lipgloss.NewStyle().Foreground(modeColors[domain.ModeZone]).Bold(true)
	return "\n\n" +
		accent.Render("  ✦ Full cycle complete! ✦") + "\n\n" +
		dimStyle.Render("  Every zone and drift done. Resetting shortly…") + "\n"
}

// pips renders done/remaining markers for a counter.
func pips(done, total int, filled, empty string) string {
	if done > total {
		done = total
	}
	return strings.Repeat(filled, done) + strings.Repeat(empty, total-done)
}

// averageQuality returns the mean of a quality history, or -1 when empty.
func averageQuality(qualities []float64) float64 {
	if len(qualities) == 0 {
		return -1
	}
	var sum float64
	for _, q := range qualities {
		sum += q
	}
	return sum / float64(len(qualities))
}

// tickCmd schedules the next countdown poll.
func tickCmd() tea.Cmd {
	return tea.Tick(domain.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
