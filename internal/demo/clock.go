package demo

import (
	"time"

	tea "github.com/LISSConsulting/reactea"

	"github.com/LISSConsulting/reactea/internal/config"
)

// ClockModel tracks whether the ticking subscription is currently active and
// the most recent tick received while it was. Running decides whether a tick
// subscription exists at all; the runtime switches subscriptions on every
// distinct model, so each toggle and each recorded tick replaces the active
// subscription with the one ClockSubscriptions returns for the new model.
type ClockModel struct {
	Running bool
	Ticks   int
	Last    time.Time

	// Interval is the tick period while Running. Zero means the package
	// default of one second (see ClockSubscriptions).
	Interval time.Duration
}

// ClockMsg is the message algebra for the clock demo.
type ClockMsg struct {
	Tick bool // true: a tick arrived; false: a Toggle was dispatched
	Now  time.Time
}

// Toggle is dispatched to start or stop the ticking subscription.
func Toggle() ClockMsg { return ClockMsg{Tick: false} }

// Tick is emitted by the interval subscription; callers never construct it
// directly, it is produced by ClockSubscriptions.
func Tick(now time.Time) ClockMsg { return ClockMsg{Tick: true, Now: now} }

// ClockInit starts stopped, with no ticks recorded, ticking at the package
// default interval once started.
func ClockInit() (ClockModel, tea.Cmd[ClockMsg]) {
	return ClockModel{}, tea.None[ClockMsg]()
}

// ClockInitFromConfig is the clock demo's Flags entry point: it seeds
// ClockModel.Interval from tea.toml's [clock] section rather than the
// hardcoded default ClockInit uses. Pass it to platform.ProgramWithFlags.
func ClockInitFromConfig(cfg *config.Config) (ClockModel, tea.Cmd[ClockMsg]) {
	return ClockModel{Interval: cfg.Clock.Interval()}, tea.None[ClockMsg]()
}

// ClockUpdate flips Running on Toggle and records each Tick.
func ClockUpdate(msg ClockMsg, m ClockModel) (ClockModel, tea.Cmd[ClockMsg]) {
	if !msg.Tick {
		m.Running = !m.Running
		return m, tea.None[ClockMsg]()
	}
	m.Ticks++
	m.Last = msg.Now
	return m, tea.None[ClockMsg]()
}

// ClockSubscriptions activates an interval sub (Interval, or one second when
// unset) while Running, and none otherwise. Because every tick changes the
// model, the runtime cancels the interval after each tick and starts a fresh
// one, so consecutive ticks still arrive about one interval apart; toggling
// Running off cancels the interval and activates NoneSub instead.
func ClockSubscriptions(m ClockModel) tea.Sub[ClockMsg] {
	if !m.Running {
		return tea.NoneSub[ClockMsg]()
	}
	interval := m.Interval
	if interval <= 0 {
		interval = time.Second
	}
	return tea.MapSub(func(int) ClockMsg { return Tick(clockNow()) }, tickerSub(interval))
}

// clockNow and tickerSub are indirected through package-level vars so tests
// can substitute a synthetic clock without waiting on real wall time.
var clockNow = time.Now

var tickerSub = func(interval time.Duration) tea.Sub[int] {
	return tea.Interval(interval, 0)
}
