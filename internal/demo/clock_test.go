package demo

import (
	"context"
	"testing"
	"time"

	tea "github.com/LISSConsulting/reactea"

	"github.com/LISSConsulting/reactea/internal/config"
)

func TestClockInit(t *testing.T) {
	m, _ := ClockInit()
	if m.Running {
		t.Error("expected clock to start stopped")
	}
	if m.Ticks != 0 {
		t.Errorf("expected 0 ticks, got %d", m.Ticks)
	}
}

func TestClockUpdateToggle(t *testing.T) {
	m, _ := ClockInit()

	m, _ = ClockUpdate(Toggle(), m)
	if !m.Running {
		t.Error("expected Running to flip to true")
	}

	m, _ = ClockUpdate(Toggle(), m)
	if m.Running {
		t.Error("expected Running to flip back to false")
	}
}

func TestClockUpdateTick(t *testing.T) {
	m, _ := ClockInit()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	m, _ = ClockUpdate(Tick(now), m)
	if m.Ticks != 1 {
		t.Errorf("got %d ticks, want 1", m.Ticks)
	}
	if !m.Last.Equal(now) {
		t.Errorf("got Last %v, want %v", m.Last, now)
	}

	later := now.Add(time.Second)
	m, _ = ClockUpdate(Tick(later), m)
	if m.Ticks != 2 {
		t.Errorf("got %d ticks, want 2", m.Ticks)
	}
}

func TestClockSubscriptionsNoneWhenStopped(t *testing.T) {
	sub := ClockSubscriptions(ClockModel{Running: false})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sub.Exec(ctx, func(ClockMsg) {}) }()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClockSubscriptionsTicksWhenRunning(t *testing.T) {
	origTicker, origNow := tickerSub, clockNow
	tickerSub = func(time.Duration) tea.Sub[int] { return tea.Interval(10*time.Millisecond, 0) }
	clockNow = func() time.Time { return time.Unix(0, 0) }
	defer func() { tickerSub, clockNow = origTicker, origNow }()

	sub := ClockSubscriptions(ClockModel{Running: true})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan ClockMsg, 1)
	go sub.Exec(ctx, func(m ClockMsg) {
		select {
		case ch <- m:
		default:
		}
	})

	select {
	case m := <-ch:
		if !m.Tick {
			t.Error("expected a Tick message")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a tick")
	}
}

func TestClockInitFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Clock.IntervalMS = 250

	m, _ := ClockInitFromConfig(&cfg)
	if m.Running {
		t.Error("expected clock to start stopped")
	}
	if m.Interval != 250*time.Millisecond {
		t.Errorf("got interval %v, want 250ms", m.Interval)
	}
}

func TestClockSubscriptionsUsesModelInterval(t *testing.T) {
	origTicker := tickerSub
	var gotInterval time.Duration
	tickerSub = func(interval time.Duration) tea.Sub[int] {
		gotInterval = interval
		return tea.Interval(time.Millisecond, 0)
	}
	defer func() { tickerSub = origTicker }()

	ClockSubscriptions(ClockModel{Running: true, Interval: 5 * time.Second})

	if gotInterval != 5*time.Second {
		t.Errorf("got interval %v, want 5s", gotInterval)
	}
}
