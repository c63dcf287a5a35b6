package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LISSConsulting/reactea/internal/demo"
	"github.com/LISSConsulting/reactea/internal/telemetry"
	"github.com/LISSConsulting/reactea/internal/webhook"
	"github.com/LISSConsulting/reactea/platform"
	"github.com/LISSConsulting/reactea/teaview"
)

// watchErrors logs the runtime's first reported error, if any, and notifies
// the configured webhook. It returns once errCh closes, which happens on
// program termination whether or not an error occurred.
func watchErrors(errCh <-chan error, logger *telemetry.Logger) {
	if err := <-errCh; err != nil {
		logger.Event(telemetry.Event{Kind: telemetry.EventError, Message: err.Error()})
	}
}

// newLogger builds a Logger that writes readable lines to the command's
// stderr (so `teadrive counter 2>log` still works headless) and also
// forwards every event to the returned channel, which the dashboard's
// LogView drains to render a live, styled event panel. If --notify-url is
// set, events are additionally posted to the configured webhook.
func newLogger(cmd *cobra.Command, appName string) (*telemetry.Logger, <-chan telemetry.Event) {
	events := make(chan telemetry.Event, 64)
	logger := telemetry.NewLogger(cmd.ErrOrStderr())

	var notify func(telemetry.Event)
	if url, _ := cmd.Flags().GetString("notify-url"); url != "" {
		notify = webhook.New(url, appName, true, true).Hook
	}

	logger.Hook = func(e telemetry.Event) {
		if notify != nil {
			notify(e)
		}
		select {
		case events <- e:
		default:
		}
	}

	return logger, events
}

func counterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counter",
		Short: "Interactive counter: the minimal effect-free demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger, events := newLogger(cmd, "teadrive-counter")
			ctx := signalContext()

			rt := platform.Program(ctx, demo.CounterInit, demo.CounterUpdate, demo.CounterSubscriptions)
			go watchErrors(rt.Err(), logger)

			keys := func(msg tea.KeyMsg) (demo.CounterMsg, bool) {
				switch msg.String() {
				case "+", "k", "up":
					logger.Event(telemetry.Event{Kind: telemetry.EventDispatch, Message: "increment"})
					return demo.Increment, true
				case "-", "j", "down":
					logger.Event(telemetry.Event{Kind: telemetry.EventDispatch, Message: "decrement"})
					return demo.Decrement, true
				case "r":
					logger.Event(telemetry.Event{Kind: telemetry.EventDispatch, Message: "reset"})
					return demo.Reset, true
				}
				return 0, false
			}

			adapter := teaview.New(rt, renderCounter, keys)
			dash := newDashboard("teadrive counter", demo.NewTheme(cfg.Demo.AccentColor), adapter, events)
			_, err = tea.NewProgram(dash).Run()
			logger.Event(telemetry.Event{Kind: telemetry.EventShutdown, Message: "counter exited"})
			return err
		},
	}
}

func renderCounter(m demo.CounterModel) string {
	return fmt.Sprintf("Counter: %d\n\n[+/k] increment  [-/j] decrement  [r] reset  [ctrl+c] quit\n", int(m))
}

func clockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clock",
		Short: "Interactive clock: exercises subscription switching",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger, events := newLogger(cmd, "teadrive-clock")
			ctx := signalContext()

			// ClockInitFromConfig is the clock demo's Flags entry point: the
			// tick interval comes from tea.toml's [clock] section instead of
			// the one-second default ClockInit uses.
			start := platform.ProgramWithFlags(ctx, demo.ClockInitFromConfig, demo.ClockUpdate, demo.ClockSubscriptions)
			rt := start(cfg)
			go watchErrors(rt.Err(), logger)

			keys := func(msg tea.KeyMsg) (demo.ClockMsg, bool) {
				if msg.String() == " " {
					logger.Event(telemetry.Event{Kind: telemetry.EventDispatch, Message: "toggle"})
					return demo.Toggle(), true
				}
				return demo.ClockMsg{}, false
			}

			adapter := teaview.New(rt, renderClock, keys)
			dash := newDashboard("teadrive clock", demo.NewTheme(cfg.Demo.AccentColor), adapter, events)
			_, err = tea.NewProgram(dash).Run()
			logger.Event(telemetry.Event{Kind: telemetry.EventShutdown, Message: "clock exited"})
			return err
		},
	}
}

func renderClock(m demo.ClockModel) string {
	state := "stopped"
	if m.Running {
		state = "running"
	}
	last := "never"
	if !m.Last.IsZero() {
		last = m.Last.Format(time.TimeOnly)
	}
	return fmt.Sprintf("Clock: %s  (ticks: %d, last: %s)\n\n[space] toggle  [ctrl+c] quit\n", state, m.Ticks, last)
}

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [url]",
		Short: "Interactive http fetch: exercises the task/Cmd bridge",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			url := cfg.HTTP.URL
			if len(args) == 1 {
				url = args[0]
			}

			logger, events := newLogger(cmd, "teadrive-fetch")
			ctx := signalContext()

			fetcher := demo.NewFetcher(cfg.HTTP.Timeout())
			rt := platform.Program(ctx, demo.HTTPFetchInit(url), demo.HTTPFetchUpdate(fetcher), demo.HTTPFetchSubscriptions)
			go watchErrors(rt.Err(), logger)

			keys := func(msg tea.KeyMsg) (demo.FetchMsg, bool) {
				if msg.String() == "f" {
					logger.Event(telemetry.Event{Kind: telemetry.EventDispatch, Message: "fetch " + url})
					return demo.FetchRequested(), true
				}
				return demo.FetchMsg{}, false
			}

			adapter := teaview.New(rt, renderFetch, keys, teaview.WithSpinner(func(m demo.FetchModel) bool {
				return m.Status == demo.FetchLoading
			}))
			dash := newDashboard("teadrive fetch", demo.NewTheme(cfg.Demo.AccentColor), adapter, events)
			_, err = tea.NewProgram(dash).Run()
			logger.Event(telemetry.Event{Kind: telemetry.EventShutdown, Message: "fetch exited"})
			return err
		},
	}
	return cmd
}

func renderFetch(m demo.FetchModel) string {
	status := map[demo.FetchStatus]string{
		demo.FetchIdle:    "idle",
		demo.FetchLoading: "loading…",
		demo.FetchDone:    "done",
		demo.FetchFailed:  "failed",
	}[m.Status]

	body := "\nPress [f] to fetch " + m.URL
	if m.Status == demo.FetchDone {
		body = fmt.Sprintf("\n%.400s", m.Result)
	} else if m.Status == demo.FetchFailed {
		body = "\nerror: " + m.Err
	}
	return fmt.Sprintf("Fetch: %s%s\n\n[f] fetch  [ctrl+c] quit\n", status, body)
}
