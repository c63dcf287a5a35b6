// Package telemetry provides a structured, timestamped event log for the
// demo programs in cmd/teadrive. It has no dependency on platform or tea:
// callers feed it EventKind/detail pairs at the points in their own
// update/subscriptions functions where something worth recording happens.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"time"
)

// EventKind identifies the type of a recorded event.
type EventKind int

const (
	EventInfo      EventKind = iota // general informational message
	EventDispatch                   // a message was dispatched into a running program
	EventCmd                        // a command started running
	EventSub                        // a subscription switched to a new active instance
	EventError                      // a command or subscription reported an error
	EventShutdown                   // the program was asked to shut down
)

func (k EventKind) String() string {
	switch k {
	case EventInfo:
		return "info"
	case EventDispatch:
		return "dispatch"
	case EventCmd:
		return "cmd"
	case EventSub:
		return "sub"
	case EventError:
		return "error"
	case EventShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Event is a single structured log entry.
type Event struct {
	Kind      EventKind
	Timestamp time.Time
	Message   string
}

// Logger writes timestamped events to an io.Writer, defaulting to os.Stdout
// when none is configured. If Events is set, entries go there instead of
// Out — the same channel-or-writer split the runtime's own Cmd/Sub output
// observes, so a TUI can subscribe to structured events while a plain CLI
// run gets readable lines.
type Logger struct {
	Out    io.Writer
	Events chan<- Event // if set, Event sends here instead of writing to Out

	// Hook, if set, is called with every recorded event in addition to
	// the Events/Out routing above. Useful for wiring a webhook notifier
	// without coupling Logger to it directly.
	Hook func(Event)
}

// NewLogger returns a Logger writing to w. A nil w defaults to os.Stdout at
// log time.
func NewLogger(w io.Writer) *Logger {
	return &Logger{Out: w}
}

// Logf records an informational event built from a format string.
func (l *Logger) Logf(format string, args ...any) {
	l.Event(Event{Kind: EventInfo, Message: fmt.Sprintf(format, args...)})
}

// Event records e, stamping Timestamp with the current time if unset. If
// Events is set, e is sent there non-blocking (a full or nil channel drops
// the entry rather than stalling the caller); otherwise e is formatted to
// Out. Hook, when set, always runs.
func (l *Logger) Event(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	if l.Hook != nil {
		l.Hook(e)
	}

	if l.Events != nil {
		select {
		case l.Events <- e:
		default:
		}
		return
	}

	w := l.Out
	if w == nil {
		w = os.Stdout
	}
	ts := e.Timestamp.Format("15:04:05.000")
	fmt.Fprintf(w, "[%s] %-8s %s\n", ts, e.Kind, e.Message)
}
