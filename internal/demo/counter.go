// Package demo hosts the example Model/Msg/Update/Subscriptions triples
// cmd/teadrive wires into a running program. Each file is self-contained and
// exercises a different corner of the runtime: Counter is the minimal
// no-effect case, Clock exercises subscription switching, and HTTPFetch
// exercises the task bridge.
package demo

import (
	tea "github.com/LISSConsulting/reactea"
)

// CounterModel is the running total. It has no hidden state, so equality on
// the value itself is exactly the dedup the runtime wants.
type CounterModel int

// CounterMsg is the message algebra for the counter demo.
type CounterMsg int

const (
	Increment CounterMsg = iota
	Decrement
	Reset
)

// CounterInit starts the counter at zero with no initial command.
func CounterInit() (CounterModel, tea.Cmd[CounterMsg]) {
	return 0, tea.None[CounterMsg]()
}

// CounterUpdate applies msg to m. It never produces a command: every effect
// in this demo is purely local state change.
func CounterUpdate(msg CounterMsg, m CounterModel) (CounterModel, tea.Cmd[CounterMsg]) {
	switch msg {
	case Increment:
		return m + 1, tea.None[CounterMsg]()
	case Decrement:
		return m - 1, tea.None[CounterMsg]()
	case Reset:
		return 0, tea.None[CounterMsg]()
	default:
		return m, tea.None[CounterMsg]()
	}
}

// CounterSubscriptions declines every subscription; the counter reacts only
// to dispatched key presses.
func CounterSubscriptions(CounterModel) tea.Sub[CounterMsg] {
	return tea.NoneSub[CounterMsg]()
}
