package session

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/easycompile/internal/resolve"
)

// State is a node of the session state machine.
type State int

const (
	Idle State = iota
	Prompting
	Resolving
	Processing
	Reporting
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Prompting:
		return "prompting"
	case Resolving:
		return "resolving"
	case Processing:
		return "processing"
	case Reporting:
		return "reporting"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EffectKind tells the driver what to do next.
type EffectKind int

const (
	// EffectPrompt asks for a target and reads one line.
	EffectPrompt EffectKind = iota + 1
	// EffectResolve resolves Effect.Input.
	EffectResolve
	// EffectProcess runs the pipeline over Effect.Target.
	EffectProcess
	// EffectReport prints Effect.Count (and Effect.Err, if any) and, when
	// Effect.Ask is set, asks whether to run again.
	EffectReport
	// EffectExit ends the session with Effect.Code.
	EffectExit
)

func (k EffectKind) String() string {
	switch k {
	case EffectPrompt:
		return "prompt"
	case EffectResolve:
		return "resolve"
	case EffectProcess:
		return "process"
	case EffectReport:
		return "report"
	case EffectExit:
		return "exit"
	default:
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
}

// Effect is the side effect requested by a transition.
type Effect struct {
	Kind   EffectKind
	Input  string
	Target resolve.Target
	Count  int
	Err    error
	Ask    bool
	Code   int
}

// Event is the outcome of carrying out an Effect.
type Event struct {
	Line   string
	EOF    bool
	Target resolve.Target
	Count  int
	Err    error
}

// Model holds everything the transitions depend on.
type Model struct {
	State       State
	Arg         string
	HasArg      bool
	Interactive bool
	Input       string
	Target      resolve.Target
	Count       int
	Err         error
	ExitCode    int
}

// Start returns the initial model. hasArg reports whether a target was given
// on the command line.
func Start(arg string, hasArg, interactive bool) Model {
	return Model{State: Idle, Arg: arg, HasArg: hasArg, Interactive: interactive}
}

// Next computes the transition for ev arriving in state m.State. It has no
// side effects.
func Next(m Model, ev Event) (Model, Effect) {
	switch m.State {
	case Idle:
		if m.HasArg {
			return resolving(m, m.Arg)
		}
		return prompting(m)

	case Prompting:
		if ev.EOF {
			return terminate(m, 0, nil)
		}
		return resolving(m, ev.Line)

	case Resolving:
		if ev.Err != nil {
			// A bad sole argument in batch mode is the one fatal case.
			if m.HasArg && !m.Interactive {
				return terminate(m, 1, ev.Err)
			}
			return reporting(m, 0, ev.Err)
		}
		m.State = Processing
		m.Target = ev.Target
		return m, Effect{Kind: EffectProcess, Target: ev.Target}

	case Processing:
		return reporting(m, ev.Count, ev.Err)

	case Reporting:
		if m.Interactive && !ev.EOF && strings.EqualFold(strings.TrimSpace(ev.Line), "y") {
			return prompting(m)
		}
		return terminate(m, 0, nil)

	default:
		return m, Effect{Kind: EffectExit, Code: m.ExitCode, Err: m.Err}
	}
}

func prompting(m Model) (Model, Effect) {
	m.State = Prompting
	m.Input = ""
	m.Target = resolve.Target{}
	m.Count = 0
	m.Err = nil
	return m, Effect{Kind: EffectPrompt}
}

func resolving(m Model, input string) (Model, Effect) {
	m.State = Resolving
	m.Input = input
	return m, Effect{Kind: EffectResolve, Input: input}
}

func reporting(m Model, count int, err error) (Model, Effect) {
	m.State = Reporting
	m.Count = count
	m.Err = err
	return m, Effect{Kind: EffectReport, Count: count, Err: err, Ask: m.Interactive}
}

func terminate(m Model, code int, err error) (Model, Effect) {
	m.State = Terminated
	m.ExitCode = code
	m.Err = err
	return m, Effect{Kind: EffectExit, Code: code, Err: err}
}
