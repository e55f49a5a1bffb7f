package session

import (
	"context"
	"errors"
	"time"

	"github.com/specialistvlad/easycompile/internal/ctxlog"
	"github.com/specialistvlad/easycompile/internal/pipeline"
	"github.com/specialistvlad/easycompile/internal/resolve"
)

// Resolver maps user input to a target.
type Resolver interface {
	Resolve(input string) (resolve.Target, error)
}

// Runner compiles a resolved target.
type Runner interface {
	Run(ctx context.Context, target resolve.Target) (*pipeline.Summary, error)
}

// Loop drives the state machine against real collaborators.
type Loop struct {
	console      *Console
	resolver     Resolver
	runner       Runner
	projectTypes []string
	delay        time.Duration
}

// NewLoop wires a session. delay is waited before each report so progress
// output stays readable; projectTypes are listed in the prompt.
func NewLoop(console *Console, resolver Resolver, runner Runner, projectTypes []string, delay time.Duration) *Loop {
	return &Loop{
		console:      console,
		resolver:     resolver,
		runner:       runner,
		projectTypes: projectTypes,
		delay:        delay,
	}
}

// Run executes the session until it terminates and returns the process exit
// code. hasArg reports whether arg came from the command line.
func (l *Loop) Run(ctx context.Context, arg string, hasArg bool) int {
	logger := ctxlog.FromContext(ctx)

	m, effect := Next(Start(arg, hasArg, l.console.Interactive()), Event{})
	for {
		logger.Debug("Session transition.", "state", m.State.String(), "effect", effect.Kind.String())

		var ev Event
		switch effect.Kind {
		case EffectPrompt:
			ev = l.prompt(ctx)
		case EffectResolve:
			target, err := l.resolver.Resolve(effect.Input)
			ev = Event{Target: target, Err: err}
		case EffectProcess:
			ev = l.process(ctx, effect.Target)
		case EffectReport:
			ev = l.report(ctx, effect)
		case EffectExit:
			if effect.Err != nil {
				l.console.Error(effect.Err)
				logger.Error("Session failed.", "error", effect.Err)
			} else {
				l.console.Goodbye()
			}
			return effect.Code
		}

		m, effect = Next(m, ev)
	}
}

func (l *Loop) prompt(ctx context.Context) Event {
	if ctx.Err() != nil {
		return Event{EOF: true}
	}
	l.console.Clear()
	l.console.AskTarget(l.projectTypes)
	line, err := l.console.ReadLine()
	if err != nil {
		return Event{EOF: true}
	}
	return Event{Line: line}
}

func (l *Loop) process(ctx context.Context, target resolve.Target) Event {
	logger := ctxlog.FromContext(ctx)

	l.console.Clear()
	switch target.Kind {
	case resolve.KindProjectType:
		l.console.Compiling("directories for", target.Name)
	default:
		l.console.Compiling(target.Kind.String(), target.Name)
	}

	summary, err := l.runner.Run(ctx, target)
	if summary == nil {
		summary = &pipeline.Summary{}
	}
	if failed := len(summary.Failures); failed > 0 {
		logger.Warn("Some files were not compiled.", "failed", failed, "error", summary.Err())
	}
	// File errors have already been shown by the console observer.
	var ferr *pipeline.FileError
	if errors.As(err, &ferr) {
		err = nil
	}
	return Event{Count: summary.Compiled, Err: err}
}

func (l *Loop) report(ctx context.Context, effect Effect) Event {
	l.wait(ctx)

	if effect.Err != nil {
		l.console.Error(effect.Err)
	}
	l.console.Summary(effect.Count)

	if !effect.Ask || ctx.Err() != nil {
		return Event{EOF: true}
	}
	l.console.AskAgain()
	line, err := l.console.ReadLine()
	if err != nil {
		return Event{EOF: true}
	}
	return Event{Line: line}
}

func (l *Loop) wait(ctx context.Context) {
	if l.delay <= 0 {
		return
	}
	t := time.NewTimer(l.delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
