package stepz

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// SingletonStep is a stateless no-op step with exactly one instance for the
// lifetime of the process. Every call to Singleton returns the same
// pointer, so reusing it across pipelines costs nothing and removal by
// identity behaves predictably.
type SingletonStep struct {
	name Name
}

var (
	singletonOnce sync.Once
	singletonStep *SingletonStep
)

// Singleton returns the process-wide SingletonStep instance. Construction
// is memoized behind sync.Once: the first call wins and every later call —
// from any goroutine — observes the same instance.
func Singleton() *SingletonStep {
	singletonOnce.Do(func() {
		singletonStep = &SingletonStep{name: "SingletonNoOp"}
	})
	return singletonStep
}

// Execute is a no-op; the Context passes through unchanged.
func (*SingletonStep) Execute(context.Context, *Context) error {
	return nil
}

// Name returns the step's name.
func (s *SingletonStep) Name() Name {
	return s.name
}

// Describe implements the Step interface.
func (s *SingletonStep) Describe(b *strings.Builder, _ int) {
	fmt.Fprintf(b, "SingletonStep: %s\n", s.name)
}
