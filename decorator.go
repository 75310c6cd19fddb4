package stepz

import (
	"context"
	"fmt"
	"strings"
)

// BeforeAfterDecorator wraps another Step, invoking optional hooks around
// its execution. Useful for logging, timing, or tracing a single step
// without touching its implementation.
//
// Sequencing is strict: before, then the wrapped step, then after. A failed
// hook or step aborts the chain at that point and propagates its error; the
// after hook does not run when the step fails.
type BeforeAfterDecorator struct {
	step   Step
	before Action
	after  Action
	name   Name
}

// NewBeforeAfterDecorator wraps step with the given hooks. Either hook may
// be nil, in which case it is skipped. An empty name defaults to
// "BeforeAfter(<wrapped step name>)".
func NewBeforeAfterDecorator(step Step, before, after Action, name Name) *BeforeAfterDecorator {
	if name == "" {
		name = fmt.Sprintf("BeforeAfter(%s)", step.Name())
	}
	return &BeforeAfterDecorator{step: step, before: before, after: after, name: name}
}

// Execute runs before, the wrapped step, then after, failing fast on the
// first error.
func (d *BeforeAfterDecorator) Execute(ctx context.Context, c *Context) error {
	if d.before != nil {
		if err := d.before(ctx, c); err != nil {
			return err
		}
	}
	if err := d.step.Execute(ctx, c); err != nil {
		return err
	}
	if d.after != nil {
		return d.after(ctx, c)
	}
	return nil
}

// Name returns the decorator's name.
func (d *BeforeAfterDecorator) Name() Name {
	return d.name
}

// Describe emits the decorator line, then the wrapped step's own
// description nested under it.
func (d *BeforeAfterDecorator) Describe(b *strings.Builder, indent int) {
	fmt.Fprintf(b, "Decorator: %s\n", d.name)
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString("wraps -> ")
	d.step.Describe(b, indent+2)
}
