package stepz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Observability constants for the Pipeline.
const (
	// Metrics.
	PipelineProcessedTotal = metricz.Key("pipeline.processed.total")
	PipelineSuccessesTotal = metricz.Key("pipeline.successes.total")
	PipelineFailuresTotal  = metricz.Key("pipeline.failures.total")
	PipelineStepsCompleted = metricz.Key("pipeline.steps.completed")
	PipelineStepsTotal     = metricz.Key("pipeline.steps.total")
	PipelineDurationMs     = metricz.Key("pipeline.duration.ms")

	// Spans.
	PipelineExecuteSpan = tracez.Key("pipeline.execute")
	PipelineStepSpan    = tracez.Key("pipeline.step")

	// Tags.
	PipelineTagStepCount  = tracez.Tag("pipeline.step_count")
	PipelineTagStepNumber = tracez.Tag("pipeline.step_number")
	PipelineTagStepName   = tracez.Tag("pipeline.step_name")
	PipelineTagSuccess    = tracez.Tag("pipeline.success")
	PipelineTagError      = tracez.Tag("pipeline.error")

	// Hook event keys.
	PipelineEventStepComplete = hookz.Key("pipeline.step_complete")
	PipelineEventAllComplete  = hookz.Key("pipeline.all_complete")
)

// Pipeline modification errors.
var (
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrStepNotFound     = errors.New("step not found")
	ErrEmptyPipeline    = errors.New("pipeline is empty")
)

// PipelineEvent represents a pipeline execution event. It is emitted via
// hookz when individual steps complete and when a whole run finishes,
// providing visibility into pipeline progress.
type PipelineEvent struct {
	Name           Name          // Pipeline name
	StepName       Name          // Name of the step
	StepNumber     int           // Current step number (1-based)
	TotalSteps     int           // Total number of steps
	Success        bool          // Whether the step (or run) succeeded
	Error          error         // Error if the step failed
	Duration       time.Duration // How long this step took
	CompletedSteps int           // Steps completed (for all_complete)
	TotalDuration  time.Duration // Total run time (for all_complete)
	Timestamp      time.Time     // When the event occurred
}

// Pipeline is an ordered collection of Steps executed in sequence against a
// shared Context. The sequence order is both the execution order and the
// description order; insertion and removal preserve the relative order of
// the remaining elements. The same Step instance may appear more than once
// (a reused Singleton, for example).
//
// The step list is guarded by a mutex, so a Pipeline can be assembled and
// reshaped from multiple goroutines. Execution itself is a plain sequential
// loop: exactly one logical goroutine should drive a given Context through
// a given Pipeline at a time (see Context).
//
// # Observability
//
// Pipeline records metrics, traces and events around every run:
//
// Metrics:
//   - pipeline.processed.total: Counter of pipeline runs
//   - pipeline.successes.total: Counter of successful runs
//   - pipeline.failures.total: Counter of failed runs
//   - pipeline.steps.completed: Gauge of steps completed
//   - pipeline.steps.total: Gauge of total steps
//   - pipeline.duration.ms: Gauge of total run duration
//
// Traces:
//   - pipeline.execute: Parent span for the entire run
//   - pipeline.step: Child span for each individual step
//
// Events (via hooks):
//   - pipeline.step_complete: Fired as each step completes
//   - pipeline.all_complete: Fired when every step succeeds
type Pipeline struct {
	name    Name
	steps   []Step
	mu      sync.RWMutex
	clock   clockz.Clock
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[PipelineEvent]
}

// NewPipeline creates a Pipeline with optional initial steps. The pipeline
// is ready to use immediately; more steps can be added with AddStep or
// InsertStep.
//
// Example:
//
//	pipeline := stepz.NewPipeline("text-processing",
//	    stepz.NewFuncStep("load", loadText),
//	    stepz.NewFuncStep("tokenize", tokenizeText),
//	)
func NewPipeline(name Name, steps ...Step) *Pipeline {
	metrics := metricz.New()
	metrics.Counter(PipelineProcessedTotal)
	metrics.Counter(PipelineSuccessesTotal)
	metrics.Counter(PipelineFailuresTotal)
	metrics.Gauge(PipelineStepsCompleted)
	metrics.Gauge(PipelineStepsTotal)
	metrics.Gauge(PipelineDurationMs)

	return &Pipeline{
		name:    name,
		steps:   slices.Clone(steps),
		metrics: metrics,
		tracer:  tracez.New(),
		hooks:   hookz.New[PipelineEvent](),
	}
}

// AddStep appends steps to the end of the sequence.
func (p *Pipeline) AddStep(steps ...Step) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.steps = append(p.steps, steps...)
}

// InsertStep inserts a step at position index (0-based), shifting
// subsequent steps right. index must be in [0, Len()]; inserting at Len()
// appends. An out-of-range index returns ErrIndexOutOfBounds and leaves
// the sequence unmodified.
func (p *Pipeline) InsertStep(index int, step Step) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index > len(p.steps) {
		return fmt.Errorf("insert at %d with %d steps: %w", index, len(p.steps), ErrIndexOutOfBounds)
	}

	p.steps = slices.Insert(p.steps, index, step)
	return nil
}

// RemoveStep removes the first occurrence of step, matching by reference
// identity rather than by value. Removing an instance that was never added
// returns ErrStepNotFound and leaves the sequence unmodified.
func (p *Pipeline) RemoveStep(step Step) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, s := range p.steps {
		if s == step {
			p.steps = slices.Delete(p.steps, i, i+1)
			return nil
		}
	}

	return fmt.Errorf("step %q: %w", step.Name(), ErrStepNotFound)
}

// Shift removes and returns the first step.
func (p *Pipeline) Shift() (Step, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.steps) == 0 {
		return nil, ErrEmptyPipeline
	}

	step := p.steps[0]
	p.steps = p.steps[1:]
	return step, nil
}

// Pop removes and returns the last step.
func (p *Pipeline) Pop() (Step, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.steps) == 0 {
		return nil, ErrEmptyPipeline
	}

	last := len(p.steps) - 1
	step := p.steps[last]
	p.steps = p.steps[:last]
	return step, nil
}

// Clear removes all steps from the Pipeline.
func (p *Pipeline) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.steps = p.steps[:0]
}

// Len returns the number of steps in the Pipeline.
func (p *Pipeline) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.steps)
}

// Steps returns a snapshot of the step sequence.
func (p *Pipeline) Steps() []Step {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.steps)
}

// Names returns the names of all steps in order.
func (p *Pipeline) Names() []Name {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]Name, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}
	return names
}

// Name returns the name of this pipeline.
func (p *Pipeline) Name() Name {
	return p.name
}

// AsStep wraps the Pipeline in a NestedPipelineStep so it can be added to a
// parent Pipeline, enabling arbitrary nesting:
//
//	parent.AddStep(child.AsStep("make-result"))
func (p *Pipeline) AsStep(name Name) *NestedPipelineStep {
	return NewNestedPipelineStep(name, p)
}

// Execute streams the Context through each step in sequence order. The
// caller's context is checked before each step; cancellation stops the run
// immediately. If a step fails, execution stops at that step (fail-fast)
// and the failure propagates wrapped in *Error — the effects of steps that
// already ran are retained in the Context, with no rollback. A panicking
// step is converted to an *Error rather than crossing the API boundary.
func (p *Pipeline) Execute(ctx context.Context, c *Context) (err error) {
	defer recoverFromPanic(&err, p.name)

	p.mu.RLock()
	steps := make([]Step, len(p.steps))
	copy(steps, p.steps)
	p.mu.RUnlock()

	if ctx == nil {
		ctx = context.Background()
	}

	clock := p.getClock()

	p.metrics.Counter(PipelineProcessedTotal).Inc()
	p.metrics.Gauge(PipelineStepsTotal).Set(float64(len(steps)))
	start := clock.Now()

	ctx, span := p.tracer.StartSpan(ctx, PipelineExecuteSpan)
	span.SetTag(PipelineTagStepCount, fmt.Sprintf("%d", len(steps)))
	defer func() {
		elapsed := clock.Now().Sub(start)
		p.metrics.Gauge(PipelineDurationMs).Set(float64(elapsed.Milliseconds()))

		if err == nil {
			span.SetTag(PipelineTagSuccess, "true")
			p.metrics.Counter(PipelineSuccessesTotal).Inc()
		} else {
			span.SetTag(PipelineTagSuccess, "false")
			span.SetTag(PipelineTagError, err.Error())
			p.metrics.Counter(PipelineFailuresTotal).Inc()
		}
		span.Finish()
	}()

	completed := 0

	for i, step := range steps {
		// Check the caller's context before starting each step.
		select {
		case <-ctx.Done():
			return &Error{
				Err:       ctx.Err(),
				Path:      []Name{p.name},
				Timeout:   errors.Is(ctx.Err(), context.DeadlineExceeded),
				Canceled:  errors.Is(ctx.Err(), context.Canceled),
				Timestamp: clock.Now(),
				Duration:  clock.Now().Sub(start),
			}
		default:
		}

		stepCtx, stepSpan := p.tracer.StartSpan(ctx, PipelineStepSpan)
		stepSpan.SetTag(PipelineTagStepNumber, fmt.Sprintf("%d", i+1))
		stepSpan.SetTag(PipelineTagStepName, string(step.Name()))

		stepStart := clock.Now()
		stepErr := step.Execute(stepCtx, c)
		stepDuration := clock.Now().Sub(stepStart)
		stepSpan.Finish()

		_ = p.hooks.Emit(ctx, PipelineEventStepComplete, PipelineEvent{ //nolint:errcheck
			Name:       p.name,
			StepName:   step.Name(),
			StepNumber: i + 1,
			TotalSteps: len(steps),
			Success:    stepErr == nil,
			Error:      stepErr,
			Duration:   stepDuration,
			Timestamp:  clock.Now(),
		})

		if stepErr != nil {
			var pipeErr *Error
			if errors.As(stepErr, &pipeErr) {
				// Prepend this pipeline's name to the path.
				pipeErr.Path = append([]Name{p.name}, pipeErr.Path...)
				return pipeErr
			}
			return &Error{
				Err:       stepErr,
				Path:      []Name{p.name, step.Name()},
				Timeout:   errors.Is(stepErr, context.DeadlineExceeded),
				Canceled:  errors.Is(stepErr, context.Canceled),
				Timestamp: clock.Now(),
				Duration:  stepDuration,
			}
		}

		completed++
		p.metrics.Gauge(PipelineStepsCompleted).Set(float64(completed))
	}

	_ = p.hooks.Emit(ctx, PipelineEventAllComplete, PipelineEvent{ //nolint:errcheck
		Name:           p.name,
		TotalSteps:     len(steps),
		CompletedSteps: completed,
		Success:        true,
		TotalDuration:  clock.Now().Sub(start),
		Timestamp:      clock.Now(),
	})

	return nil
}

// Describe writes a header naming the step count at the given indentation,
// then each step's own description behind a 1-based index marker. Nested
// pipelines and decorated steps recurse with indentation increased by two
// spaces per level. Describe never touches any Context and produces
// identical output for an unchanged Pipeline.
func (p *Pipeline) Describe(b *strings.Builder, indent int) {
	p.mu.RLock()
	steps := make([]Step, len(p.steps))
	copy(steps, p.steps)
	p.mu.RUnlock()

	prefix := strings.Repeat(" ", indent)
	fmt.Fprintf(b, "%sPipeline with %d steps:\n", prefix, len(steps))
	for i, step := range steps {
		fmt.Fprintf(b, "%s %d. ", prefix, i+1)
		step.Describe(b, indent+2)
	}
}

// WithClock sets a custom clock for the pipeline's timestamps and
// durations. Useful for testing with a fake clock.
func (p *Pipeline) WithClock(clock clockz.Clock) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clock = clock
	return p
}

// getClock returns the pipeline's clock, defaulting to the real clock.
func (p *Pipeline) getClock() clockz.Clock {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.clock == nil {
		return clockz.RealClock
	}
	return p.clock
}

// Metrics returns the metrics registry for this pipeline.
func (p *Pipeline) Metrics() *metricz.Registry {
	return p.metrics
}

// Tracer returns the tracer for this pipeline.
func (p *Pipeline) Tracer() *tracez.Tracer {
	return p.tracer
}

// Close gracefully shuts down observability components.
func (p *Pipeline) Close() error {
	if p.tracer != nil {
		p.tracer.Close()
	}
	p.hooks.Close()
	return nil
}

// OnStepComplete registers a handler called asynchronously each time a step
// finishes, whether it succeeds or fails.
func (p *Pipeline) OnStepComplete(handler func(context.Context, PipelineEvent) error) error {
	_, err := p.hooks.Hook(PipelineEventStepComplete, handler)
	return err
}

// OnAllComplete registers a handler called asynchronously after a run
// finishes with every step succeeding.
func (p *Pipeline) OnAllComplete(handler func(context.Context, PipelineEvent) error) error {
	_, err := p.hooks.Hook(PipelineEventAllComplete, handler)
	return err
}
