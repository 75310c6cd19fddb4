package stepz

import (
	"context"
	"fmt"
	"strings"
)

// NestedPipelineStep embeds an entire Pipeline as a single step inside a
// parent Pipeline, enabling arbitrary nesting. The inner pipeline executes
// against the same Context as the parent — not a copy — so it can read and
// write outer state freely.
type NestedPipelineStep struct {
	pipeline *Pipeline
	name     Name
}

// NewNestedPipelineStep wraps pipeline so it can be added to a parent
// Pipeline. Pipeline.AsStep is a shorthand for this constructor.
func NewNestedPipelineStep(name Name, pipeline *Pipeline) *NestedPipelineStep {
	return &NestedPipelineStep{name: name, pipeline: pipeline}
}

// Execute delegates to the inner pipeline with the shared Context.
func (s *NestedPipelineStep) Execute(ctx context.Context, c *Context) error {
	return s.pipeline.Execute(ctx, c)
}

// Name returns the step's name.
func (s *NestedPipelineStep) Name() Name {
	return s.name
}

// Describe emits a header line, then the inner pipeline's full description
// at increased indentation.
func (s *NestedPipelineStep) Describe(b *strings.Builder, indent int) {
	fmt.Fprintf(b, "NestedPipelineStep: %s\n", s.name)
	s.pipeline.Describe(b, indent)
}
