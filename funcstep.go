package stepz

import (
	"context"
	"fmt"
	"strings"
)

// FuncStep wraps a plain action function as a Step. The behavior is passed
// in as a value, making FuncStep the simplest way to drop a transformation
// into a Pipeline.
//
// Example:
//
//	tokenize := stepz.NewFuncStep("tokenize", func(_ context.Context, c *stepz.Context) error {
//	    text, _ := c.Get("text", "").(string)
//	    c.Set("tokens", strings.Fields(text))
//	    return nil
//	})
type FuncStep struct {
	action Action
	name   Name
}

// NewFuncStep creates a FuncStep with the given name and action. The name
// appears in describe output and error paths, so keep it descriptive.
func NewFuncStep(name Name, action Action) *FuncStep {
	return &FuncStep{name: name, action: action}
}

// Execute delegates directly to the wrapped action.
func (s *FuncStep) Execute(ctx context.Context, c *Context) error {
	return s.action(ctx, c)
}

// Name returns the step's name.
func (s *FuncStep) Name() Name {
	return s.name
}

// Describe implements the Step interface.
func (s *FuncStep) Describe(b *strings.Builder, _ int) {
	fmt.Fprintf(b, "FuncStep: %s\n", s.name)
}
