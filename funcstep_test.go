package stepz

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFuncStep(t *testing.T) {
	t.Run("Execute Delegates To Action", func(t *testing.T) {
		step := NewFuncStep("double", func(_ context.Context, c *Context) error {
			n, _ := c.Get("n", 0).(int)
			c.Set("n", n*2)
			return nil
		})

		bag := NewContext(map[string]any{"n": 21})
		if err := step.Execute(context.Background(), bag); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := bag.Get("n", nil); got != 42 {
			t.Errorf("expected 42, got %v", got)
		}
	})

	t.Run("Action Error Propagates", func(t *testing.T) {
		boom := errors.New("boom")
		step := NewFuncStep("failing", func(_ context.Context, _ *Context) error {
			return boom
		})

		err := step.Execute(context.Background(), NewContext(nil))
		if !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
	})

	t.Run("Name", func(t *testing.T) {
		step := NewFuncStep("tokenize", func(context.Context, *Context) error { return nil })
		if step.Name() != "tokenize" {
			t.Errorf("expected tokenize, got %s", step.Name())
		}
	})

	t.Run("Describe", func(t *testing.T) {
		step := NewFuncStep("tokenize", func(context.Context, *Context) error { return nil })

		var b strings.Builder
		step.Describe(&b, 0)

		if b.String() != "FuncStep: tokenize\n" {
			t.Errorf("unexpected description: %q", b.String())
		}
	})
}
