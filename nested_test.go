package stepz

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNestedPipelineStep(t *testing.T) {
	t.Run("Shares The Outer Context", func(t *testing.T) {
		inner := NewPipeline("inner",
			NewFuncStep("read-outer", func(_ context.Context, c *Context) error {
				outer, _ := c.Get("outer", "").(string)
				c.Set("inner-saw", outer)
				return nil
			}),
		)

		outer := NewPipeline("outer",
			NewFuncStep("seed", func(_ context.Context, c *Context) error {
				c.Set("outer", "visible")
				return nil
			}),
			NewNestedPipelineStep("nested", inner),
		)

		bag := NewContext(nil)
		if err := outer.Execute(context.Background(), bag); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := bag.Get("inner-saw", nil); got != "visible" {
			t.Errorf("nested pipeline should see outer state, got %v", got)
		}
	})

	t.Run("Inner Failure Propagates With Path", func(t *testing.T) {
		boom := errors.New("inner boom")
		inner := NewPipeline("inner",
			NewFuncStep("explode", func(context.Context, *Context) error { return boom }),
		)
		outer := NewPipeline("outer", NewNestedPipelineStep("nested", inner))

		err := outer.Execute(context.Background(), NewContext(nil))
		if !errors.Is(err, boom) {
			t.Fatalf("expected inner boom, got %v", err)
		}

		var pipeErr *Error
		if !errors.As(err, &pipeErr) {
			t.Fatalf("expected *Error, got %T", err)
		}
		wantPath := []Name{"outer", "inner", "explode"}
		if len(pipeErr.Path) != len(wantPath) {
			t.Fatalf("expected path %v, got %v", wantPath, pipeErr.Path)
		}
		for i := range wantPath {
			if pipeErr.Path[i] != wantPath[i] {
				t.Errorf("path[%d] = %s, want %s", i, pipeErr.Path[i], wantPath[i])
			}
		}
	})

	t.Run("AsStep Shorthand", func(t *testing.T) {
		inner := NewPipeline("inner")
		step := inner.AsStep("make-result")

		if step.Name() != "make-result" {
			t.Errorf("expected make-result, got %s", step.Name())
		}
		if err := step.Execute(context.Background(), NewContext(nil)); err != nil {
			t.Errorf("empty nested pipeline should succeed: %v", err)
		}
	})

	t.Run("Describe Indents Inner Pipeline", func(t *testing.T) {
		inner := NewPipeline("inner",
			NewFuncStep("join", func(context.Context, *Context) error { return nil }),
		)
		step := NewNestedPipelineStep("make-result", inner)

		var b strings.Builder
		step.Describe(&b, 2)

		want := "NestedPipelineStep: make-result\n" +
			"  Pipeline with 1 steps:\n" +
			"   1. FuncStep: join\n"
		if b.String() != want {
			t.Errorf("unexpected description:\ngot  %q\nwant %q", b.String(), want)
		}
	})
}
