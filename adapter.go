package stepz

import (
	"context"
	"fmt"
	"strings"
)

// LegacyFunc is the legacy signature bridged by LegacyAdapter: it mutates a
// plain key-value mapping in place and receives an opaque extra argument.
type LegacyFunc func(data map[string]any, extra any) error

// LegacyAdapter bridges a function with an incompatible, map-shaped
// signature to the Step contract. On execution it takes a full snapshot of
// the Context, hands it to the legacy function, then writes every key of
// the mutated snapshot back into the Context.
//
// A key the legacy function deletes from the snapshot is NOT removed from
// the Context; only surviving keys are written back. This asymmetry matches
// the behavior the adapter was built to preserve — legacy functions that
// want to clear a value should overwrite it instead of deleting the key.
type LegacyAdapter struct {
	legacyFn LegacyFunc
	extra    any
	name     Name
}

// NewLegacyAdapter creates an adapter around legacyFn. The extra value is
// passed through to the legacy function on every execution.
func NewLegacyAdapter(name Name, legacyFn LegacyFunc, extra any) *LegacyAdapter {
	return &LegacyAdapter{name: name, legacyFn: legacyFn, extra: extra}
}

// Execute snapshots the Context, runs the legacy function against the
// snapshot, and writes the surviving keys back. A legacy failure propagates
// before any write-back happens, leaving the Context untouched.
func (a *LegacyAdapter) Execute(_ context.Context, c *Context) error {
	data := c.ToMap()
	if err := a.legacyFn(data, a.extra); err != nil {
		return err
	}
	for k, v := range data {
		c.Set(k, v)
	}
	return nil
}

// Name returns the adapter's name.
func (a *LegacyAdapter) Name() Name {
	return a.name
}

// Describe implements the Step interface.
func (a *LegacyAdapter) Describe(b *strings.Builder, _ int) {
	fmt.Fprintf(b, "LegacyAdapter: %s (wraps legacy_func)\n", a.name)
}
