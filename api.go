// Package stepz provides a small, composable step pipeline that threads a
// shared key-value Context through an ordered sequence of steps.
//
// # Overview
//
// stepz is built around a single uniform interface:
//
//	type Step interface {
//	    Execute(context.Context, *Context) error
//	    Describe(*strings.Builder, int)
//	    Name() Name
//	}
//
// Anything implementing Step can be placed in a Pipeline. The library ships
// a handful of step kinds covering the common composition shapes:
//
//   - FuncStep: wraps a plain action function (strategy)
//   - LegacyAdapter: bridges a map-shaped legacy function to the Step
//     contract (adapter)
//   - BeforeAfterDecorator: runs hooks around another step (decorator)
//   - NestedPipelineStep: embeds an entire Pipeline as one step (composite)
//   - Singleton: a shared, stateless no-op step (singleton)
//
// Pipelines execute fail-fast: the first step error stops the run and is
// returned to the caller wrapped in *Error, which records the path through
// nested pipelines to the failing step. Effects of steps that already ran
// are retained in the Context; there is no rollback and no retry.
//
// # Quick Start
//
//	bag := stepz.NewContext(map[string]any{"src": "Hello, World!"})
//
//	pipeline := stepz.NewPipeline("text",
//	    stepz.NewFuncStep("load", loadText),
//	    stepz.NewFuncStep("normalize", normalizeText),
//	    stepz.NewFuncStep("tokenize", tokenizeText),
//	)
//
//	if err := pipeline.Execute(context.Background(), bag); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(bag.Get("tokens", nil))
//
// # Introspection
//
// Every step can render itself into a text sink. PipelineToText returns the
// full recursive rendering of a pipeline, including decorator wrapping and
// nested sub-pipelines, indented two spaces per nesting level. The output is
// a human-readable debug rendering, not a stable wire format.
//
//	fmt.Print(stepz.PipelineToText(pipeline))
//	// Pipeline with 3 steps:
//	//  1. FuncStep: load
//	//  2. FuncStep: normalize
//	//  3. FuncStep: tokenize
//
// # Observability
//
// Pipelines expose metrics (via metricz), spans (via tracez) and typed
// events (via hookz). Register handlers with OnStepComplete and
// OnAllComplete to observe progress without touching the data flow. Time is
// read from an injectable clock (clockz), so tests can use a fake.
package stepz

import (
	"context"
	"strings"
)

// Name is a type alias for step and pipeline names.
// Using this type encourages storing names as constants rather than
// using inline strings throughout your code.
//
// Example:
//
//	const (
//	    LoadTextName  stepz.Name = "load-text"
//	    NormalizeName stepz.Name = "normalize"
//	)
type Name = string

// Step is the capability every pipeline element implements. A Step can
// mutate the shared Context and render a textual description of itself.
//
// Execute receives two contexts: the standard library context carries the
// caller's cancellation signal (the pipeline checks it between steps, and
// step actions may check it mid-flight), while *Context is the mutable data
// bag shared by every step in the run. Execute may read and write the bag in
// any pattern; a failure it cannot tolerate is returned, never swallowed.
//
// Describe appends one or more lines identifying the step to the builder.
// It must be idempotent and must not touch any Context. The indent argument
// is the column at which the step's child lines (if any) start; the step's
// own first line is written without a prefix because the caller has already
// positioned the cursor (e.g. after a " 1. " marker).
type Step interface {
	Execute(context.Context, *Context) error
	Describe(*strings.Builder, int)
	Name() Name
}

// Action is the function shape wrapped by FuncStep and by decorator hooks.
// It receives the cancellation context and the shared data bag.
type Action func(context.Context, *Context) error
