/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
)

// Tracer is the interface for creating and recording traces
type Tracer[T any] interface {
	// NewTrace creates a new trace with the given prompt
	NewTrace(ctx context.Context, prompt string) *Trace[T]
	// RecordTrace records a completed trace
	RecordTrace(trace *Trace[T])
}

// TraceCallback is a function that receives completed traces
type TraceCallback[T any] func(*Trace[T])

// tracerKey is the context key for tracers of type T
type tracerKey[T any] struct{}

// WithTracer returns a new context carrying the given tracer
func WithTracer[T any](ctx context.Context, tracer Tracer[T]) context.Context {
	return context.WithValue(ctx, tracerKey[T]{}, tracer)
}

// TracerFromContext returns the tracer from the context, or a default
// clog-backed tracer when none has been injected.
func TracerFromContext[T any](ctx context.Context) Tracer[T] {
	if tracer, ok := ctx.Value(tracerKey[T]{}).(Tracer[T]); ok {
		return tracer
	}
	return NewDefaultTracer[T](ctx)
}

// StartTrace starts a new trace using the tracer from the context
func StartTrace[T any](ctx context.Context, prompt string) *Trace[T] {
	tracer := TracerFromContext[T](ctx)
	return tracer.NewTrace(ctx, prompt)
}

// byCodeTracer implements Tracer by invoking callback functions on completion
type byCodeTracer[T any] struct {
	callbacks []TraceCallback[T]
}

// ByCode creates a Tracer that invokes the given callbacks when traces are
// recorded. Tests use this to capture judge traces without log noise.
func ByCode[T any](callbacks ...TraceCallback[T]) Tracer[T] {
	return &byCodeTracer[T]{callbacks: callbacks}
}

// NewTrace creates a new trace with the given prompt
func (t *byCodeTracer[T]) NewTrace(ctx context.Context, prompt string) *Trace[T] {
	return newTraceWithTracer[T](ctx, t, prompt)
}

// RecordTrace invokes all callbacks with the completed trace
func (t *byCodeTracer[T]) RecordTrace(trace *Trace[T]) {
	for _, callback := range t.callbacks {
		if callback != nil {
			callback(trace)
		}
	}
}
