/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// NewDefaultTracer creates a tracer that logs completed traces to clog
func NewDefaultTracer[T any](ctx context.Context) Tracer[T] {
	logger := clog.FromContext(ctx)

	callback := func(trace *Trace[T]) {
		logger.With(
			"trace_id", trace.ID,
			"duration_ms", trace.Duration().Milliseconds(),
			"model", trace.Model,
			"input_tokens", trace.InputTokens,
			"output_tokens", trace.OutputTokens,
		).Info("Evaluation trace completed")
	}

	return ByCode[T](callback)
}
