/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package agenttrace records model interactions as structured traces.
//
// Every executor call produces a Trace: the built prompt, the parsed result,
// token usage, timing, and any internal reasoning the provider surfaced. The
// trace doubles as an OpenTelemetry span, so an evaluation run can be followed
// end to end across the candidate call and each judge on the panel.
//
// Tracers are injected via context. The default tracer logs completed traces
// through clog; tests inject ByCode tracers to capture traces directly:
//
//	ctx = agenttrace.WithTracer(ctx, agenttrace.ByCode[*judge.RawVerdict](func(tr *agenttrace.Trace[*judge.RawVerdict]) {
//		captured = append(captured, tr)
//	}))
//
// ExecutionContext carries the (skill, version, document, model, role) tuple
// for the evaluation a call belongs to; it flows into span attributes and
// bounded metric labels.
package agenttrace
