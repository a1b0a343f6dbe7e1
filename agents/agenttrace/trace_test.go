/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestByCodeTracerRecordsOnComplete(t *testing.T) {
	var recorded []*Trace[string]
	tracer := ByCode[string](func(tr *Trace[string]) {
		recorded = append(recorded, tr)
	})

	ctx := WithTracer(context.Background(), tracer)
	trace := StartTrace[string](ctx, "score this response")
	trace.RecordTokenUsage("claude-sonnet-4", 1200, 300)
	trace.Complete("verdict", nil)

	if len(recorded) != 1 {
		t.Fatalf("expected 1 recorded trace, got %d", len(recorded))
	}
	got := recorded[0]
	if got.Result != "verdict" {
		t.Errorf("Result = %q", got.Result)
	}
	if got.Model != "claude-sonnet-4" || got.InputTokens != 1200 || got.OutputTokens != 300 {
		t.Errorf("token usage = %s in=%d out=%d", got.Model, got.InputTokens, got.OutputTokens)
	}
	if got.EndTime.IsZero() {
		t.Error("EndTime not set on Complete")
	}
}

func TestTokenUsageAccumulates(t *testing.T) {
	tracer := ByCode[string]()
	trace := StartTrace[string](WithTracer(context.Background(), tracer), "p")
	trace.RecordTokenUsage("gemini-2.5-flash", 100, 10)
	trace.RecordTokenUsage("gemini-2.5-flash", 50, 5)

	if trace.InputTokens != 150 || trace.OutputTokens != 15 {
		t.Errorf("tokens = in=%d out=%d, want 150/15", trace.InputTokens, trace.OutputTokens)
	}
}

func TestExecutionContextRoundTrip(t *testing.T) {
	execCtx := ExecutionContext{
		SkillID:  "contract-review",
		Version:  "v2",
		DocName:  "saas-msa",
		ModelKey: "claude-sonnet",
		Role:     "judge",
	}
	ctx := WithExecutionContext(context.Background(), execCtx)
	if got := GetExecutionContext(ctx); got != execCtx {
		t.Errorf("GetExecutionContext() = %+v, want %+v", got, execCtx)
	}

	if got := GetExecutionContext(context.Background()); got != (ExecutionContext{}) {
		t.Errorf("empty context should yield zero ExecutionContext, got %+v", got)
	}

	trace := StartTrace[string](WithTracer(ctx, ByCode[string]()), "p")
	if trace.ExecContext != execCtx {
		t.Errorf("trace.ExecContext = %+v", trace.ExecContext)
	}
}

func TestEnrichFromContext(t *testing.T) {
	base := []attribute.KeyValue{attribute.String("model", "claude-sonnet-4")}

	ctx := WithExecutionContext(context.Background(), ExecutionContext{
		SkillID:  "contract-review",
		Version:  "v2",
		DocName:  "saas-msa",
		ModelKey: "claude-sonnet",
		Role:     "judge",
	})
	got := attribute.NewSet(EnrichFromContext(ctx, base)...)
	for _, want := range []attribute.KeyValue{
		attribute.String("model", "claude-sonnet-4"),
		attribute.String("skill", "contract-review"),
		attribute.String("model_key", "claude-sonnet"),
		attribute.String("role", "judge"),
	} {
		if v, ok := got.Value(want.Key); !ok || v != want.Value {
			t.Errorf("enriched attributes missing %s=%s", want.Key, want.Value.AsString())
		}
	}
	// Version and doc name are trace-only; they must not become labels.
	for _, key := range []attribute.Key{"version", "doc_name"} {
		if _, ok := got.Value(key); ok {
			t.Errorf("enriched attributes should not carry %s", key)
		}
	}

	// Without an execution context the base attributes pass through.
	plain := EnrichFromContext(context.Background(), base)
	if len(plain) != len(base) || plain[0] != base[0] {
		t.Errorf("EnrichFromContext without context = %v, want %v", plain, base)
	}
}

func TestTraceStringIncludesError(t *testing.T) {
	trace := StartTrace[string](WithTracer(context.Background(), ByCode[string]()), "prompt")
	trace.Complete("", errors.New("provider timeout"))

	if s := trace.String(); !strings.Contains(s, "provider timeout") {
		t.Errorf("String() missing error: %s", s)
	}
}

func TestTraceIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := generateTraceID()
		if seen[id] {
			t.Fatalf("duplicate trace id %q", id)
		}
		seen[id] = true
	}
}
