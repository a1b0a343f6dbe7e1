/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// ReasoningContent represents internal reasoning from an LLM
type ReasoningContent struct {
	Thinking string `json:"thinking"`
}

// Trace represents a complete model interaction from prompt to parsed result.
// T is the structured response type the executor extracts.
type Trace[T any] struct {
	ID           string             `json:"id"`
	InputPrompt  string             `json:"input_prompt"`
	ExecContext  ExecutionContext   `json:"exec_context,omitempty"`
	Reasoning    []ReasoningContent `json:"reasoning,omitempty"`
	Result       T                  `json:"result"`
	Error        error              `json:"error,omitempty"`
	Model        string             `json:"model,omitempty"`
	InputTokens  int64              `json:"input_tokens,omitempty"`
	OutputTokens int64              `json:"output_tokens,omitempty"`
	StartTime    time.Time          `json:"start_time"`
	EndTime      time.Time          `json:"end_time"`
	tracer       Tracer[T]          // Tracer for auto-recording on Complete
	mu           sync.Mutex         // Protects mutable fields
	ctx          context.Context
	span         oteltrace.Span
}

// newTraceWithTracer creates a new trace with the given tracer and prompt
func newTraceWithTracer[T any](ctx context.Context, tracer Tracer[T], prompt string) *Trace[T] {
	execCtx := GetExecutionContext(ctx)

	tr := otel.Tracer("chainguard.ai.skillcheck.agenttrace",
		oteltrace.WithInstrumentationVersion("1.0.0"))

	spanAttrs := []oteltrace.SpanStartOption{
		oteltrace.WithAttributes(attribute.String("eval.prompt", prompt)),
	}
	if execCtx.SkillID != "" {
		spanAttrs = append(spanAttrs, oteltrace.WithAttributes(attribute.String("skill", execCtx.SkillID)))
	}
	if execCtx.DocName != "" {
		spanAttrs = append(spanAttrs, oteltrace.WithAttributes(attribute.String("doc", execCtx.DocName)))
	}
	if execCtx.Role != "" {
		spanAttrs = append(spanAttrs, oteltrace.WithAttributes(attribute.String("role", execCtx.Role)))
	}

	ctx, span := tr.Start(ctx, "eval.execution", spanAttrs...)

	return &Trace[T]{
		ID:          generateTraceID(),
		InputPrompt: prompt,
		ExecContext: execCtx,
		StartTime:   time.Now(),
		tracer:      tracer,
		ctx:         ctx,
		span:        span,
	}
}

// RecordTokenUsage records model and token usage on the trace and its span.
// Token counts end up in the persisted evaluation record, so they are kept as
// fields rather than span-only attributes.
func (t *Trace[T]) RecordTokenUsage(model string, inputTokens, outputTokens int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.Model = model
	t.InputTokens += inputTokens
	t.OutputTokens += outputTokens

	if t.span != nil {
		t.span.SetAttributes(
			attribute.String("model", model),
			attribute.Int64("tokens.input", t.InputTokens),
			attribute.Int64("tokens.output", t.OutputTokens),
			attribute.Int64("tokens.total", t.InputTokens+t.OutputTokens),
		)
	}
}

// AddReasoning appends a block of model-internal reasoning to the trace
func (t *Trace[T]) AddReasoning(thinking string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Reasoning = append(t.Reasoning, ReasoningContent{Thinking: thinking})
}

// Complete marks the trace as complete with the given result and automatically records it
func (t *Trace[T]) Complete(result T, err error) {
	t.mu.Lock()
	t.Result = result
	t.Error = err
	t.EndTime = time.Now()
	tracer := t.tracer
	span := t.span
	t.mu.Unlock()

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}

	tracer.RecordTrace(t)
}

// Duration returns the total duration of the trace
func (t *Trace[T]) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.EndTime.IsZero() {
		return time.Since(t.StartTime)
	}
	return t.EndTime.Sub(t.StartTime)
}

// String returns a structured representation of the trace
func (t *Trace[T]) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder

	var duration time.Duration
	if t.EndTime.IsZero() {
		duration = time.Since(t.StartTime)
	} else {
		duration = t.EndTime.Sub(t.StartTime)
	}

	sb.WriteString(fmt.Sprintf("=== Trace %s ===\n", t.ID))
	sb.WriteString(fmt.Sprintf("Prompt: %q\n", truncate(t.InputPrompt, 500)))
	sb.WriteString(fmt.Sprintf("Duration: %v\n", duration))
	if t.Model != "" {
		sb.WriteString(fmt.Sprintf("Model: %s (in=%d out=%d tokens)\n", t.Model, t.InputTokens, t.OutputTokens))
	}

	if len(t.Reasoning) > 0 {
		sb.WriteString(fmt.Sprintf("\nReasoning (%d blocks):\n", len(t.Reasoning)))
		for i, r := range t.Reasoning {
			sb.WriteString(fmt.Sprintf("  [%d] %s\n", i+1, truncate(r.Thinking, 200)))
		}
	}

	sb.WriteString("\nCompletion:\n")
	switch {
	case t.Error != nil:
		sb.WriteString(fmt.Sprintf("  Error: %v\n", t.Error))
	case any(t.Result) != nil:
		sb.WriteString(fmt.Sprintf("  Result: %s\n", truncate(fmt.Sprintf("%v", t.Result), 500)))
	default:
		sb.WriteString("  Result: <nil>\n")
	}

	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// generateTraceID generates a unique trace ID
func generateTraceID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// Fallback to timestamp only if random generation fails
		return time.Now().Format("20060102-150405.000000")
	}
	return fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), hex.EncodeToString(b))
}
