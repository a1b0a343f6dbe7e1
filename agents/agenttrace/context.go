/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// ExecutionContext identifies which evaluation a model call belongs to.
// It enriches metrics and trace spans so token usage can be attributed to a
// (skill, document, model) combination.
type ExecutionContext struct {
	SkillID  string `json:"skill_id,omitempty"`  // Skill under evaluation, e.g. "contract-review"
	Version  string `json:"version,omitempty"`   // Skill version, e.g. "v3"
	DocName  string `json:"doc_name,omitempty"`  // Test document name
	ModelKey string `json:"model_key,omitempty"` // Registry key of the model being called
	Role     string `json:"role,omitempty"`      // "candidate" or "judge"
}

// EnrichAttributes adds execution context attributes to the provided base
// attributes, using only BOUNDED labels.
//
// DocName and Version are NOT included in metrics: every new fixture or skill
// revision would mint a new time series. They remain on the ExecutionContext
// for traces, where cardinality is not a concern.
func (e ExecutionContext) EnrichAttributes(baseAttrs []attribute.KeyValue) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, len(baseAttrs), len(baseAttrs)+3)
	copy(attrs, baseAttrs)

	if e.SkillID != "" {
		attrs = append(attrs, attribute.String("skill", e.SkillID))
	}
	if e.ModelKey != "" {
		attrs = append(attrs, attribute.String("model_key", e.ModelKey))
	}
	if e.Role != "" {
		attrs = append(attrs, attribute.String("role", e.Role))
	}

	return attrs
}

type contextKey string

const executionContextKey contextKey = "execution_context"

// WithExecutionContext adds execution context to the Go context
func WithExecutionContext(ctx context.Context, execCtx ExecutionContext) context.Context {
	return context.WithValue(ctx, executionContextKey, execCtx)
}

// EnrichFromContext applies the execution context carried by ctx to a set of
// base metric attributes. Its signature matches the executors' attribute
// enricher option, so it can be passed directly to WithAttributeEnricher.
// When ctx carries no execution context the base attributes pass through
// unchanged.
func EnrichFromContext(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue {
	return GetExecutionContext(ctx).EnrichAttributes(baseAttrs)
}

// GetExecutionContext retrieves execution context from the Go context
func GetExecutionContext(ctx context.Context) ExecutionContext {
	if val := ctx.Value(executionContextKey); val != nil {
		if execCtx, ok := val.(ExecutionContext); ok {
			return execCtx
		}
	}
	return ExecutionContext{}
}
