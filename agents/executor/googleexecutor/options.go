/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"fmt"

	"google.golang.org/genai"

	"chainguard.dev/skillcheck/agents/executor/retry"
	"chainguard.dev/skillcheck/agents/metrics"
	"chainguard.dev/skillcheck/agents/promptbuilder"
)

// Option configures the executor
type Option[Request promptbuilder.Bindable, Response any] func(*executor[Request, Response]) error

// WithModel overrides the default model
func WithModel[Request promptbuilder.Bindable, Response any](model string) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if model == "" {
			return fmt.Errorf("model cannot be empty")
		}
		e.model = model
		return nil
	}
}

// WithTemperature sets the sampling temperature. The default of 0 keeps
// repeated scoring of the same response stable.
func WithTemperature[Request promptbuilder.Bindable, Response any](temperature float32) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if temperature < 0 || temperature > 2 {
			return fmt.Errorf("temperature must be between 0 and 2, got %f", temperature)
		}
		e.temperature = temperature
		return nil
	}
}

// WithMaxOutputTokens sets the maximum number of output tokens
func WithMaxOutputTokens[Request promptbuilder.Bindable, Response any](tokens int32) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if tokens <= 0 {
			return fmt.Errorf("max output tokens must be positive, got %d", tokens)
		}
		e.maxOutputTokens = tokens
		return nil
	}
}

// WithSystemInstructions sets the system prompt for the executor
func WithSystemInstructions[Request promptbuilder.Bindable, Response any](prompt *promptbuilder.Prompt) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if prompt == nil {
			return fmt.Errorf("system instructions prompt cannot be nil")
		}
		e.systemInstructions = prompt
		return nil
	}
}

// WithResponseMIMEType sets the response MIME type (e.g. "application/json")
func WithResponseMIMEType[Request promptbuilder.Bindable, Response any](mimeType string) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		e.responseMIMEType = mimeType
		return nil
	}
}

// WithResponseSchema constrains the model output to the given schema.
// Implies a JSON response; callers should also set the MIME type.
func WithResponseSchema[Request promptbuilder.Bindable, Response any](schema *genai.Schema) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		e.responseSchema = schema
		return nil
	}
}

// WithThinking enables thought output with the given token budget
func WithThinking[Request promptbuilder.Bindable, Response any](budgetTokens int32) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if budgetTokens <= 0 {
			return fmt.Errorf("thinking budget must be positive, got %d", budgetTokens)
		}
		e.thinkingBudget = &budgetTokens
		return nil
	}
}

// WithAttributeEnricher sets an attribute enricher for metrics recorded by
// this executor
func WithAttributeEnricher[Request promptbuilder.Bindable, Response any](enricher metrics.AttributeEnricher) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		e.genaiMetrics.SetAttributeEnricher(enricher)
		return nil
	}
}

// WithRetryConfig overrides the default retry behavior for transient API errors
func WithRetryConfig[Request promptbuilder.Bindable, Response any](cfg retry.RetryConfig) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		e.retryConfig = cfg
		return nil
	}
}
