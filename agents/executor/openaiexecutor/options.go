/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"fmt"

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
func WithTemperature[Request promptbuilder.Bindable, Response any](temperature float64) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if temperature < 0 || temperature > 2 {
			return fmt.Errorf("temperature must be between 0 and 2, got %f", temperature)
		}
		e.temperature = temperature
		return nil
	}
}

// WithMaxTokens sets the maximum number of completion tokens
func WithMaxTokens[Request promptbuilder.Bindable, Response any](tokens int64) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		e.maxTokens = tokens
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

// WithStructuredOutput constrains the model output to Response's reflected
// JSON schema, registered under the given name.
func WithStructuredOutput[Request promptbuilder.Bindable, Response any](name string) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if name == "" {
			return fmt.Errorf("structured output name cannot be empty")
		}
		e.structuredName = name
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
