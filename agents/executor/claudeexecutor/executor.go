/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"

	"chainguard.dev/skillcheck/agents/agenttrace"
	"chainguard.dev/skillcheck/agents/executor/retry"
	"chainguard.dev/skillcheck/agents/metrics"
	"chainguard.dev/skillcheck/agents/promptbuilder"
	"chainguard.dev/skillcheck/agents/result"
)

// Interface is the public interface for single-shot Claude execution
type Interface[Request promptbuilder.Bindable, Response any] interface {
	// Execute binds the request into the prompt, sends one message, and
	// extracts a Response from the model's text output.
	Execute(ctx context.Context, request Request) (Response, error)
}

// executor provides the private implementation
type executor[Request promptbuilder.Bindable, Response any] struct {
	client               anthropic.Client
	modelName            string
	systemInstructions   *promptbuilder.Prompt
	prompt               *promptbuilder.Prompt
	maxTokens            int64
	temperature          float64
	thinkingBudgetTokens *int64            // nil = disabled, non-nil = enabled with budget
	genaiMetrics         *metrics.GenAI    // OpenTelemetry metrics for token usage
	retryConfig          retry.RetryConfig // retry configuration for transient Claude API errors
}

// New creates a new Executor with minimal required configuration
func New[Request promptbuilder.Bindable, Response any](
	client anthropic.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	// Uses a unified meter across all executors, with model name as a dimension
	genaiMetrics := metrics.NewGenAI("chainguard.ai.skillcheck")

	e := &executor[Request, Response]{
		client:       client,
		modelName:    "claude-sonnet-4-5",
		prompt:       prompt,
		maxTokens:    8192,
		temperature:  0, // judges must score deterministically
		genaiMetrics: genaiMetrics,
		retryConfig:  retry.DefaultRetryConfig(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return e, nil
}

func (e *executor[Request, Response]) Execute(ctx context.Context, request Request) (response Response, err error) {
	log := clog.FromContext(ctx)

	boundPrompt, err := request.Bind(e.prompt)
	if err != nil {
		return response, fmt.Errorf("failed to bind request to prompt: %w", err)
	}

	prompt, err := boundPrompt.Build()
	if err != nil {
		return response, fmt.Errorf("failed to build prompt: %w", err)
	}

	trace := agenttrace.StartTrace[Response](ctx, prompt)
	defer func() {
		trace.Complete(response, err)
	}()

	log.With("prompt_length", len(prompt)).
		With("model", e.modelName).
		Info("Starting Claude execution")

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.modelName),
		MaxTokens: e.maxTokens,
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(prompt),
			},
		}},
	}

	params.Temperature = anthropic.Float(e.temperature)
	// Temperature must be 1.0 when thinking is enabled
	// See: https://docs.claude.com/en/docs/build-with-claude/extended-thinking#important-considerations-when-using-extended-thinking
	if e.thinkingBudgetTokens != nil {
		params.Temperature = anthropic.Float(1.0)
		params.Thinking = anthropic.ThinkingConfigParamUnion{
			OfEnabled: &anthropic.ThinkingConfigEnabledParam{
				BudgetTokens: *e.thinkingBudgetTokens,
			},
		}
	}

	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return response, fmt.Errorf("building system prompt: %w", err)
		}
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	message, err := retry.RetryWithBackoff(ctx, e.retryConfig, "claude message", isRetryableClaudeError,
		func() (*anthropic.Message, error) {
			return e.client.Messages.New(ctx, params)
		})
	if err != nil {
		return response, fmt.Errorf("calling model %s: %w", e.modelName, err)
	}

	trace.RecordTokenUsage(e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
	e.genaiMetrics.RecordTokens(ctx, e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)

	var text string
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			text += variant.Text
		case anthropic.ThinkingBlock:
			trace.AddReasoning(variant.Thinking)
		}
	}
	if text == "" {
		return response, fmt.Errorf("model %s returned no text content", e.modelName)
	}

	log.With("output_tokens", message.Usage.OutputTokens).
		Debug("Claude execution complete")

	response, err = result.Extract[Response](text)
	if err != nil {
		return response, fmt.Errorf("extracting result: %w", err)
	}
	return response, nil
}
