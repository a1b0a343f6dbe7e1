/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"

	"chainguard.dev/skillcheck/agents/agenttrace"
	"chainguard.dev/skillcheck/agents/executor/retry"
	"chainguard.dev/skillcheck/agents/metrics"
	"chainguard.dev/skillcheck/agents/promptbuilder"
	"chainguard.dev/skillcheck/agents/result"
	"chainguard.dev/skillcheck/agents/schema"
)

// Interface defines the contract for single-shot OpenAI executors
type Interface[Request promptbuilder.Bindable, Response any] interface {
	// Execute binds the request into the prompt, sends one message, and
	// extracts a Response from the model's output.
	Execute(ctx context.Context, request Request) (Response, error)
}

// executor is the private implementation of Interface
type executor[Request promptbuilder.Bindable, Response any] struct {
	client             openai.Client
	prompt             *promptbuilder.Prompt
	model              string
	temperature        float64
	maxTokens          int64
	systemInstructions *promptbuilder.Prompt
	structuredName     string            // non-empty = constrain output to Response's schema
	genaiMetrics       *metrics.GenAI    // OpenTelemetry metrics for token usage
	retryConfig        retry.RetryConfig // retry configuration for transient OpenAI API errors
}

// New creates a new OpenAI executor with the given configuration
func New[Request promptbuilder.Bindable, Response any](
	client openai.Client,
	prompt *promptbuilder.Prompt,
	options ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt is required")
	}

	// Uses a unified meter across all executors, with model name as a dimension
	genaiMetrics := metrics.NewGenAI("chainguard.ai.skillcheck")

	exec := &executor[Request, Response]{
		client:       client,
		prompt:       prompt,
		model:        "gpt-5",
		temperature:  0, // judges must score deterministically
		maxTokens:    8192,
		genaiMetrics: genaiMetrics,
		retryConfig:  retry.DefaultRetryConfig(),
	}

	for _, opt := range options {
		if err := opt(exec); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return exec, nil
}

// Execute implements the Interface
func (e *executor[Request, Response]) Execute(ctx context.Context, request Request) (resp Response, err error) {
	log := clog.FromContext(ctx)

	// Bind the request to the prompt
	boundPrompt, err := request.Bind(e.prompt)
	if err != nil {
		return resp, fmt.Errorf("failed to bind request to prompt: %w", err)
	}

	prompt, err := boundPrompt.Build()
	if err != nil {
		return resp, fmt.Errorf("failed to build prompt: %w", err)
	}

	trace := agenttrace.StartTrace[Response](ctx, prompt)
	defer func() {
		trace.Complete(resp, err)
	}()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return resp, fmt.Errorf("building system prompt: %w", err)
		}
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(e.model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(e.maxTokens),
		Temperature:         openai.Float(e.temperature),
	}

	if e.structuredName != "" {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   e.structuredName,
					Schema: schema.ReflectType[Response](),
				},
			},
		}
	}

	log.With("model", e.model).
		With("prompt_length", len(prompt)).
		Info("Starting OpenAI execution")

	completion, err := retry.RetryWithBackoff(ctx, e.retryConfig, "chat completion", isRetryableOpenAIError,
		func() (*openai.ChatCompletion, error) {
			return e.client.Chat.Completions.New(ctx, params)
		})
	if err != nil {
		return resp, fmt.Errorf("calling model %q: %w", e.model, err)
	}

	trace.RecordTokenUsage(e.model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	e.genaiMetrics.RecordTokens(ctx, e.model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)

	if len(completion.Choices) == 0 {
		return resp, fmt.Errorf("model %q returned no choices", e.model)
	}
	text := completion.Choices[0].Message.Content
	if text == "" {
		return resp, fmt.Errorf("model %q returned no text content", e.model)
	}

	resp, err = result.Extract[Response](text)
	if err != nil {
		return resp, fmt.Errorf("extracting result: %w", err)
	}
	return resp, nil
}
