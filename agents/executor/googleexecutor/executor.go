/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"

	"chainguard.dev/skillcheck/agents/agenttrace"
	"chainguard.dev/skillcheck/agents/executor/retry"
	"chainguard.dev/skillcheck/agents/metrics"
	"chainguard.dev/skillcheck/agents/promptbuilder"
	"chainguard.dev/skillcheck/agents/result"
)

// Interface defines the contract for single-shot Gemini executors
type Interface[Request promptbuilder.Bindable, Response any] interface {
	// Execute binds the request into the prompt, sends one message, and
	// extracts a Response from the model's output.
	Execute(ctx context.Context, request Request) (Response, error)
}

// executor is the private implementation of Interface
type executor[Request promptbuilder.Bindable, Response any] struct {
	client             *genai.Client
	prompt             *promptbuilder.Prompt
	model              string
	temperature        float32
	maxOutputTokens    int32
	systemInstructions *promptbuilder.Prompt
	responseMIMEType   string
	responseSchema     *genai.Schema
	thinkingBudget     *int32            // nil = disabled, non-nil = enabled with budget
	genaiMetrics       *metrics.GenAI    // OpenTelemetry metrics for token usage
	retryConfig        retry.RetryConfig // retry configuration for transient Vertex AI errors
}

// New creates a new Gemini executor with the given configuration
func New[Request promptbuilder.Bindable, Response any](
	client *genai.Client,
	prompt *promptbuilder.Prompt,
	options ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt is required")
	}

	// Uses a unified meter across all executors, with model name as a dimension
	genaiMetrics := metrics.NewGenAI("chainguard.ai.skillcheck")

	exec := &executor[Request, Response]{
		client:          client,
		prompt:          prompt,
		model:           "gemini-2.5-flash",
		temperature:     0, // judges must score deterministically
		maxOutputTokens: 8192,
		genaiMetrics:    genaiMetrics,
		retryConfig:     retry.DefaultRetryConfig(),
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

	config := &genai.GenerateContentConfig{
		Temperature:     ptr(e.temperature),
		MaxOutputTokens: e.maxOutputTokens,
	}

	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return resp, fmt.Errorf("building system prompt: %w", err)
		}
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{
				Text: systemPrompt,
			}},
		}
	}

	if e.responseMIMEType != "" {
		config.ResponseMIMEType = e.responseMIMEType
	}
	if e.responseSchema != nil {
		config.ResponseSchema = e.responseSchema
	}
	if e.thinkingBudget != nil {
		config.ThinkingConfig = &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  e.thinkingBudget,
		}
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{{
			Text: prompt,
		}},
	}}

	log.With("model", e.model).
		With("prompt_length", len(prompt)).
		Info("Starting Gemini execution")

	response, err := retry.RetryWithBackoff(ctx, e.retryConfig, "generate_content", isRetryableGeminiError,
		func() (*genai.GenerateContentResponse, error) {
			return e.client.Models.GenerateContent(ctx, e.model, contents, config)
		})
	if err != nil {
		return resp, fmt.Errorf("calling model %q: %w", e.model, err)
	}

	if response.UsageMetadata != nil {
		usage := response.UsageMetadata
		trace.RecordTokenUsage(e.model, int64(usage.PromptTokenCount), int64(usage.CandidatesTokenCount))
		e.genaiMetrics.RecordTokens(ctx, e.model, int64(usage.PromptTokenCount), int64(usage.CandidatesTokenCount))
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return resp, fmt.Errorf("model %q returned no candidates", e.model)
	}

	var text string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text == "" {
			continue
		}
		if part.Thought {
			trace.AddReasoning(part.Text)
			continue
		}
		text += part.Text
	}
	if text == "" {
		return resp, fmt.Errorf("model %q returned no text content", e.model)
	}

	resp, err = result.Extract[Response](text)
	if err != nil {
		return resp, fmt.Errorf("extracting result: %w", err)
	}
	return resp, nil
}

func ptr[T any](v T) *T {
	return &v
}
