/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"chainguard.dev/skillcheck/agents/agenttrace"
	"chainguard.dev/skillcheck/agents/executor/googleexecutor"
	"chainguard.dev/skillcheck/agents/metrics"
	"chainguard.dev/skillcheck/evals/providers"
)

// google implements Interface using the Gemini API
type google struct {
	cfg          providers.ModelConfig
	executor     googleexecutor.Interface[*Request, RawVerdict]
	genaiMetrics *metrics.GenAI
}

// newGoogle creates a new Gemini judge instance
func newGoogle(ctx context.Context, cfg providers.ModelConfig, opts ...googleexecutor.Option[*Request, RawVerdict]) (Interface, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	execOpts := []googleexecutor.Option[*Request, RawVerdict]{ //nolint: prealloc
		googleexecutor.WithModel[*Request, RawVerdict](cfg.ModelID),
		googleexecutor.WithTemperature[*Request, RawVerdict](0),
		googleexecutor.WithSystemInstructions[*Request, RawVerdict](systemPrompt),
		// The verdict's issue ids are dynamic, so there is no fixed response
		// schema to constrain against; JSON output mode is enough.
		googleexecutor.WithResponseMIMEType[*Request, RawVerdict]("application/json"),
		googleexecutor.WithAttributeEnricher[*Request, RawVerdict](agenttrace.EnrichFromContext),
	}
	if cfg.MaxTokens > 0 {
		execOpts = append(execOpts, googleexecutor.WithMaxOutputTokens[*Request, RawVerdict](int32(cfg.MaxTokens)))
	}
	execOpts = append(execOpts, opts...)

	executor, err := googleexecutor.New[*Request, RawVerdict](client, userPrompt, execOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini judge executor: %w", err)
	}

	genaiMetrics := metrics.NewGenAI("chainguard.ai.skillcheck")
	genaiMetrics.SetAttributeEnricher(agenttrace.EnrichFromContext)

	return &google{
		cfg:          cfg,
		executor:     executor,
		genaiMetrics: genaiMetrics,
	}, nil
}

// Judge implements Interface
func (g *google) Judge(ctx context.Context, request *Request) (*Verdict, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}
	g.genaiMetrics.RecordJudgeCall(ctx, g.cfg.ModelID, 1)

	raw, err := g.executor.Execute(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("judge %s: %w", g.cfg.Name(), err)
	}
	return raw.Normalize()
}
