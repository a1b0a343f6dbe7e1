/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"chainguard.dev/skillcheck/agents/agenttrace"
	"chainguard.dev/skillcheck/agents/executor/claudeexecutor"
	"chainguard.dev/skillcheck/agents/metrics"
	"chainguard.dev/skillcheck/evals/providers"
)

// claude implements Interface using the Anthropic API
type claude struct {
	cfg          providers.ModelConfig
	executor     claudeexecutor.Interface[*Request, RawVerdict]
	genaiMetrics *metrics.GenAI
}

// newClaude creates a new Claude judge instance
func newClaude(cfg providers.ModelConfig, opts ...claudeexecutor.Option[*Request, RawVerdict]) (Interface, error) {
	client := anthropic.NewClient()

	execOpts := []claudeexecutor.Option[*Request, RawVerdict]{ //nolint: prealloc
		claudeexecutor.WithModel[*Request, RawVerdict](cfg.ModelID),
		claudeexecutor.WithTemperature[*Request, RawVerdict](0),
		claudeexecutor.WithSystemInstructions[*Request, RawVerdict](systemPrompt),
		claudeexecutor.WithAttributeEnricher[*Request, RawVerdict](agenttrace.EnrichFromContext),
	}
	if cfg.MaxTokens > 0 {
		execOpts = append(execOpts, claudeexecutor.WithMaxTokens[*Request, RawVerdict](cfg.MaxTokens))
	}
	execOpts = append(execOpts, opts...)

	executor, err := claudeexecutor.New[*Request, RawVerdict](client, userPrompt, execOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating claude judge executor: %w", err)
	}

	genaiMetrics := metrics.NewGenAI("chainguard.ai.skillcheck")
	genaiMetrics.SetAttributeEnricher(agenttrace.EnrichFromContext)

	return &claude{
		cfg:          cfg,
		executor:     executor,
		genaiMetrics: genaiMetrics,
	}, nil
}

// Judge implements Interface
func (c *claude) Judge(ctx context.Context, request *Request) (*Verdict, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}
	c.genaiMetrics.RecordJudgeCall(ctx, c.cfg.ModelID, 1)

	raw, err := c.executor.Execute(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("judge %s: %w", c.cfg.Name(), err)
	}
	return raw.Normalize()
}
