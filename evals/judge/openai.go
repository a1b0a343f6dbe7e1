/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"chainguard.dev/skillcheck/agents/agenttrace"
	"chainguard.dev/skillcheck/agents/executor/openaiexecutor"
	"chainguard.dev/skillcheck/agents/metrics"
	"chainguard.dev/skillcheck/evals/providers"
)

// oai implements Interface using the OpenAI API, or any OpenAI-compatible
// endpoint (e.g. Together) via the config's base URL.
type oai struct {
	cfg          providers.ModelConfig
	executor     openaiexecutor.Interface[*Request, RawVerdict]
	genaiMetrics *metrics.GenAI
}

// newOpenAI creates a new OpenAI-compatible judge instance
func newOpenAI(cfg providers.ModelConfig, opts ...openaiexecutor.Option[*Request, RawVerdict]) (Interface, error) {
	var clientOpts []option.RequestOption
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts,
			option.WithBaseURL(cfg.BaseURL),
			option.WithAPIKey(os.Getenv(cfg.EnvKey)),
		)
	}
	client := openai.NewClient(clientOpts...)

	execOpts := []openaiexecutor.Option[*Request, RawVerdict]{ //nolint: prealloc
		openaiexecutor.WithModel[*Request, RawVerdict](cfg.ModelID),
		openaiexecutor.WithTemperature[*Request, RawVerdict](0),
		openaiexecutor.WithSystemInstructions[*Request, RawVerdict](systemPrompt),
		openaiexecutor.WithAttributeEnricher[*Request, RawVerdict](agenttrace.EnrichFromContext),
	}
	if cfg.Provider == providers.OpenAI {
		// Compatible hosts do not reliably support json_schema response
		// formats, so only constrain first-party OpenAI calls.
		execOpts = append(execOpts, openaiexecutor.WithStructuredOutput[*Request, RawVerdict]("judge_verdict"))
	}
	if cfg.MaxTokens > 0 {
		execOpts = append(execOpts, openaiexecutor.WithMaxTokens[*Request, RawVerdict](cfg.MaxTokens))
	}
	execOpts = append(execOpts, opts...)

	executor, err := openaiexecutor.New[*Request, RawVerdict](client, userPrompt, execOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating openai judge executor: %w", err)
	}

	genaiMetrics := metrics.NewGenAI("chainguard.ai.skillcheck")
	genaiMetrics.SetAttributeEnricher(agenttrace.EnrichFromContext)

	return &oai{
		cfg:          cfg,
		executor:     executor,
		genaiMetrics: genaiMetrics,
	}, nil
}

// Judge implements Interface
func (o *oai) Judge(ctx context.Context, request *Request) (*Verdict, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}
	o.genaiMetrics.RecordJudgeCall(ctx, o.cfg.ModelID, 1)

	raw, err := o.executor.Execute(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("judge %s: %w", o.cfg.Name(), err)
	}
	return raw.Normalize()
}
