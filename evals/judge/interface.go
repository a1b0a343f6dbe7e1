/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/skillcheck/evals/providers"
)

// Interface defines the contract for judge implementations
type Interface interface {
	// Judge scores a candidate response against the request's answer key,
	// returning the normalized verdict.
	Judge(ctx context.Context, request *Request) (*Verdict, error)
}

// validateRequest checks the fields every provider judge requires.
func validateRequest(request *Request) error {
	if request == nil {
		return errors.New("request is required")
	}
	if request.Key == nil {
		return errors.New("answer key is required")
	}
	if request.Document == "" {
		return errors.New("document is required")
	}
	if request.Response == "" {
		return errors.New("response is required")
	}
	return nil
}

// New creates a judge for the given model configuration by delegating to
// the implementation for its provider family. The model's API key is read
// from the environment variable named by the config.
//
// Judges attribute their token and call metrics with any execution context
// carried by the ctx passed to Judge (see agenttrace.WithExecutionContext).
func New(ctx context.Context, cfg providers.ModelConfig) (Interface, error) {
	switch cfg.Provider {
	case providers.Anthropic:
		return newClaude(cfg)
	case providers.Google:
		return newGoogle(ctx, cfg)
	case providers.OpenAI, providers.Together:
		return newOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider %q for model %q", cfg.Provider, cfg.Key)
	}
}
