/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package providers

import (
	"fmt"
	"os"
	"sort"
)

// Provider identifies the upstream vendor family a model call routes
// through. Family identity is what the self-enhancement bias check keys on.
type Provider string

const (
	Anthropic Provider = "anthropic"
	OpenAI    Provider = "openai"
	Google    Provider = "google"
	// Together serves open-weight models through an OpenAI-compatible API.
	Together Provider = "together"
)

// Valid reports whether p is a known provider family.
func (p Provider) Valid() bool {
	switch p {
	case Anthropic, OpenAI, Google, Together:
		return true
	}
	return false
}

// ModelConfig describes one judge or candidate model.
type ModelConfig struct {
	// Key is the registry lookup key (e.g. "claude-sonnet", "gpt-5-mini").
	Key string `json:"key" yaml:"key"`
	// Provider is the vendor family the call routes through.
	Provider Provider `json:"provider" yaml:"provider"`
	// ModelID is the provider-side model identifier.
	ModelID string `json:"model_id" yaml:"model_id"`
	// DisplayName is the human-readable name used in reports and warnings.
	DisplayName string `json:"display_name" yaml:"display_name"`
	// EnvKey names the environment variable holding the API key; the model
	// is available only when that variable is set.
	EnvKey string `json:"env_key" yaml:"env_key"`
	// BaseURL overrides the provider endpoint (OpenAI-compatible hosts).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	MaxTokens   int64    `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// Name returns the display name, falling back to the registry key.
func (c ModelConfig) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Key
}

// Available reports whether the model's API key is present in the
// environment.
func (c ModelConfig) Available() bool {
	return c.EnvKey != "" && os.Getenv(c.EnvKey) != ""
}

// Registry holds the known model configurations keyed by registry key.
type Registry map[string]ModelConfig

// Get returns the config for key.
func (r Registry) Get(key string) (ModelConfig, error) {
	cfg, ok := r[key]
	if !ok {
		return ModelConfig{}, fmt.Errorf("unknown model %q", key)
	}
	return cfg, nil
}

// Keys returns all registry keys in sorted order.
func (r Registry) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Available returns the subset of the registry whose API keys are present
// in the environment.
func (r Registry) Available() Registry {
	out := make(Registry)
	for k, cfg := range r {
		if cfg.Available() {
			out[k] = cfg
		}
	}
	return out
}

// Default returns the built-in registry. A deployment normally overrides
// this with a models file via Load.
func Default() Registry {
	return Registry{
		"claude-sonnet": {
			Key:         "claude-sonnet",
			Provider:    Anthropic,
			ModelID:     "claude-sonnet-4-5",
			DisplayName: "Claude Sonnet 4.5",
			EnvKey:      "ANTHROPIC_API_KEY",
			MaxTokens:   16384,
		},
		"claude-haiku": {
			Key:         "claude-haiku",
			Provider:    Anthropic,
			ModelID:     "claude-haiku-4-5",
			DisplayName: "Claude Haiku 4.5",
			EnvKey:      "ANTHROPIC_API_KEY",
			MaxTokens:   16384,
		},
		"gpt-5": {
			Key:         "gpt-5",
			Provider:    OpenAI,
			ModelID:     "gpt-5",
			DisplayName: "GPT-5",
			EnvKey:      "OPENAI_API_KEY",
			MaxTokens:   16384,
		},
		"gpt-5-mini": {
			Key:         "gpt-5-mini",
			Provider:    OpenAI,
			ModelID:     "gpt-5-mini",
			DisplayName: "GPT-5 Mini",
			EnvKey:      "OPENAI_API_KEY",
			MaxTokens:   16384,
		},
		"gemini-pro": {
			Key:         "gemini-pro",
			Provider:    Google,
			ModelID:     "gemini-2.5-pro",
			DisplayName: "Gemini 2.5 Pro",
			EnvKey:      "GOOGLE_API_KEY",
			MaxTokens:   16384,
		},
		"gemini-flash": {
			Key:         "gemini-flash",
			Provider:    Google,
			ModelID:     "gemini-2.5-flash",
			DisplayName: "Gemini 2.5 Flash",
			EnvKey:      "GOOGLE_API_KEY",
			MaxTokens:   16384,
		},
		"llama-70b": {
			Key:         "llama-70b",
			Provider:    Together,
			ModelID:     "meta-llama/Llama-3.3-70B-Instruct-Turbo",
			DisplayName: "Llama 3.3 70B",
			EnvKey:      "TOGETHER_API_KEY",
			BaseURL:     "https://api.together.xyz/v1",
			MaxTokens:   16384,
		},
	}
}
