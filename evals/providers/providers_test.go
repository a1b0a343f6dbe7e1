/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package providers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	require.NotEmpty(t, r)

	for key, cfg := range r {
		require.Equal(t, key, cfg.Key)
		require.True(t, cfg.Provider.Valid(), "model %s has invalid provider %q", key, cfg.Provider)
		require.NotEmpty(t, cfg.ModelID, "model %s missing model_id", key)
		require.NotEmpty(t, cfg.EnvKey, "model %s missing env_key", key)
	}
}

func TestRegistryGet(t *testing.T) {
	r := Default()

	cfg, err := r.Get("claude-sonnet")
	require.NoError(t, err)
	require.Equal(t, Anthropic, cfg.Provider)

	_, err = r.Get("nonexistent")
	require.ErrorContains(t, err, `unknown model "nonexistent"`)
}

func TestAvailable(t *testing.T) {
	r := Registry{
		"with-key":    {Key: "with-key", Provider: Anthropic, ModelID: "m", EnvKey: "SKILLCHECK_TEST_API_KEY"},
		"without-key": {Key: "without-key", Provider: OpenAI, ModelID: "m", EnvKey: "SKILLCHECK_TEST_MISSING_KEY"},
		"no-env-key":  {Key: "no-env-key", Provider: Google, ModelID: "m"},
	}

	t.Setenv("SKILLCHECK_TEST_API_KEY", "sk-test")

	available := r.Available()
	require.Len(t, available, 1)
	require.Contains(t, available, "with-key")
}

func TestName(t *testing.T) {
	require.Equal(t, "Claude Sonnet 4.5", ModelConfig{Key: "claude-sonnet", DisplayName: "Claude Sonnet 4.5"}.Name())
	require.Equal(t, "claude-sonnet", ModelConfig{Key: "claude-sonnet"}.Name())
}

func TestParse(t *testing.T) {
	registry, err := Parse([]byte(`
models:
  claude-sonnet:
    provider: anthropic
    model_id: claude-sonnet-4-5
    display_name: Claude Sonnet 4.5
    env_key: ANTHROPIC_API_KEY
    max_tokens: 16384
  llama-70b:
    provider: together
    model_id: meta-llama/Llama-3.3-70B-Instruct-Turbo
    env_key: TOGETHER_API_KEY
    base_url: https://api.together.xyz/v1
`))
	require.NoError(t, err)
	require.Len(t, registry, 2)
	require.Equal(t, "claude-sonnet", registry["claude-sonnet"].Key)
	require.Equal(t, int64(16384), registry["claude-sonnet"].MaxTokens)
	require.Equal(t, "https://api.together.xyz/v1", registry["llama-70b"].BaseURL)
	require.Equal(t, []string{"claude-sonnet", "llama-70b"}, registry.Keys())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`models: {}`))
	require.ErrorContains(t, err, "declares no models")

	_, err = Parse([]byte("models:\n  m:\n    provider: acme\n    model_id: x\n"))
	require.ErrorContains(t, err, `unknown provider "acme"`)

	_, err = Parse([]byte("models:\n  m:\n    provider: openai\n"))
	require.ErrorContains(t, err, "model_id is required")
}
