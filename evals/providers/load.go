/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package providers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a registry from a YAML models file of the form:
//
//	models:
//	  claude-sonnet:
//	    provider: anthropic
//	    model_id: claude-sonnet-4-5
//	    env_key: ANTHROPIC_API_KEY
//
// Entry keys are copied onto each ModelConfig.Key.
func Load(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading models file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a registry from YAML (or JSON, which YAML subsumes).
func Parse(data []byte) (Registry, error) {
	var file struct {
		Models map[string]ModelConfig `yaml:"models"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing models file: %w", err)
	}
	if len(file.Models) == 0 {
		return nil, fmt.Errorf("models file declares no models")
	}

	registry := make(Registry, len(file.Models))
	for key, cfg := range file.Models {
		cfg.Key = key
		if !cfg.Provider.Valid() {
			return nil, fmt.Errorf("model %q: unknown provider %q", key, cfg.Provider)
		}
		if cfg.ModelID == "" {
			return nil, fmt.Errorf("model %q: model_id is required", key)
		}
		registry[key] = cfg
	}
	return registry, nil
}
