/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package answerkey

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes an answer key from JSON or YAML. The format is chosen by
// the name's extension; ".json" is JSON, everything else is YAML (which is
// also a JSON superset, so either works through the YAML path).
func Parse(name string, data []byte) (*AnswerKey, error) {
	var key AnswerKey
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &key); err != nil {
			return nil, fmt.Errorf("parsing answer key %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(data, &key); err != nil {
			return nil, fmt.Errorf("parsing answer key %s: %w", name, err)
		}
	}
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("invalid answer key %s: %w", name, err)
	}
	return &key, nil
}

// Load reads and parses an answer key fixture from disk.
func Load(path string) (*AnswerKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answer key: %w", err)
	}
	return Parse(filepath.Base(path), data)
}
