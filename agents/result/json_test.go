/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{{
		name: "fenced json block",
		input: "Here is my verdict:\n```json\n" +
			`{"recommendation_match": 1}` + "\n```",
		expected: `{"recommendation_match": 1}`,
	}, {
		name: "fenced block with trailing prose",
		input: "```json\n" +
			`{"issues": {"ISSUE-01": 1}}` + "\n```\nLet me know if you need detail.",
		expected: `{"issues": {"ISSUE-01": 1}}`,
	}, {
		name:     "raw json passthrough",
		input:    `{"detected": 0}`,
		expected: `{"detected": 0}`,
	}, {
		name:     "inline fences stripped",
		input:    "```json\n{\"detected\": 1}\n```",
		expected: `{"detected": 1}`,
	}, {
		name:     "bare fences stripped",
		input:    "```\n{\"detected\": 1}\n```",
		expected: `{"detected": 1}`,
	}, {
		name:     "empty fenced block",
		input:    "```json\n```",
		expected: "",
	}, {
		name:     "whitespace trimmed",
		input:    "   {\"a\": 1}  \n",
		expected: `{"a": 1}`,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.expected {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestScanObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{{
		name:     "object embedded in prose",
		input:    `Thinking it through... {"detected": 1, "reasoning": "cites the cap"} done.`,
		expected: `{"detected": 1, "reasoning": "cites the cap"}`,
	}, {
		name:     "nested objects",
		input:    `prefix {"issues": {"ISSUE-01": {"detected": 0}}} suffix`,
		expected: `{"issues": {"ISSUE-01": {"detected": 0}}}`,
	}, {
		name:     "braces inside strings ignored",
		input:    `{"reasoning": "uses {{placeholder}} syntax"}`,
		expected: `{"reasoning": "uses {{placeholder}} syntax"}`,
	}, {
		name:     "no object",
		input:    "The response looks fine to me.",
		expected: "",
	}, {
		name:     "unterminated object",
		input:    `{"detected": 1`,
		expected: "",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScanObject(tt.input); got != tt.expected {
				t.Errorf("ScanObject() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	type verdict struct {
		Detected  int    `json:"detected"`
		Reasoning string `json:"reasoning"`
	}

	t.Run("fenced", func(t *testing.T) {
		got, err := Extract[verdict]("```json\n{\"detected\": 1, \"reasoning\": \"named the clause\"}\n```")
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if got.Detected != 1 || got.Reasoning != "named the clause" {
			t.Errorf("Extract() = %+v", got)
		}
	})

	t.Run("prose wrapped", func(t *testing.T) {
		got, err := Extract[verdict](`First, the model discusses termination. {"detected": 1, "reasoning": "substantive"} Overall strong.`)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if got.Detected != 1 {
			t.Errorf("Extract() = %+v", got)
		}
	})

	t.Run("not json", func(t *testing.T) {
		if _, err := Extract[verdict]("no structure here at all"); err == nil {
			t.Error("Extract() expected error for non-JSON input")
		}
	})
}
