/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/skillcheck/agents/result"
)

// ErrMalformedJudgeOutput reports that a judge model's response could not be
// parsed into the expected structural shape. Callers surface it as a failed
// judge call; it is never coerced into a zero score, so failures stay
// distinguishable from legitimate all-zero verdicts.
var ErrMalformedJudgeOutput = errors.New("malformed judge output")

// RawVerdict is the wire shape a judge model is asked to return. Its fields
// parse tolerantly: per-issue entries accept both the nested
// {"detected": 0|1, "reasoning": "..."} form and the legacy bare 0|1 form,
// booleans accept true/false as well as 0/1, and false positives accept
// objects or bare strings.
type RawVerdict struct {
	Issues                  map[string]RawIssue `json:"issues"`
	RecommendationMatch     *bool               `json:"recommendation_match"`
	RecommendationReasoning string              `json:"recommendation_reasoning,omitempty"`
	FalsePositives          []FalsePositive     `json:"false_positives,omitempty"`
}

// RawIssue is one per-issue entry in the wire shape.
type RawIssue struct {
	Detected  bool   `json:"detected"`
	Reasoning string `json:"reasoning,omitempty"`
}

// parseFlexBool interprets a JSON scalar as a boolean: true/false, 0/1, or
// their quoted forms. Judge models drift between them.
func parseFlexBool(data []byte) (bool, error) {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	switch s {
	case "true", "1":
		return true, nil
	case "false", "0", "null", "":
		return false, nil
	}
	return false, fmt.Errorf("cannot interpret %s as a boolean", strings.TrimSpace(string(data)))
}

// UnmarshalJSON accepts both the nested object form and the legacy bare 0/1
// form, normalizing to the nested shape with empty reasoning for legacy.
func (r *RawIssue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var aux struct {
			Detected  json.RawMessage `json:"detected"`
			Reasoning string          `json:"reasoning"`
		}
		if err := json.Unmarshal(trimmed, &aux); err != nil {
			return err
		}
		detected, err := parseFlexBool(aux.Detected)
		if err != nil {
			return fmt.Errorf("issue detected field: %w", err)
		}
		*r = RawIssue{Detected: detected, Reasoning: aux.Reasoning}
		return nil
	}

	detected, err := parseFlexBool(trimmed)
	if err != nil {
		return fmt.Errorf("issue entry is neither an object nor 0/1: %w", err)
	}
	*r = RawIssue{Detected: detected}
	return nil
}

// UnmarshalJSON accepts {"description": "..."} objects as well as bare
// strings, which older judges emitted.
func (f *FalsePositive) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &f.Description)
	}
	var aux struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(trimmed, &aux); err != nil {
		return err
	}
	f.Description = aux.Description
	return nil
}

// UnmarshalJSON keeps recommendation_match tolerant of 0/1 while leaving the
// field absent-aware (nil means the judge never answered).
func (v *RawVerdict) UnmarshalJSON(data []byte) error {
	var aux struct {
		Issues                  map[string]RawIssue `json:"issues"`
		RecommendationMatch     json.RawMessage     `json:"recommendation_match"`
		RecommendationReasoning string              `json:"recommendation_reasoning"`
		FalsePositives          []FalsePositive     `json:"false_positives"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	v.Issues = aux.Issues
	v.RecommendationReasoning = aux.RecommendationReasoning
	v.FalsePositives = aux.FalsePositives
	v.RecommendationMatch = nil
	if len(aux.RecommendationMatch) > 0 {
		match, err := parseFlexBool(aux.RecommendationMatch)
		if err != nil {
			return fmt.Errorf("recommendation_match field: %w", err)
		}
		v.RecommendationMatch = &match
	}
	return nil
}

// Normalize converts the wire shape into a Verdict, enforcing the required
// top-level fields and deduplicating false positives. Partial issue coverage
// is fine; missing issue ids simply score as misses downstream.
func (v *RawVerdict) Normalize() (*Verdict, error) {
	if v.Issues == nil {
		return nil, fmt.Errorf("%w: missing issues field", ErrMalformedJudgeOutput)
	}
	if v.RecommendationMatch == nil {
		return nil, fmt.Errorf("%w: missing recommendation_match field", ErrMalformedJudgeOutput)
	}

	results := make(map[string]IssueResult, len(v.Issues))
	for id, issue := range v.Issues {
		results[id] = IssueResult{Detected: issue.Detected, Reasoning: issue.Reasoning}
	}

	return &Verdict{
		IssueResults:            results,
		RecommendationMatch:     *v.RecommendationMatch,
		RecommendationReasoning: v.RecommendationReasoning,
		FalsePositives:          DedupFalsePositives(v.FalsePositives),
	}, nil
}

// normalizeDescription collapses the variations that make two false-positive
// descriptions the same finding: case, surrounding whitespace, internal runs
// of whitespace, and trailing punctuation.
func normalizeDescription(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimRight(s, ".!")
	return strings.Join(strings.Fields(s), " ")
}

// DedupFalsePositives collapses duplicate descriptions, keeping the first
// occurrence's original text and dropping empty entries.
func DedupFalsePositives(fps []FalsePositive) []FalsePositive {
	if len(fps) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fps))
	out := make([]FalsePositive, 0, len(fps))
	for _, fp := range fps {
		key := normalizeDescription(fp.Description)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, fp)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseVerdict extracts and normalizes a judge verdict from raw model text.
// The text may be raw JSON, a fenced code block, or prose with an embedded
// JSON object. Returns ErrMalformedJudgeOutput when no structural parse is
// possible or a required top-level field is absent.
func ParseVerdict(raw string) (*Verdict, error) {
	wire, err := result.Extract[RawVerdict](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJudgeOutput, err)
	}
	return wire.Normalize()
}
