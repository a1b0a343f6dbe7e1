/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

// IssueResult is one judge's call on a single answer-key issue.
type IssueResult struct {
	Detected  bool   `json:"detected"`
	Reasoning string `json:"reasoning,omitempty"`
}

// FalsePositive is a provision the candidate flagged that the judge
// considers standard or benign.
type FalsePositive struct {
	Description string `json:"description"`
}

// Verdict is the normalized output of one judge call. It is created by the
// parser, consumed by the scorer, and never mutated afterwards; the panel
// aggregator produces a new merged Verdict rather than mutating inputs.
type Verdict struct {
	// IssueResults maps answer-key issue id to the judge's call. Issue ids
	// the judge did not cover are simply absent and score as misses.
	IssueResults map[string]IssueResult `json:"issue_results"`

	RecommendationMatch     bool   `json:"recommendation_match"`
	RecommendationReasoning string `json:"recommendation_reasoning,omitempty"`

	// FalsePositives is deduplicated by normalized description text.
	FalsePositives []FalsePositive `json:"false_positives,omitempty"`
}

// Detected reports the judge's call on the given issue id. Absent entries
// are not-detected.
func (v *Verdict) Detected(id string) bool {
	return v.IssueResults[id].Detected
}
