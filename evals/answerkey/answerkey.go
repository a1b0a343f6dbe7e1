/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package answerkey

import (
	"fmt"
	"strings"
)

// Severity classifies how much a missed issue should cost.
type Severity string

const (
	// SeverityHigh marks issues a competent review must never miss.
	SeverityHigh Severity = "H"
	// SeverityMedium marks issues a thorough review should catch.
	SeverityMedium Severity = "M"
	// SeverityLow marks nice-to-catch issues.
	SeverityLow Severity = "L"
)

// Valid reports whether s is one of the three known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Issue is a single discrete point an expert review is expected to catch.
// IDs with a "META-" prefix mark structural or meta issues (e.g. missing
// signature blocks) rather than substantive clause problems.
type Issue struct {
	ID          string   `json:"id" yaml:"id"`
	Section     string   `json:"section,omitempty" yaml:"section,omitempty"`
	Title       string   `json:"title" yaml:"title"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Rubric      string   `json:"rubric,omitempty" yaml:"rubric,omitempty"`
}

// Trap describes a provision that looks like an issue but is standard or
// benign. Judges use traps to classify candidate-asserted issues that are
// not in the answer key as false positives.
type Trap struct {
	Description string `json:"description" yaml:"description"`
}

// AnswerKey is an expert-authored rubric for one document review task.
type AnswerKey struct {
	Issues                 []Issue `json:"issues" yaml:"issues"`
	BusinessContext        string  `json:"business_context,omitempty" yaml:"business_context,omitempty"`
	ExpectedRecommendation string  `json:"expected_recommendation" yaml:"expected_recommendation"`
	FalsePositiveTraps     []Trap  `json:"false_positive_traps,omitempty" yaml:"false_positive_traps,omitempty"`

	// ScoringNotes are advisory only; nothing in scoring consumes them.
	ScoringNotes string `json:"scoring_notes,omitempty" yaml:"scoring_notes,omitempty"`
}

// Validate checks the answer key's structural invariants: issue IDs must be
// non-empty and unique, and every severity must be one of H, M, L.
func (k *AnswerKey) Validate() error {
	seen := make(map[string]struct{}, len(k.Issues))
	for i, issue := range k.Issues {
		if strings.TrimSpace(issue.ID) == "" {
			return fmt.Errorf("issue %d: empty id", i)
		}
		if _, dup := seen[issue.ID]; dup {
			return fmt.Errorf("duplicate issue id %q", issue.ID)
		}
		seen[issue.ID] = struct{}{}

		if !issue.Severity.Valid() {
			return fmt.Errorf("issue %q: unknown severity %q (want H, M, or L)", issue.ID, issue.Severity)
		}
	}
	return nil
}

// IssueByID returns the issue with the given id, or nil if absent.
func (k *AnswerKey) IssueByID(id string) *Issue {
	for i := range k.Issues {
		if k.Issues[i].ID == id {
			return &k.Issues[i]
		}
	}
	return nil
}
