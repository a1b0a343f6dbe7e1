/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package panel

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"chainguard.dev/skillcheck/evals/answerkey"
	"chainguard.dev/skillcheck/evals/judge"
	"chainguard.dev/skillcheck/evals/scoring"
)

// ErrInsufficientPanelSize reports that fewer than two valid verdicts were
// available for aggregation. A panel of one is just single-judge scoring
// and takes a different call path.
var ErrInsufficientPanelSize = errors.New("insufficient panel size")

// JudgeVerdict pairs a verdict with the identifier of the judge that
// produced it, for attribution in merged reasoning.
type JudgeVerdict struct {
	Judge   string
	Verdict *judge.Verdict
}

// JudgeScore is one judge's independently computed composite.
type JudgeScore struct {
	Judge   string         `json:"judge"`
	Verdict *judge.Verdict `json:"verdict"`
	Score   scoring.Result `json:"score"`
}

// Result is the outcome of panel aggregation.
type Result struct {
	// Merged is the majority-vote verdict across the panel.
	Merged *judge.Verdict `json:"merged"`

	// Judges holds each judge's raw verdict and its own composite, for
	// audit and attribution.
	Judges []JudgeScore `json:"judges"`

	// Composite is the arithmetic mean of the per-judge composites. It is
	// NOT recomputed from the merged verdict: panel scores stay comparable
	// to single-judge scores, at the cost of the merged verdict and the
	// reported composite deriving from different data.
	Composite float64 `json:"composite"`

	// AverageFalsePositiveCount is the rounded mean of per-judge false
	// positive counts, kept for reporting. The merged verdict's union is
	// the authoritative set for any penalty computed from it.
	AverageFalsePositiveCount int `json:"average_false_positive_count"`

	// SelfEnhancementWarning is set when any judge shares a provider
	// family with the candidate under evaluation.
	SelfEnhancementWarning string `json:"self_enhancement_warning,omitempty"`
}

// Aggregate merges two or more verdicts for the same candidate response.
//
// Per-issue detection and recommendation match use majority vote, with
// exact ties resolving to detected/matched. With two judges any
// disagreement is a tie, so the policy deliberately favors recall over
// precision. Reasoning is concatenated with per-judge attribution, never
// dropped. Inputs are not mutated; the merged verdict is a new value.
func Aggregate(key *answerkey.AnswerKey, verdicts []JudgeVerdict, cfg scoring.Config) (*Result, error) {
	if len(verdicts) < 2 {
		return nil, fmt.Errorf("%w: got %d verdicts, need at least 2", ErrInsufficientPanelSize, len(verdicts))
	}
	for _, v := range verdicts {
		if v.Verdict == nil {
			return nil, fmt.Errorf("nil verdict from judge %q", v.Judge)
		}
	}
	n := len(verdicts)

	// Vote over every issue id any judge covered plus every id in the key,
	// so a unanimous miss still appears in the merged verdict.
	idSet := make(map[string]struct{})
	for _, issue := range key.Issues {
		idSet[issue.ID] = struct{}{}
	}
	for _, v := range verdicts {
		for id := range v.Verdict.IssueResults {
			idSet[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	merged := &judge.Verdict{
		IssueResults: make(map[string]judge.IssueResult, len(ids)),
	}

	for _, id := range ids {
		votes := 0
		var fragments []string
		for _, v := range verdicts {
			result := v.Verdict.IssueResults[id]
			if result.Detected {
				votes++
			}
			if result.Reasoning != "" {
				fragments = append(fragments, fmt.Sprintf("[%s] %s", v.Judge, result.Reasoning))
			}
		}
		merged.IssueResults[id] = judge.IssueResult{
			// Ties go positive: benefit of the doubt.
			Detected:  2*votes >= n,
			Reasoning: strings.Join(fragments, " | "),
		}
	}

	recVotes := 0
	var recFragments []string
	for _, v := range verdicts {
		if v.Verdict.RecommendationMatch {
			recVotes++
		}
		if v.Verdict.RecommendationReasoning != "" {
			recFragments = append(recFragments, fmt.Sprintf("[%s] %s", v.Judge, v.Verdict.RecommendationReasoning))
		}
	}
	merged.RecommendationMatch = 2*recVotes >= n
	merged.RecommendationReasoning = strings.Join(recFragments, " | ")

	// Union of false positives, deduplicated; averaged count kept for
	// reporting only.
	var allFPs []judge.FalsePositive
	fpTotal := 0
	for _, v := range verdicts {
		allFPs = append(allFPs, v.Verdict.FalsePositives...)
		fpTotal += len(v.Verdict.FalsePositives)
	}
	merged.FalsePositives = judge.DedupFalsePositives(allFPs)

	judges := make([]JudgeScore, 0, n)
	var compositeSum float64
	for _, v := range verdicts {
		score := scoring.Score(key, v.Verdict, cfg)
		compositeSum += score.Composite
		judges = append(judges, JudgeScore{
			Judge:   v.Judge,
			Verdict: v.Verdict,
			Score:   score,
		})
	}

	return &Result{
		Merged:                    merged,
		Judges:                    judges,
		Composite:                 compositeSum / float64(n),
		AverageFalsePositiveCount: int(math.Round(float64(fpTotal) / float64(n))),
	}, nil
}
