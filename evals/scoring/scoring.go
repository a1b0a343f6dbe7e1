/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scoring

import (
	"chainguard.dev/skillcheck/evals/answerkey"
	"chainguard.dev/skillcheck/evals/judge"
)

// Config carries the scoring knobs. It is passed explicitly rather than held
// in package state so tests can override weights without touching globals.
type Config struct {
	// Weights maps severity to its contribution to the hit rate.
	Weights map[answerkey.Severity]float64

	// RecommendationBonus is added when the judge confirms the candidate's
	// overall recommendation matches the answer key.
	RecommendationBonus float64

	// FalsePositivePenaltyPer is subtracted once per distinct false positive.
	FalsePositivePenaltyPer float64
}

// DefaultConfig returns the standard scoring configuration: H/M/L weighted
// 3/2/1, +10 for a matching recommendation, -3 per false positive.
func DefaultConfig() Config {
	return Config{
		Weights: map[answerkey.Severity]float64{
			answerkey.SeverityHigh:   3,
			answerkey.SeverityMedium: 2,
			answerkey.SeverityLow:    1,
		},
		RecommendationBonus:     10,
		FalsePositivePenaltyPer: 3,
	}
}

// weight returns the configured weight for a severity, defaulting unknown
// severities to 1 so unvalidated keys degrade instead of dropping issues.
func (c Config) weight(s answerkey.Severity) float64 {
	if w, ok := c.Weights[s]; ok {
		return w
	}
	return 1
}

// Result is the composite score for one verdict. Immutable once returned.
type Result struct {
	// WeightedHitRate is the severity-weighted detection percentage in
	// [0,100].
	WeightedHitRate float64 `json:"weighted_hit_rate"`

	// RecommendationBonus is 0 or the configured bonus.
	RecommendationBonus float64 `json:"recommendation_bonus"`

	// FalsePositivePenalty is penalty-per-FP times the count.
	FalsePositivePenalty float64 `json:"fp_penalty"`

	// CompositeRaw is hit rate + bonus - penalty, clamped to [0,100].
	CompositeRaw float64 `json:"composite_raw"`

	// Composite is CompositeRaw/100, the canonical score in [0.0,1.0].
	Composite float64 `json:"composite"`

	IssuesFound int `json:"issues_found"`
	IssuesTotal int `json:"issues_total"`
}

// Score computes the composite score for a verdict against an answer key.
// Pure and deterministic: same inputs, same Result, no I/O.
//
// Issue ids the verdict does not cover count as misses. An answer key with
// no issues yields a hit rate of 0 rather than dividing by zero.
func Score(key *answerkey.AnswerKey, verdict *judge.Verdict, cfg Config) Result {
	var weightedPts, weightedMax float64
	var found int

	for _, issue := range key.Issues {
		w := cfg.weight(issue.Severity)
		weightedMax += w
		if verdict.Detected(issue.ID) {
			weightedPts += w
			found++
		}
	}

	var hitRate float64
	if weightedMax > 0 {
		hitRate = weightedPts / weightedMax * 100
	}

	var bonus float64
	if verdict.RecommendationMatch {
		bonus = cfg.RecommendationBonus
	}

	penalty := cfg.FalsePositivePenaltyPer * float64(len(verdict.FalsePositives))

	raw := hitRate + bonus - penalty
	if raw < 0 {
		raw = 0
	} else if raw > 100 {
		raw = 100
	}

	return Result{
		WeightedHitRate:      hitRate,
		RecommendationBonus:  bonus,
		FalsePositivePenalty: penalty,
		CompositeRaw:         raw,
		Composite:            raw / 100,
		IssuesFound:          found,
		IssuesTotal:          len(key.Issues),
	}
}
