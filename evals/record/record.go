/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package record

import (
	"time"

	"github.com/google/uuid"

	"chainguard.dev/skillcheck/evals/judge"
	"chainguard.dev/skillcheck/evals/providers"
	"chainguard.dev/skillcheck/evals/scoring"
)

// JudgeScores holds everything the judge produced for one evaluation: the
// normalized verdict, the composite score derived from it, and panel metadata
// when more than one judge was consulted.
type JudgeScores struct {
	Verdict *judge.Verdict `json:"verdict"`
	Score   scoring.Result `json:"score"`

	// Panel metadata; zero values for single-judge runs.
	PanelSize                 int      `json:"panel_size,omitempty"`
	PanelJudges               []string `json:"panel_judges,omitempty"`
	AverageFalsePositiveCount int      `json:"avg_false_positive_count,omitempty"`
	SelfEnhancementWarning    string   `json:"self_enhancement_warning,omitempty"`
}

// Record is one persisted evaluation: a single (skill version, model, test
// document) run, its raw response, and the judge's assessment of it.
type Record struct {
	EvalID    string    `json:"eval_id"`
	SkillID   string    `json:"skill_id"`
	Version   string    `json:"version"`
	DocName   string    `json:"doc_name"`
	ModelKey  string    `json:"model_key"`
	ModelName string    `json:"model_name"`
	Timestamp time.Time `json:"timestamp"`

	ResponseText   string  `json:"response_text"`
	InputTokens    int64   `json:"input_tokens"`
	OutputTokens   int64   `json:"output_tokens"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`

	// Judge is nil until the response has been judged.
	Judge *JudgeScores `json:"judge_scores"`
}

// New starts a record for a fresh evaluation run with a generated eval id
// and the current timestamp. The response and judge fields are filled in as
// the run progresses.
func New(skillID, version, docName string, model providers.ModelConfig) *Record {
	return &Record{
		EvalID:    uuid.NewString(),
		SkillID:   skillID,
		Version:   version,
		DocName:   docName,
		ModelKey:  model.Key,
		ModelName: model.Name(),
		Timestamp: time.Now().UTC(),
	}
}
