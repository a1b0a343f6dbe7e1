/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chainguard.dev/skillcheck/evals/answerkey"
	"chainguard.dev/skillcheck/evals/consensus"
	"chainguard.dev/skillcheck/evals/judge"
	"chainguard.dev/skillcheck/evals/record"
	"chainguard.dev/skillcheck/evals/scoring"
)

func reportKey() *answerkey.AnswerKey {
	return &answerkey.AnswerKey{
		Issues: []answerkey.Issue{
			{ID: "ISSUE-01", Title: "Unilateral termination", Severity: answerkey.SeverityHigh},
			{ID: "ISSUE-02", Title: "Uncapped liability", Severity: answerkey.SeverityMedium},
		},
	}
}

func reportRecord(version, modelName string, detected ...string) *record.Record {
	results := make(map[string]judge.IssueResult)
	for _, id := range detected {
		results[id] = judge.IssueResult{Detected: true}
	}
	verdict := &judge.Verdict{IssueResults: results, RecommendationMatch: true}
	r := &record.Record{
		SkillID:        "contract-review",
		Version:        version,
		DocName:        "saas-msa",
		ModelKey:       strings.ToLower(modelName),
		ModelName:      modelName,
		InputTokens:    1000,
		OutputTokens:   300,
		ElapsedSeconds: 4.2,
	}
	r.Judge = &record.JudgeScores{
		Verdict: verdict,
		Score:   scoring.Score(reportKey(), verdict, scoring.DefaultConfig()),
	}
	return r
}

func TestRecordsEmpty(t *testing.T) {
	require.Empty(t, Records(nil))
}

func TestRecordsTable(t *testing.T) {
	weak := reportRecord("v1", "Beta", "ISSUE-02")
	strong := reportRecord("v1", "Alpha", "ISSUE-01", "ISSUE-02")
	out := Records([]*record.Record{weak, strong})

	require.Contains(t, out, "## Evaluation Results")
	require.Contains(t, out, "| Version ")
	require.Contains(t, out, "Alpha")
	require.Contains(t, out, "2/2")
	require.Contains(t, out, "1000 in / 300 out")
	require.Contains(t, out, "4.2s")

	// Higher composite sorts first.
	require.Less(t, strings.Index(out, "Alpha"), strings.Index(out, "Beta"))
}

func TestRecordsUnjudgedRow(t *testing.T) {
	r := reportRecord("v1", "Alpha", "ISSUE-01")
	r.Judge = nil
	out := Records([]*record.Record{r, reportRecord("v1", "Beta", "ISSUE-02")})
	require.Contains(t, out, "| - ")
	// Unjudged rows sort after judged ones.
	require.Less(t, strings.Index(out, "Beta"), strings.Index(out, "Alpha"))
}

func TestRecordsBiasWarning(t *testing.T) {
	r := reportRecord("v1", "Alpha", "ISSUE-01")
	r.Judge.SelfEnhancementWarning = "Self-enhancement risk: Alpha judging Alpha (same family: anthropic)."
	out := Records([]*record.Record{r, r})
	require.Contains(t, out, "⚠️ Self-enhancement risk")
	// The same warning is reported once even across repeated rows.
	require.Equal(t, 1, strings.Count(out, "Self-enhancement risk"))
}

func TestConsensusEmpty(t *testing.T) {
	require.Empty(t, Consensus(nil))
	require.Empty(t, Consensus(consensus.Build(nil, reportKey())))
}

func TestConsensusReport(t *testing.T) {
	records := []*record.Record{
		reportRecord("v1", "Alpha", "ISSUE-01", "ISSUE-02"),
		reportRecord("v1", "Beta", "ISSUE-01"),
		reportRecord("v2", "Alpha", "ISSUE-01", "ISSUE-02"),
		reportRecord("v2", "Beta", "ISSUE-01"),
	}
	out := Consensus(consensus.Build(records, reportKey()))

	require.Contains(t, out, "## Consensus Analysis")
	require.Contains(t, out, "4 evaluations across 2 models and 2 skill versions")
	require.Contains(t, out, "### Issue Consensus")
	require.Contains(t, out, "ISSUE-01 (Unilateral termination)")
	require.Contains(t, out, "universal")
	require.Contains(t, out, "disputed")
	require.Contains(t, out, "### Model Agreement")
	require.Contains(t, out, "### Version Effectiveness")
	require.Contains(t, out, "### Pairwise Model Agreement")
	require.Contains(t, out, "Beta/v1")
}
