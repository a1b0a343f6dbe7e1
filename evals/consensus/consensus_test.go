/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package consensus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chainguard.dev/skillcheck/evals/answerkey"
	"chainguard.dev/skillcheck/evals/judge"
	"chainguard.dev/skillcheck/evals/record"
)

func consensusKey() *answerkey.AnswerKey {
	return &answerkey.AnswerKey{
		Issues: []answerkey.Issue{
			{ID: "ISSUE-01", Title: "Unilateral termination", Severity: answerkey.SeverityHigh},
			{ID: "ISSUE-02", Title: "Uncapped liability", Severity: answerkey.SeverityMedium},
			{ID: "ISSUE-03", Title: "Auto-renewal", Severity: answerkey.SeverityLow},
		},
	}
}

func judgedRecord(version, modelKey, modelName string, composite float64, detected ...string) *record.Record {
	results := make(map[string]judge.IssueResult)
	for _, id := range detected {
		results[id] = judge.IssueResult{Detected: true}
	}
	r := &record.Record{
		SkillID:   "contract-review",
		Version:   version,
		DocName:   "saas-msa",
		ModelKey:  modelKey,
		ModelName: modelName,
	}
	r.Judge = &record.JudgeScores{
		Verdict: &judge.Verdict{IssueResults: results},
	}
	r.Judge.Score.Composite = composite
	return r
}

// Four runs: two versions, two models. ISSUE-01 is found by everyone,
// ISSUE-03 by three of four, ISSUE-02 only by alpha.
func fixtureRecords() []*record.Record {
	return []*record.Record{
		judgedRecord("v1", "alpha", "Alpha", 0.9, "ISSUE-01", "ISSUE-02", "ISSUE-03"),
		judgedRecord("v1", "beta", "Beta", 0.7, "ISSUE-01", "ISSUE-03"),
		judgedRecord("v2", "alpha", "Alpha", 0.5, "ISSUE-01", "ISSUE-02", "ISSUE-03"),
		judgedRecord("v2", "beta", "Beta", 0.5, "ISSUE-01"),
	}
}

func TestBuildEmpty(t *testing.T) {
	a := Build(nil, consensusKey())
	require.Zero(t, a.Overall.TotalResults)
	require.Empty(t, a.Issues)

	a = Build(fixtureRecords(), nil)
	require.Zero(t, a.Overall.TotalResults)
}

func TestBuildIgnoresUnjudgedRecords(t *testing.T) {
	unjudged := judgedRecord("v1", "gamma", "Gamma", 0, "ISSUE-01")
	unjudged.Judge = nil
	a := Build(append(fixtureRecords(), unjudged), consensusKey())
	require.Equal(t, 4, a.Overall.TotalResults)
	require.Equal(t, 2, a.Overall.TotalModels)
}

func TestBuildIssueTiers(t *testing.T) {
	a := Build(fixtureRecords(), consensusKey())

	// Sorted by tier: universal, strong, disputed.
	require.Len(t, a.Issues, 3)
	require.Equal(t, "ISSUE-01", a.Issues[0].ID)
	require.Equal(t, TierUniversal, a.Issues[0].Tier)
	require.InDelta(t, 1.0, a.Issues[0].DetectionRate, 1e-9)

	require.Equal(t, "ISSUE-03", a.Issues[1].ID)
	require.Equal(t, TierStrong, a.Issues[1].Tier)
	require.InDelta(t, 0.75, a.Issues[1].DetectionRate, 1e-9)
	require.Len(t, a.Issues[1].MissedBy, 1)
	require.Equal(t, RunRef{Version: "v2", ModelKey: "beta", ModelName: "Beta"}, a.Issues[1].MissedBy[0])

	require.Equal(t, "ISSUE-02", a.Issues[2].ID)
	require.Equal(t, TierDisputed, a.Issues[2].Tier)
	require.InDelta(t, 0.5, a.Issues[2].DetectionRate, 1e-9)

	require.Equal(t, Overall{
		TotalResults:  4,
		TotalModels:   2,
		TotalVersions: 2,
		TotalIssues:   3,
		Universal:     1,
		Strong:        1,
		Disputed:      1,
	}, a.Overall)
}

func TestBuildModelSummary(t *testing.T) {
	a := Build(fixtureRecords(), consensusKey())
	require.Len(t, a.Models, 2)

	// Majority verdicts: ISSUE-01 detected (4/4), ISSUE-02 not (2/4 is not a
	// majority), ISSUE-03 detected (3/4). Beta agrees on 5 of its 6
	// judgments, alpha on 4 of 6, so beta sorts first.
	beta := a.Models[0]
	require.Equal(t, "beta", beta.ModelKey)
	require.InDelta(t, 5.0/6.0, beta.MajorityAgreement, 1e-9)
	require.Empty(t, beta.UniqueFinds)
	require.Empty(t, beta.UniqueMisses)

	alpha := a.Models[1]
	require.Equal(t, "alpha", alpha.ModelKey)
	require.Equal(t, "Alpha", alpha.ModelName)
	require.Equal(t, 2, alpha.EvalCount)
	require.InDelta(t, 4.0/6.0, alpha.MajorityAgreement, 1e-9)
	require.Equal(t, []string{"ISSUE-02"}, alpha.UniqueFinds)
	require.Empty(t, alpha.UniqueMisses)
}

func TestBuildVersionSummary(t *testing.T) {
	a := Build(fixtureRecords(), consensusKey())
	require.Len(t, a.Versions, 2)

	// v1 composites 0.9 and 0.7 average to 80; v2's 0.5 and 0.5 to 50.
	v1 := a.Versions[0]
	require.Equal(t, "v1", v1.Version)
	require.NotNil(t, v1.AvgScore)
	require.InDelta(t, 80.0, *v1.AvgScore, 1e-9)
	require.InDelta(t, 5.0/6.0, v1.MajorityAgreement, 1e-9)

	v2 := a.Versions[1]
	require.Equal(t, "v2", v2.Version)
	require.InDelta(t, 50.0, *v2.AvgScore, 1e-9)
	require.InDelta(t, 4.0/6.0, v2.MajorityAgreement, 1e-9)
}

func TestBuildPairwiseAgreement(t *testing.T) {
	a := Build(fixtureRecords(), consensusKey())
	require.Len(t, a.Pairwise, 1)

	// Across the two shared versions the models agree on ISSUE-01 twice and
	// ISSUE-03 once, out of six judgments.
	pw := a.Pairwise[0]
	require.Equal(t, "alpha", pw.ModelA)
	require.Equal(t, "beta", pw.ModelB)
	require.Equal(t, "Beta", pw.ModelBName)
	require.InDelta(t, 0.5, pw.Agreement, 1e-9)
}

func TestBuildLastRecordWinsPerRun(t *testing.T) {
	records := fixtureRecords()
	// A re-run of (v2, beta) that now also finds ISSUE-03 replaces the
	// earlier record, making ISSUE-03 universal.
	records = append(records, judgedRecord("v2", "beta", "Beta", 0.6, "ISSUE-01", "ISSUE-03"))
	a := Build(records, consensusKey())
	require.Equal(t, 4, a.Overall.TotalResults)
	require.Equal(t, 2, a.Overall.Universal)
}
