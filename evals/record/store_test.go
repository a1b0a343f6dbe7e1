/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package record

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"chainguard.dev/skillcheck/evals/answerkey"
	"chainguard.dev/skillcheck/evals/judge"
	"chainguard.dev/skillcheck/evals/providers"
	"chainguard.dev/skillcheck/evals/scoring"
)

func testKey() *answerkey.AnswerKey {
	return &answerkey.AnswerKey{
		Issues: []answerkey.Issue{
			{ID: "ISSUE-01", Severity: answerkey.SeverityHigh},
			{ID: "ISSUE-02", Severity: answerkey.SeverityMedium},
			{ID: "ISSUE-03", Severity: answerkey.SeverityLow},
		},
		ExpectedRecommendation: "negotiate",
	}
}

func testRecord(t *testing.T) *Record {
	t.Helper()
	model := providers.ModelConfig{Key: "claude-sonnet", DisplayName: "Claude Sonnet"}
	r := New("contract-review", "v2", "saas-msa", model)
	r.ResponseText = "The agreement permits unilateral termination."
	r.InputTokens = 1200
	r.OutputTokens = 450
	r.ElapsedSeconds = 8.3
	verdict := &judge.Verdict{
		IssueResults: map[string]judge.IssueResult{
			"ISSUE-01": {Detected: true, Reasoning: "names the clause"},
			"ISSUE-02": {Detected: true},
		},
		RecommendationMatch: true,
		FalsePositives:      []judge.FalsePositive{{Description: "flagged the venue clause"}},
	}
	r.Judge = &JudgeScores{
		Verdict: verdict,
		Score:   scoring.Score(testKey(), verdict, scoring.DefaultConfig()),
	}
	return r
}

func TestNewRecordIdentity(t *testing.T) {
	model := providers.ModelConfig{Key: "gpt-5", DisplayName: "GPT-5"}
	a := New("contract-review", "v1", "saas-msa", model)
	b := New("contract-review", "v1", "saas-msa", model)
	require.NotEmpty(t, a.EvalID)
	require.NotEqual(t, a.EvalID, b.EvalID)
	require.Equal(t, "GPT-5", a.ModelName)
	require.False(t, a.Timestamp.IsZero())
	require.Nil(t, a.Judge)
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	r := testRecord(t)
	require.NoError(t, store.Save(r))

	loaded, err := store.Load(r.SkillID, r.Version, r.ModelKey, r.DocName)
	require.NoError(t, err)
	if diff := cmp.Diff(r, loaded); diff != "" {
		t.Errorf("record mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestStorePathLayout(t *testing.T) {
	store := NewStore("/results")
	r := testRecord(t)
	require.Equal(t, filepath.Join("/results", "contract-review", "v2", "claude-sonnet__saas-msa.json"), store.Path(r))
}

func TestStoreSaveRejectsIncompleteIdentity(t *testing.T) {
	store := NewStore(t.TempDir())
	r := testRecord(t)
	r.Version = ""
	require.Error(t, store.Save(r))
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())
	r := testRecord(t)
	require.NoError(t, store.Save(r))

	r.ResponseText = "revised response"
	require.NoError(t, store.Save(r))

	loaded, err := store.Load(r.SkillID, r.Version, r.ModelKey, r.DocName)
	require.NoError(t, err)
	require.Equal(t, "revised response", loaded.ResponseText)
}

func TestStoreListSkipsGarbage(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	ctx := context.Background()

	r := testRecord(t)
	require.NoError(t, store.Save(r))

	other := testRecord(t)
	other.Version = "v3"
	require.NoError(t, store.Save(other))

	// A corrupt file in the tree must not fail the listing.
	garbage := filepath.Join(dir, "contract-review", "v2", "broken__saas-msa.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{not json"), 0o644))

	records, err := store.List(ctx, "contract-review")
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestStoreListMissingSkill(t *testing.T) {
	store := NewStore(t.TempDir())
	records, err := store.List(context.Background(), "no-such-skill")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestRescore(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	judged := testRecord(t)
	require.NoError(t, store.Save(judged))

	unjudged := testRecord(t)
	unjudged.Version = "v1"
	unjudged.Judge = nil
	require.NoError(t, store.Save(unjudged))

	// Drop the false positive penalty to zero and rescore. Only the judged
	// record should change, and its composite must gain back the 3 points
	// the default penalty removed.
	cfg := scoring.DefaultConfig()
	cfg.FalsePositivePenaltyPer = 0
	lookup := func(string) (*answerkey.AnswerKey, error) { return testKey(), nil }

	count, err := store.Rescore(ctx, "contract-review", lookup, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	reloaded, err := store.Load(judged.SkillID, judged.Version, judged.ModelKey, judged.DocName)
	require.NoError(t, err)
	require.InDelta(t, judged.Judge.Score.Composite+0.03, reloaded.Judge.Score.Composite, 1e-9)
	require.Zero(t, reloaded.Judge.Score.FalsePositivePenalty)
}
