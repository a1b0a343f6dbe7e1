/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"chainguard.dev/skillcheck/evals/judge"
	"chainguard.dev/skillcheck/evals/providers"
	"chainguard.dev/skillcheck/evals/record"
	"chainguard.dev/skillcheck/evals/scoring"
)

const answerKeyJSON = `{
  "issues": [
    {"id": "ISSUE-01", "title": "Unilateral termination", "severity": "H"},
    {"id": "ISSUE-02", "title": "Uncapped liability", "severity": "M"}
  ],
  "expected_recommendation": "negotiate"
}`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileStem(t *testing.T) {
	require.Equal(t, "saas-msa", fileStem("/tmp/docs/saas-msa.md"))
	require.Equal(t, "saas-msa", fileStem("saas-msa.md"))
	require.Equal(t, "plain", fileStem("plain"))
}

func TestEvalFlagsValidate(t *testing.T) {
	f := &evalFlags{}
	require.Error(t, f.validate())
	f.skill = "contract-review"
	require.NoError(t, f.validate())
	f = &evalFlags{noSave: true}
	require.NoError(t, f.validate())
}

func TestEvalFlagsRequest(t *testing.T) {
	f := &evalFlags{
		document:  writeFixture(t, "saas-msa.md", "the agreement"),
		answerKey: writeFixture(t, "saas-msa.json", answerKeyJSON),
		response:  writeFixture(t, "response.md", "the review"),
	}
	req, err := f.request()
	require.NoError(t, err)
	require.Equal(t, "the agreement", req.Document)
	require.Equal(t, "the review", req.Response)
	require.Len(t, req.Key.Issues, 2)
	require.Equal(t, "saas-msa", f.resolvedDocName())

	f.docName = "override"
	require.Equal(t, "override", f.resolvedDocName())
}

func TestEvalFlagsScoringConfig(t *testing.T) {
	f := &evalFlags{fpPerHit: 5, bonus: 0}
	cfg := f.scoringConfig()
	require.Equal(t, 5.0, cfg.FalsePositivePenaltyPer)
	require.Zero(t, cfg.RecommendationBonus)
	require.Equal(t, scoring.DefaultConfig().Weights, cfg.Weights)
}

func TestCandidateModel(t *testing.T) {
	registry := providers.Default()
	cfg := candidateModel(registry, "claude-sonnet")
	require.Equal(t, providers.Anthropic, cfg.Provider)

	ext := candidateModel(registry, "external")
	require.Equal(t, "external", ext.Key)
	require.Equal(t, "external", ext.Name())
}

func TestJudgeModelRequiresAPIKey(t *testing.T) {
	registry := providers.Registry{
		"test-judge": {Key: "test-judge", Provider: providers.Anthropic, ModelID: "m", EnvKey: "SKILLCHECK_TEST_MISSING_KEY"},
	}
	_, err := judgeModel(registry, "test-judge")
	require.ErrorContains(t, err, "not available")

	t.Setenv("SKILLCHECK_TEST_MISSING_KEY", "present")
	cfg, err := judgeModel(registry, "test-judge")
	require.NoError(t, err)
	require.Equal(t, "test-judge", cfg.Key)
}

func TestConsensusCommand(t *testing.T) {
	cfg := &config{ResultsDir: t.TempDir()}
	store := cfg.store()

	verdict := &judge.Verdict{
		IssueResults: map[string]judge.IssueResult{
			"ISSUE-01": {Detected: true},
		},
		RecommendationMatch: true,
	}
	for _, mk := range []string{"alpha", "beta"} {
		r := record.New("contract-review", "v1", "saas-msa", providers.ModelConfig{Key: mk, DisplayName: mk})
		r.Judge = &record.JudgeScores{Verdict: verdict}
		require.NoError(t, store.Save(r))
	}

	keyPath := writeFixture(t, "saas-msa.json", answerKeyJSON)
	cmd := newConsensusCmd(cfg)
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--skill", "contract-review", "--answer-key", keyPath})
	require.NoError(t, cmd.Execute())

	require.Contains(t, out.String(), "## Consensus Analysis")
	require.Contains(t, out.String(), "ISSUE-01")
	require.Contains(t, out.String(), "universal")
}
