/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"chainguard.dev/skillcheck/agents/agenttrace"
	"chainguard.dev/skillcheck/evals/evalmetrics"
	"chainguard.dev/skillcheck/evals/judge"
	"chainguard.dev/skillcheck/evals/record"
	"chainguard.dev/skillcheck/evals/scoring"
)

func newJudgeCmd(cfg *config) *cobra.Command {
	f := &evalFlags{}
	var judgeKey string

	cmd := &cobra.Command{
		Use:   "judge",
		Short: "Judge a single response against an answer key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			return runJudge(cmd, cfg, f, judgeKey)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&judgeKey, "judge", "claude-sonnet", "Judge model key")
	return cmd
}

func runJudge(cmd *cobra.Command, cfg *config, f *evalFlags, judgeKey string) error {
	ctx := cmd.Context()
	log := clog.FromContext(ctx)

	registry, err := cfg.registry()
	if err != nil {
		return err
	}
	judgeCfg, err := judgeModel(registry, judgeKey)
	if err != nil {
		return err
	}
	candidate := candidateModel(registry, f.model)

	req, err := f.request()
	if err != nil {
		return err
	}

	j, err := judge.New(ctx, judgeCfg)
	if err != nil {
		return err
	}

	ctx = agenttrace.WithExecutionContext(ctx, agenttrace.ExecutionContext{
		SkillID:  f.skill,
		Version:  f.version,
		DocName:  f.resolvedDocName(),
		ModelKey: judgeCfg.Key,
		Role:     "judge",
	})

	observer := evalmetrics.NewObserver(f.skill, "judge")

	start := time.Now()
	verdict, err := j.Judge(ctx, req)
	if err != nil {
		observer.JudgeFailure(judgeCfg.Name())
		return err
	}
	elapsed := time.Since(start)

	score := scoring.Score(req.Key, verdict, f.scoringConfig())
	observer.Evaluation()
	observer.Composite(score.Composite)
	log.With("judge", judgeCfg.Name()).
		With("composite", score.Composite).
		With("elapsed", elapsed).
		Info("Judging complete")

	rec := record.New(f.skill, f.version, f.resolvedDocName(), candidate)
	rec.ResponseText = req.Response
	rec.ElapsedSeconds = elapsed.Seconds()
	rec.Judge = &record.JudgeScores{
		Verdict:                verdict,
		Score:                  score,
		SelfEnhancementWarning: judge.SelfEnhancementWarning(judgeCfg, candidate),
	}

	if !f.noSave {
		if err := cfg.store().Save(rec); err != nil {
			return err
		}
		log.With("path", cfg.store().Path(rec)).Info("Record saved")
	}
	if rec.Judge.SelfEnhancementWarning != "" {
		log.Warn(rec.Judge.SelfEnhancementWarning)
	}

	out, err := json.MarshalIndent(rec.Judge, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
