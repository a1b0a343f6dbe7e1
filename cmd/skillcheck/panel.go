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
	"chainguard.dev/skillcheck/evals/judge"
	"chainguard.dev/skillcheck/evals/panel"
	"chainguard.dev/skillcheck/evals/record"
	"chainguard.dev/skillcheck/evals/scoring"
)

func newPanelCmd(cfg *config) *cobra.Command {
	f := &evalFlags{}
	var judgeKeys []string

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Judge a response with a multi-judge panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			if len(judgeKeys) < 2 {
				return fmt.Errorf("a panel needs at least 2 judges, got %d", len(judgeKeys))
			}
			return runPanel(cmd, cfg, f, judgeKeys)
		},
	}
	f.register(cmd)
	cmd.Flags().StringSliceVar(&judgeKeys, "judges", nil, "Judge model keys (at least 2, may be repeated)")
	return cmd
}

func runPanel(cmd *cobra.Command, cfg *config, f *evalFlags, judgeKeys []string) error {
	ctx := cmd.Context()
	log := clog.FromContext(ctx)

	registry, err := cfg.registry()
	if err != nil {
		return err
	}
	candidate := candidateModel(registry, f.model)

	judges := make([]panel.Judge, 0, len(judgeKeys))
	for _, key := range judgeKeys {
		judgeCfg, err := judgeModel(registry, key)
		if err != nil {
			return err
		}
		j, err := judge.New(ctx, judgeCfg)
		if err != nil {
			return err
		}
		judges = append(judges, panel.Judge{Config: judgeCfg, Judge: j})
	}

	req, err := f.request()
	if err != nil {
		return err
	}

	// panel.Run fills in the judge model key per call.
	ctx = agenttrace.WithExecutionContext(ctx, agenttrace.ExecutionContext{
		SkillID: f.skill,
		Version: f.version,
		DocName: f.resolvedDocName(),
	})

	start := time.Now()
	result, err := panel.Run(ctx, judges, candidate, req, f.scoringConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	panelJudges := make([]string, 0, len(result.Judges))
	for _, js := range result.Judges {
		panelJudges = append(panelJudges, js.Judge)
	}

	// The stored breakdown reflects the merged verdict, but the composite
	// is the mean of the per-judge composites, which is what the panel
	// reports.
	score := scoring.Score(req.Key, result.Merged, f.scoringConfig())
	score.Composite = result.Composite

	rec := record.New(f.skill, f.version, f.resolvedDocName(), candidate)
	rec.ResponseText = req.Response
	rec.ElapsedSeconds = elapsed.Seconds()
	rec.Judge = &record.JudgeScores{
		Verdict:                   result.Merged,
		Score:                     score,
		PanelSize:                 len(result.Judges),
		PanelJudges:               panelJudges,
		AverageFalsePositiveCount: result.AverageFalsePositiveCount,
		SelfEnhancementWarning:    result.SelfEnhancementWarning,
	}

	if !f.noSave {
		if err := cfg.store().Save(rec); err != nil {
			return err
		}
		log.With("path", cfg.store().Path(rec)).Info("Record saved")
	}
	if result.SelfEnhancementWarning != "" {
		log.Warn(result.SelfEnhancementWarning)
	}

	out, err := json.MarshalIndent(rec.Judge, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
