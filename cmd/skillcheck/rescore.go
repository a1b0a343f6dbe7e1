/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"chainguard.dev/skillcheck/evals/answerkey"
	"chainguard.dev/skillcheck/evals/scoring"
)

func newRescoreCmd(cfg *config) *cobra.Command {
	var (
		skill    string
		keysDir  string
		fpPerHit float64
		bonus    float64
	)

	cmd := &cobra.Command{
		Use:   "rescore",
		Short: "Recompute composite scores from saved verdicts without re-judging",
		Long: `Recompute composite scores for every judged record of a skill from the
stored verdicts. Useful after changing scoring parameters. Answer keys are
looked up as {keys-dir}/{doc-name}.json (or .yaml).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scoringCfg := scoring.DefaultConfig()
			scoringCfg.FalsePositivePenaltyPer = fpPerHit
			scoringCfg.RecommendationBonus = bonus

			lookup := func(docName string) (*answerkey.AnswerKey, error) {
				key, err := answerkey.Load(filepath.Join(keysDir, docName+".json"))
				if err == nil {
					return key, nil
				}
				return answerkey.Load(filepath.Join(keysDir, docName+".yaml"))
			}

			count, err := cfg.store().Rescore(cmd.Context(), skill, lookup, scoringCfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rescored %d records\n", count)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&skill, "skill", "", "Skill id to rescore (required)")
	flags.StringVar(&keysDir, "keys-dir", "", "Directory of answer key files (required)")
	flags.Float64Var(&fpPerHit, "fp-penalty", scoring.DefaultConfig().FalsePositivePenaltyPer, "Points deducted per false positive")
	flags.Float64Var(&bonus, "recommendation-bonus", scoring.DefaultConfig().RecommendationBonus, "Points added for a matching recommendation")
	_ = cmd.MarkFlagRequired("skill")
	_ = cmd.MarkFlagRequired("keys-dir")
	return cmd
}
