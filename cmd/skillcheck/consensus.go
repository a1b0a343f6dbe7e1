/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"chainguard.dev/skillcheck/evals/answerkey"
	"chainguard.dev/skillcheck/evals/consensus"
	"chainguard.dev/skillcheck/evals/record"
	"chainguard.dev/skillcheck/evals/report"
)

func newConsensusCmd(cfg *config) *cobra.Command {
	var (
		skill     string
		docName   string
		keyPath   string
		format    string
		withTable bool
	)

	cmd := &cobra.Command{
		Use:   "consensus",
		Short: "Analyze agreement across saved evaluation results",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := answerkey.Load(keyPath)
			if err != nil {
				return fmt.Errorf("loading answer key: %w", err)
			}

			records, err := cfg.store().List(cmd.Context(), skill)
			if err != nil {
				return err
			}
			filtered := make([]*record.Record, 0, len(records))
			for _, r := range records {
				if docName == "" || r.DocName == docName {
					filtered = append(filtered, r)
				}
			}

			analysis := consensus.Build(filtered, key)

			switch format {
			case "md":
				out := report.Consensus(analysis)
				if out == "" {
					out = "No judged results found.\n"
				}
				if withTable {
					if records := report.Records(filtered); records != "" {
						out += "\n" + records
					}
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			case "json":
				data, err := json.MarshalIndent(analysis, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			default:
				return fmt.Errorf("unknown format %q: want md or json", format)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&skill, "skill", "", "Skill id to analyze (required)")
	flags.StringVar(&docName, "doc-name", "", "Restrict to one test document")
	flags.StringVar(&keyPath, "answer-key", "", "Path to the answer key (required)")
	flags.StringVar(&format, "format", "md", "Output format: md or json")
	flags.BoolVar(&withTable, "results-table", false, "Append the per-run results table")
	_ = cmd.MarkFlagRequired("skill")
	_ = cmd.MarkFlagRequired("answer-key")
	return cmd
}
