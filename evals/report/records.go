/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"chainguard.dev/skillcheck/evals/record"
)

// Records renders a markdown results table for a set of evaluation records,
// one row per run, sorted by composite score descending with unjudged runs
// last. Returns the empty string when there are no records.
func Records(records []*record.Record) string {
	if len(records) == 0 {
		return ""
	}

	sorted := make([]*record.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compositeOf(sorted[i]) > compositeOf(sorted[j])
	})

	var buf bytes.Buffer
	table := createStandardTable([]string{
		"Version", "Model", "Doc", "Composite", "Issues", "FPs", "Tokens", "Elapsed",
	}, &buf)

	var warnings []string
	for _, r := range sorted {
		row := []string{r.Version, r.ModelName, r.DocName}
		if r.Judge == nil || r.Judge.Verdict == nil {
			row = append(row, "-", "-", "-")
		} else {
			score := r.Judge.Score
			row = append(row,
				fmt.Sprintf("%.1f%%", score.Composite*100),
				fmt.Sprintf("%d/%d", score.IssuesFound, score.IssuesTotal),
				fmt.Sprintf("%d", len(r.Judge.Verdict.FalsePositives)),
			)
			if r.Judge.SelfEnhancementWarning != "" {
				warnings = append(warnings, r.Judge.SelfEnhancementWarning)
			}
		}
		row = append(row,
			fmt.Sprintf("%d in / %d out", r.InputTokens, r.OutputTokens),
			fmt.Sprintf("%.1fs", r.ElapsedSeconds),
		)
		_ = table.Append(row)
	}
	_ = table.Render()

	var report strings.Builder
	report.WriteString("## Evaluation Results\n\n")
	report.WriteString(buf.String())
	for _, w := range dedupe(warnings) {
		report.WriteString(fmt.Sprintf("\n> ⚠️ %s\n", w))
	}
	return report.String()
}

func compositeOf(r *record.Record) float64 {
	if r.Judge == nil {
		return -1
	}
	return r.Judge.Score.Composite
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
