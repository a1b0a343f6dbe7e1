/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"bytes"
	"fmt"
	"strings"

	"chainguard.dev/skillcheck/evals/consensus"
)

// Consensus renders a markdown report for a cross-run consensus analysis:
// an overview line, the per-issue detection table (contested issues are the
// interesting rows), per-model agreement, version effectiveness, and
// pairwise model agreement. Returns the empty string for an empty analysis.
func Consensus(a *consensus.Analysis) string {
	if a == nil || a.Overall.TotalResults == 0 {
		return ""
	}

	var report strings.Builder
	report.WriteString("## Consensus Analysis\n\n")
	report.WriteString(fmt.Sprintf(
		"%d evaluations across %d models and %d skill versions; %d answer key issues (%d universal, %d strong, %d disputed, %d rare).\n\n",
		a.Overall.TotalResults, a.Overall.TotalModels, a.Overall.TotalVersions,
		a.Overall.TotalIssues, a.Overall.Universal, a.Overall.Strong,
		a.Overall.Disputed, a.Overall.Rare,
	))

	report.WriteString("### Issue Consensus\n\n")
	report.WriteString(issueTable(a))

	if len(a.Models) > 0 {
		report.WriteString("\n### Model Agreement\n\n")
		report.WriteString(modelTable(a))
	}

	if len(a.Versions) > 0 {
		report.WriteString("\n### Version Effectiveness\n\n")
		report.WriteString(versionTable(a))
	}

	if len(a.Pairwise) > 0 {
		report.WriteString("\n### Pairwise Model Agreement\n\n")
		report.WriteString(pairwiseTable(a))
	}

	return report.String()
}

func issueTable(a *consensus.Analysis) string {
	var buf bytes.Buffer
	table := createStandardTable([]string{"Issue", "Severity", "Detection", "Tier", "Missed By"}, &buf)
	for _, ic := range a.Issues {
		missed := make([]string, 0, len(ic.MissedBy))
		for _, ref := range ic.MissedBy {
			missed = append(missed, fmt.Sprintf("%s/%s", ref.ModelName, ref.Version))
		}
		missedStr := strings.Join(missed, ", ")
		if missedStr == "" {
			missedStr = "-"
		}
		_ = table.Append([]string{
			fmt.Sprintf("%s (%s)", ic.ID, ic.Title),
			string(ic.Severity),
			fmt.Sprintf("%d/%d (%.0f%%)", ic.FoundCount, ic.TotalCount, ic.DetectionRate*100),
			string(ic.Tier),
			missedStr,
		})
	}
	_ = table.Render()
	return buf.String()
}

func modelTable(a *consensus.Analysis) string {
	var buf bytes.Buffer
	table := createStandardTable([]string{"Model", "Evals", "Majority Agreement", "Unique Finds", "Unique Misses"}, &buf)
	for _, ms := range a.Models {
		_ = table.Append([]string{
			ms.ModelName,
			fmt.Sprintf("%d", ms.EvalCount),
			fmt.Sprintf("%.0f%%", ms.MajorityAgreement*100),
			orDash(strings.Join(ms.UniqueFinds, ", ")),
			orDash(strings.Join(ms.UniqueMisses, ", ")),
		})
	}
	_ = table.Render()
	return buf.String()
}

func versionTable(a *consensus.Analysis) string {
	var buf bytes.Buffer
	table := createStandardTable([]string{"Version", "Evals", "Majority Agreement", "Avg Score"}, &buf)
	for _, vs := range a.Versions {
		score := "-"
		if vs.AvgScore != nil {
			score = fmt.Sprintf("%.1f%%", *vs.AvgScore)
		}
		_ = table.Append([]string{
			vs.Version,
			fmt.Sprintf("%d", vs.EvalCount),
			fmt.Sprintf("%.0f%%", vs.MajorityAgreement*100),
			score,
		})
	}
	_ = table.Render()
	return buf.String()
}

func pairwiseTable(a *consensus.Analysis) string {
	var buf bytes.Buffer
	table := createStandardTable([]string{"Model A", "Model B", "Agreement"}, &buf)
	for _, pw := range a.Pairwise {
		_ = table.Append([]string{
			pw.ModelAName,
			pw.ModelBName,
			fmt.Sprintf("%.0f%%", pw.Agreement*100),
		})
	}
	_ = table.Render()
	return buf.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
