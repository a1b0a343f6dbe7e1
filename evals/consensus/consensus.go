/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package consensus

import (
	"sort"

	"chainguard.dev/skillcheck/evals/answerkey"
	"chainguard.dev/skillcheck/evals/record"
)

// Tier classifies how widely an issue was detected across all runs.
type Tier string

const (
	TierUniversal Tier = "universal" // >= 90% of runs found it
	TierStrong    Tier = "strong"    // >= 70%
	TierDisputed  Tier = "disputed"  // >= 30%, the contested middle
	TierRare      Tier = "rare"      // below 30%
)

func classifyRate(rate float64) Tier {
	switch {
	case rate >= 0.90:
		return TierUniversal
	case rate >= 0.70:
		return TierStrong
	case rate >= 0.30:
		return TierDisputed
	default:
		return TierRare
	}
}

var tierOrder = map[Tier]int{TierUniversal: 0, TierStrong: 1, TierDisputed: 2, TierRare: 3}

// RunRef identifies one judged run inside the analysis.
type RunRef struct {
	Version   string `json:"version"`
	ModelKey  string `json:"model"`
	ModelName string `json:"model_name"`
}

// IssueConsensus is the cross-run detection picture for one answer key issue.
type IssueConsensus struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Severity      answerkey.Severity `json:"severity"`
	DetectionRate float64            `json:"detection_rate"`
	Tier          Tier               `json:"classification"`
	FoundCount    int                `json:"found_count"`
	TotalCount    int                `json:"total_count"`
	FoundBy       []RunRef           `json:"found_by"`
	MissedBy      []RunRef           `json:"missed_by"`
}

// ModelSummary measures how closely one model tracks the majority verdict.
type ModelSummary struct {
	ModelKey          string   `json:"model_key"`
	ModelName         string   `json:"model_name"`
	EvalCount         int      `json:"eval_count"`
	MajorityAgreement float64  `json:"majority_agreement"`
	UniqueFinds       []string `json:"unique_finds"`  // found by this model, missed by majority
	UniqueMisses      []string `json:"unique_misses"` // missed by this model, found by majority
}

// VersionSummary measures a skill version's effectiveness across models.
type VersionSummary struct {
	Version           string   `json:"version"`
	EvalCount         int      `json:"eval_count"`
	MajorityAgreement float64  `json:"majority_agreement"`
	AvgScore          *float64 `json:"avg_score"` // mean composite, 0-100 scale; nil when unscored
}

// PairwiseAgreement is the fraction of per-issue judgments two models agree
// on across the skill versions they both evaluated.
type PairwiseAgreement struct {
	ModelA     string  `json:"model_a"`
	ModelAName string  `json:"model_a_name"`
	ModelB     string  `json:"model_b"`
	ModelBName string  `json:"model_b_name"`
	Agreement  float64 `json:"agreement"`
}

// Overall is the headline statistics for an analysis.
type Overall struct {
	TotalResults  int `json:"total_results"`
	TotalModels   int `json:"total_models"`
	TotalVersions int `json:"total_versions"`
	TotalIssues   int `json:"total_issues"`
	Universal     int `json:"universal"`
	Strong        int `json:"strong"`
	Disputed      int `json:"disputed"`
	Rare          int `json:"rare"`
}

// Analysis is the full consensus picture for one (skill, test document) pair.
type Analysis struct {
	Issues   []IssueConsensus    `json:"issue_consensus"`
	Models   []ModelSummary      `json:"model_summary"`
	Versions []VersionSummary    `json:"version_summary"`
	Pairwise []PairwiseAgreement `json:"pairwise_agreement"`
	Overall  Overall             `json:"overall"`
}

type runKey struct {
	version  string
	modelKey string
}

// Build analyzes all judged records for one (skill, doc) pair against the
// answer key. Records without judge output are excluded; when the same
// (version, model) has been run more than once the last record in the slice
// wins. Nil inputs or no judged records yield an empty analysis.
func Build(records []*record.Record, key *answerkey.AnswerKey) *Analysis {
	out := &Analysis{
		Pairwise: []PairwiseAgreement{},
	}
	if key == nil || len(records) == 0 {
		return out
	}
	out.Overall.TotalIssues = len(key.Issues)

	// Detection matrix: issue id -> run -> detected.
	detection := make(map[string]map[runKey]bool, len(key.Issues))
	for _, issue := range key.Issues {
		detection[issue.ID] = make(map[runKey]bool)
	}
	index := make(map[runKey]*record.Record)
	for _, r := range records {
		if r.Version == "" || r.ModelKey == "" || r.Judge == nil || r.Judge.Verdict == nil {
			continue
		}
		k := runKey{version: r.Version, modelKey: r.ModelKey}
		index[k] = r
		for _, issue := range key.Issues {
			detection[issue.ID][k] = r.Judge.Verdict.Detected(issue.ID)
		}
	}

	runs := make([]runKey, 0, len(index))
	for k := range index {
		runs = append(runs, k)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].version != runs[j].version {
			return runs[i].version < runs[j].version
		}
		return runs[i].modelKey < runs[j].modelKey
	})
	n := len(runs)
	if n == 0 {
		return out
	}

	ref := func(k runKey) RunRef {
		return RunRef{Version: k.version, ModelKey: k.modelKey, ModelName: index[k].ModelName}
	}

	// Per-issue consensus, sorted contested-first.
	for _, issue := range key.Issues {
		ic := IssueConsensus{
			ID:         issue.ID,
			Title:      issue.Title,
			Severity:   issue.Severity,
			TotalCount: n,
		}
		for _, k := range runs {
			if detection[issue.ID][k] {
				ic.FoundBy = append(ic.FoundBy, ref(k))
			} else {
				ic.MissedBy = append(ic.MissedBy, ref(k))
			}
		}
		ic.FoundCount = len(ic.FoundBy)
		ic.DetectionRate = float64(ic.FoundCount) / float64(n)
		ic.Tier = classifyRate(ic.DetectionRate)
		out.Issues = append(out.Issues, ic)
	}
	sort.SliceStable(out.Issues, func(i, j int) bool {
		a, b := out.Issues[i], out.Issues[j]
		if tierOrder[a.Tier] != tierOrder[b.Tier] {
			return tierOrder[a.Tier] < tierOrder[b.Tier]
		}
		return a.DetectionRate > b.DetectionRate
	})

	// Majority verdict per issue: strictly more than half the runs.
	majority := make(map[string]bool, len(key.Issues))
	for _, issue := range key.Issues {
		found := 0
		for _, k := range runs {
			if detection[issue.ID][k] {
				found++
			}
		}
		majority[issue.ID] = 2*found > n
	}

	var models, versions []string
	seenModel := map[string]bool{}
	seenVersion := map[string]bool{}
	for _, k := range runs {
		if !seenModel[k.modelKey] {
			seenModel[k.modelKey] = true
			models = append(models, k.modelKey)
		}
		if !seenVersion[k.version] {
			seenVersion[k.version] = true
			versions = append(versions, k.version)
		}
	}
	sort.Strings(models)
	sort.Strings(versions)

	runsFor := func(match func(runKey) bool) []runKey {
		var sel []runKey
		for _, k := range runs {
			if match(k) {
				sel = append(sel, k)
			}
		}
		return sel
	}
	agreementRate := func(sel []runKey) float64 {
		agrees, total := 0, 0
		for _, issue := range key.Issues {
			for _, k := range sel {
				if detection[issue.ID][k] == majority[issue.ID] {
					agrees++
				}
				total++
			}
		}
		if total == 0 {
			return 0
		}
		return float64(agrees) / float64(total)
	}

	// Per-model summary, sorted by agreement.
	for _, mk := range models {
		sel := runsFor(func(k runKey) bool { return k.modelKey == mk })
		ms := ModelSummary{
			ModelKey:          mk,
			ModelName:         index[sel[0]].ModelName,
			EvalCount:         len(sel),
			MajorityAgreement: agreementRate(sel),
		}
		for _, issue := range key.Issues {
			found := false
			for _, k := range sel {
				if detection[issue.ID][k] {
					found = true
					break
				}
			}
			if found && !majority[issue.ID] {
				ms.UniqueFinds = append(ms.UniqueFinds, issue.ID)
			}
			if !found && majority[issue.ID] {
				ms.UniqueMisses = append(ms.UniqueMisses, issue.ID)
			}
		}
		out.Models = append(out.Models, ms)
	}
	sort.SliceStable(out.Models, func(i, j int) bool {
		return out.Models[i].MajorityAgreement > out.Models[j].MajorityAgreement
	})

	// Per-version summary, sorted by average score.
	for _, v := range versions {
		sel := runsFor(func(k runKey) bool { return k.version == v })
		vs := VersionSummary{
			Version:           v,
			EvalCount:         len(sel),
			MajorityAgreement: agreementRate(sel),
		}
		var sum float64
		var scored int
		for _, k := range sel {
			sum += index[k].Judge.Score.Composite * 100
			scored++
		}
		if scored > 0 {
			avg := sum / float64(scored)
			vs.AvgScore = &avg
		}
		out.Versions = append(out.Versions, vs)
	}
	sort.SliceStable(out.Versions, func(i, j int) bool {
		a, b := 0.0, 0.0
		if out.Versions[i].AvgScore != nil {
			a = *out.Versions[i].AvgScore
		}
		if out.Versions[j].AvgScore != nil {
			b = *out.Versions[j].AvgScore
		}
		return a > b
	})

	// Pairwise model agreement over shared versions.
	for i, m1 := range models {
		for _, m2 := range models[i+1:] {
			var shared []string
			for _, v := range versions {
				_, ok1 := index[runKey{v, m1}]
				_, ok2 := index[runKey{v, m2}]
				if ok1 && ok2 {
					shared = append(shared, v)
				}
			}
			if len(shared) == 0 {
				continue
			}
			agree, total := 0, 0
			for _, issue := range key.Issues {
				for _, v := range shared {
					if detection[issue.ID][runKey{v, m1}] == detection[issue.ID][runKey{v, m2}] {
						agree++
					}
					total++
				}
			}
			pw := PairwiseAgreement{
				ModelA:     m1,
				ModelAName: out.modelName(m1),
				ModelB:     m2,
				ModelBName: out.modelName(m2),
			}
			if total > 0 {
				pw.Agreement = float64(agree) / float64(total)
			}
			out.Pairwise = append(out.Pairwise, pw)
		}
	}
	sort.SliceStable(out.Pairwise, func(i, j int) bool {
		return out.Pairwise[i].Agreement > out.Pairwise[j].Agreement
	})

	out.Overall.TotalResults = n
	out.Overall.TotalModels = len(models)
	out.Overall.TotalVersions = len(versions)
	for _, ic := range out.Issues {
		switch ic.Tier {
		case TierUniversal:
			out.Overall.Universal++
		case TierStrong:
			out.Overall.Strong++
		case TierDisputed:
			out.Overall.Disputed++
		case TierRare:
			out.Overall.Rare++
		}
	}
	return out
}

func (a *Analysis) modelName(modelKey string) string {
	for _, ms := range a.Models {
		if ms.ModelKey == modelKey {
			return ms.ModelName
		}
	}
	return modelKey
}
