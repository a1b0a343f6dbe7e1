/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evalmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Global metrics with consistent dimensions
	evaluationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillcheck_evaluations_total",
			Help: "Total number of completed evaluations",
		},
		[]string{"skill", "mode"},
	)

	judgeFailureCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillcheck_judge_failures_total",
			Help: "Total number of failed judge calls",
		},
		[]string{"skill", "judge"},
	)

	compositeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "skillcheck_composite_score",
			Help: "Most recent composite score (0.0-1.0)",
		},
		[]string{"skill", "mode"},
	)
)

// Observer records Prometheus metrics for the evaluations of one skill.
// Mode distinguishes single-judge runs from panel runs so their scores
// land in separate series.
type Observer struct {
	skill string

	evaluations prometheus.Counter
	composite   prometheus.Gauge
}

// NewObserver creates an observer for the given skill and evaluation mode
// ("judge" or "panel").
func NewObserver(skill, mode string) *Observer {
	labels := prometheus.Labels{"skill": skill, "mode": mode}
	return &Observer{
		skill:       skill,
		evaluations: evaluationCounter.With(labels),
		composite:   compositeGauge.With(labels),
	}
}

// Evaluation records one completed evaluation.
func (o *Observer) Evaluation() {
	o.evaluations.Inc()
}

// JudgeFailure records one failed call by the named judge model.
func (o *Observer) JudgeFailure(judge string) {
	judgeFailureCounter.With(prometheus.Labels{
		"skill": o.skill,
		"judge": judge,
	}).Inc()
}

// Composite records the most recent composite score for the skill.
func (o *Observer) Composite(score float64) {
	o.composite.Set(score)
}
