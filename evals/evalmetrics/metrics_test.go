/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evalmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// gatherValue scans the default registry for the named metric carrying the
// given labels and returns its value (counter or gauge).
func gatherValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	next:
		for _, metric := range family.GetMetric() {
			for key, want := range labels {
				found := false
				for _, label := range metric.GetLabel() {
					if label.GetName() == key && label.GetValue() == want {
						found = true
						break
					}
				}
				if !found {
					continue next
				}
			}
			if c := metric.GetCounter(); c != nil {
				return c.GetValue()
			}
			return metric.GetGauge().GetValue()
		}
	}
	t.Fatalf("Metric %s with labels %v not found", name, labels)
	return 0
}

func TestObserver(t *testing.T) {
	observer := NewObserver("contract-review", "panel")

	observer.Evaluation()
	observer.Evaluation()
	observer.Composite(0.85)
	observer.JudgeFailure("Gemini Flash")

	evalLabels := map[string]string{"skill": "contract-review", "mode": "panel"}
	if got := gatherValue(t, "skillcheck_evaluations_total", evalLabels); got != 2 {
		t.Errorf("Expected evaluation counter to be 2, got %f", got)
	}
	if got := gatherValue(t, "skillcheck_composite_score", evalLabels); got != 0.85 {
		t.Errorf("Expected composite gauge to be 0.85, got %f", got)
	}

	failLabels := map[string]string{"skill": "contract-review", "judge": "Gemini Flash"}
	if got := gatherValue(t, "skillcheck_judge_failures_total", failLabels); got != 1 {
		t.Errorf("Expected failure counter to be 1, got %f", got)
	}
}

func TestObserverModesAreSeparateSeries(t *testing.T) {
	panel := NewObserver("msa-review", "panel")
	single := NewObserver("msa-review", "judge")

	panel.Composite(0.90)
	single.Composite(0.40)

	if got := gatherValue(t, "skillcheck_composite_score", map[string]string{"skill": "msa-review", "mode": "panel"}); got != 0.90 {
		t.Errorf("Expected panel gauge to be 0.90, got %f", got)
	}
	if got := gatherValue(t, "skillcheck_composite_score", map[string]string{"skill": "msa-review", "mode": "judge"}); got != 0.40 {
		t.Errorf("Expected judge gauge to be 0.40, got %f", got)
	}
}

func TestObserverConcurrency(t *testing.T) {
	observer := NewObserver("concurrent-skill", "panel")

	done := make(chan bool, 100)
	for range 100 {
		go func() {
			observer.Evaluation()
			done <- true
		}()
	}
	for range 100 {
		<-done
	}

	labels := map[string]string{"skill": "concurrent-skill", "mode": "panel"}
	if got := gatherValue(t, "skillcheck_evaluations_total", labels); got != 100 {
		t.Errorf("Expected evaluation counter to be 100, got %f", got)
	}
}
