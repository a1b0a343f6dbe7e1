/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package panel

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"chainguard.dev/skillcheck/agents/agenttrace"
	"chainguard.dev/skillcheck/evals/evalmetrics"
	"chainguard.dev/skillcheck/evals/judge"
	"chainguard.dev/skillcheck/evals/providers"
	"chainguard.dev/skillcheck/evals/scoring"
)

// Judge pairs a judge implementation with its model configuration.
type Judge struct {
	Config providers.ModelConfig
	Judge  judge.Interface
}

// Run fans the request out to every judge concurrently, then aggregates the
// surviving verdicts. Individual judge failures (timeouts, malformed output,
// provider errors) are logged and tolerated; aggregation proceeds as long as
// at least two verdicts remain, and fails with ErrInsufficientPanelSize
// otherwise. Completion order does not affect the result.
//
// The candidate config identifies the model whose response is being judged;
// any judge sharing its provider family produces a self-enhancement warning
// on the result.
func Run(ctx context.Context, judges []Judge, candidate providers.ModelConfig, req *judge.Request, cfg scoring.Config) (*Result, error) {
	if len(judges) < 2 {
		return nil, fmt.Errorf("%w: got %d judges, need at least 2", ErrInsufficientPanelSize, len(judges))
	}
	log := clog.FromContext(ctx)

	execCtx := agenttrace.GetExecutionContext(ctx)
	observer := evalmetrics.NewObserver(execCtx.SkillID, "panel")

	verdicts := make([]*judge.Verdict, len(judges))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range judges {
		g.Go(func() error {
			// Attribute each call to the judge model making it, keeping
			// the caller's skill/version/doc identification.
			ec := execCtx
			ec.ModelKey = j.Config.Key
			ec.Role = "judge"
			verdict, err := j.Judge.Judge(agenttrace.WithExecutionContext(gctx, ec), req)
			if err != nil {
				// One failed judge must not sink the panel.
				observer.JudgeFailure(j.Config.Name())
				log.With("judge", j.Config.Name()).
					With("error", err).
					Warn("Judge call failed, continuing without it")
				return nil
			}
			verdicts[i] = verdict
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running judge panel: %w", err)
	}

	survivors := make([]JudgeVerdict, 0, len(judges))
	var warnings []string
	for i, j := range judges {
		if verdicts[i] == nil {
			continue
		}
		survivors = append(survivors, JudgeVerdict{
			Judge:   j.Config.Name(),
			Verdict: verdicts[i],
		})
		if w := judge.SelfEnhancementWarning(j.Config, candidate); w != "" {
			warnings = append(warnings, w)
		}
	}
	if len(survivors) < 2 {
		return nil, fmt.Errorf("%w: only %d of %d judges returned verdicts", ErrInsufficientPanelSize, len(survivors), len(judges))
	}

	result, err := Aggregate(req.Key, survivors, cfg)
	if err != nil {
		return nil, err
	}
	result.SelfEnhancementWarning = strings.Join(warnings, "; ")

	observer.Evaluation()
	observer.Composite(result.Composite)

	log.With("panel_size", len(survivors)).
		With("composite", result.Composite).
		Info("Panel aggregation complete")
	return result, nil
}
