/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"fmt"

	"chainguard.dev/skillcheck/evals/providers"
)

// SelfEnhancementWarning flags judge/candidate pairings that route through
// the same provider family. Judges score outputs from their own family
// higher than merited, so same-family scores should be read with suspicion.
// Detection is provider-level only; shared training lineage across different
// providers is not detectable here.
//
// Returns an empty string for cross-provider pairings. The caller is
// responsible for surfacing the warning to a human reviewer.
func SelfEnhancementWarning(judge, candidate providers.ModelConfig) string {
	if judge.Provider == "" || judge.Provider != candidate.Provider {
		return ""
	}
	return fmt.Sprintf(
		"Self-enhancement risk: %s judging %s (same family: %s). Same-family scores may be inflated.",
		judge.Name(), candidate.Name(), judge.Provider)
}
