/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package panel runs several independent judges over the same candidate
// response and merges their verdicts: majority vote per issue with ties
// resolving to detected, union of false positives, and attributed
// concatenation of reasoning. The panel's reported composite is the mean of
// the per-judge composites rather than a score recomputed from the merged
// verdict, keeping panel scores comparable to single-judge scores.
package panel
