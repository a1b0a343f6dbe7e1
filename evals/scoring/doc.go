/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package scoring turns a judge verdict into a single composite score:
// severity-weighted detection rate, plus a recommendation bonus, minus a
// per-false-positive penalty, clamped to [0,100] and reported canonically
// as a value in [0.0,1.0].
package scoring
