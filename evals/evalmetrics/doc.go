/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package evalmetrics exposes Prometheus metrics for evaluation outcomes:
// completed evaluations, failed judge calls, and the most recent composite
// score per skill.
package evalmetrics
