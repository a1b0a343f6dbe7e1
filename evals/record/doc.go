/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package record persists evaluation results as JSON files and supports
// recomputing composite scores from stored verdicts when scoring parameters
// change.
package record
