/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package answerkey models the expert-authored rubric an evaluation scores
// against: the issues a correct review must find (weighted by severity),
// the expected recommendation, and the false-positive traps that distinguish
// real problems from standard provisions.
package answerkey
