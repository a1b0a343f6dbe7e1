/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge implements LLM-as-judge scoring of legal document reviews.
//
// A judge receives the document under review, the expert answer key, and a
// candidate model's response, and returns a normalized Verdict: a binary
// detected/missed call per answer-key issue, a recommendation-match flag,
// and the false positives the candidate asserted. Provider implementations
// exist for Anthropic, Gemini, and OpenAI-compatible endpoints; all share
// the same system instruction so a panel's judges see identical rules.
//
// The parser tolerates the two wire shapes judges have emitted over time
// (nested per-issue objects and legacy bare 0/1 values) and normalizes both
// to one Verdict. Output that cannot be parsed structurally at all fails
// with ErrMalformedJudgeOutput rather than degrading to a zero score.
package judge
