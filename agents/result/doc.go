/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package result extracts structured JSON from LLM response text.
//
// Models asked for "only a JSON object" still return a zoo of shapes: raw
// JSON, fenced ```json blocks, fenced blocks wrapped in prose, and verdicts
// preceded by visible chain-of-thought. Extract normalizes all of them into a
// typed value:
//
//	verdict, err := result.Extract[*judge.RawVerdict](responseText)
//
// Extraction strategy, in order:
//
//  1. A ```json fenced block on its own lines.
//  2. The trimmed response as raw JSON (with stray fence markers stripped).
//  3. A brace-scan for the outermost {...} object anywhere in the text.
//
// Only structural recovery happens here - no field validation and no schema
// checks. Callers own deciding whether the parsed value is usable.
package result
