/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudeexecutor executes a single prompt against the Anthropic
// API and extracts a typed result from the model's text output.
//
// An executor is constructed around a promptbuilder.Prompt. Execute binds
// the request into the prompt, sends it as one user message, and decodes
// the response into the caller's result type with result.Extract. There
// is no tool loop; callers that need multi-turn behavior drive the
// executor themselves.
package claudeexecutor
