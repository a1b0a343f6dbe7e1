/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package googleexecutor executes a single prompt against the Gemini API
// and extracts a typed result from the model's output.
//
// Structured output is supported through WithResponseMIMEType and
// WithResponseSchema; when a JSON schema is set the model returns the
// result shape directly and result.Extract only has to unmarshal it.
package googleexecutor
