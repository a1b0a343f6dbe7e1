/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaiexecutor executes a single prompt against the OpenAI API
// and extracts a typed result from the model's output.
//
// When WithStructuredOutput is set, the response type's JSON schema is
// reflected and sent as a json_schema response format, so the model
// returns the result shape directly.
package openaiexecutor
