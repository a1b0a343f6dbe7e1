/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"errors"

	"github.com/openai/openai-go"
)

// isRetryableOpenAIError identifies transient OpenAI API failures.
func isRetryableOpenAIError(err error) bool {
	if err == nil {
		return false
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case 429, // rate limit
			500, // internal server error
			503: // service unavailable
			return true
		}
	}
	return false
}
