/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
)

// isRetryableClaudeError identifies transient Anthropic API failures.
func isRetryableClaudeError(err error) bool {
	if err == nil {
		return false
	}

	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case 429, // rate limit
			503, // service unavailable
			504, // gateway timeout
			529: // overloaded
			return true
		}
	}
	return false
}
