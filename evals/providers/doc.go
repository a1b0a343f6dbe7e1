/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package providers is the model registry: which judge and candidate models
// exist, which vendor family each routes through, and which are usable given
// the API keys present in the environment.
package providers
