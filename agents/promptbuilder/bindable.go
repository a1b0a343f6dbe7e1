/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Bindable is implemented by executor request types: given the executor's
// user prompt template, Bind fills in the request-specific placeholders and
// returns the bound prompt.
type Bindable interface {
	Bind(prompt *Prompt) (*Prompt, error)
}
