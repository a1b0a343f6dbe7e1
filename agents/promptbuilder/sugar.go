/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Helpers that panic on error, for package-level prompt variables where the
// template is known to be valid at compile time.

// Must wraps a call returning (*Prompt, error) and panics if the error is
// non-nil:
//
//	var p = promptbuilder.Must(promptbuilder.NewPrompt(`Hello {{name}}`))
func Must(p *Prompt, err error) *Prompt {
	if err != nil {
		panic(err)
	}
	return p
}

// MustNewPrompt creates a new prompt from a template literal and panics on
// error. Syntactic sugar for Must(NewPrompt(...)).
func MustNewPrompt(template stringLiteral) *Prompt {
	return Must(NewPrompt(template))
}

// MustBindStringLiteral binds a literal string value to a placeholder and
// panics on error. Syntactic sugar for Must(p.BindStringLiteral(...)).
func (p *Prompt) MustBindStringLiteral(name string, value stringLiteral) *Prompt {
	return Must(p.BindStringLiteral(name, value))
}
