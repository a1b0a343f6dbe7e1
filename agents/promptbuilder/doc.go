/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder provides injection-resistant prompt construction for the
model calls Skillcheck makes: candidate evaluations and judge scoring. It works
like SQL prepared statements, but for LLM prompts.

Templates are literal strings with {{name}} placeholders. Dynamic content
(documents under review, answer keys, candidate responses) is bound through
standard encoders so that hostile text in a reviewed contract cannot rewrite
the surrounding instructions:

	var userPrompt = promptbuilder.MustNewPrompt(`## Document Under Review

	{{document}}

	## Answer Key

	{{answer_key}}

	## Model Response to Evaluate

	{{response}}`)

	p, err := userPrompt.BindXML("document", doc)
	if err != nil {
		return err
	}
	p, err = p.BindJSON("answer_key", key)
	if err != nil {
		return err
	}
	built, err := p.Build()

Binding methods: BindStringLiteral (developer-controlled strings only),
BindJSON, BindXML, and BindYAML, each with a Must variant for package-level
prompt variables. Prompts are immutable; every binding returns a new instance,
so a template bound per-request is safe to share across concurrent judges.

Request types implement the Bindable interface so executors can pass
request-specific data into their configured templates:

	type Bindable interface {
		Bind(prompt *Prompt) (*Prompt, error)
	}

Errors are returned for malformed placeholders, binding names absent from the
template, rebinding an already-bound name, and building with unbound names.
Single-pass tokenization prevents transitive substitution: a bound value that
itself contains {{...}} is emitted verbatim, never re-expanded.
*/
package promptbuilder
