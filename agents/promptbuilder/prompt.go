/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
)

// stringLiteral is a private type alias that only accepts literal strings
type stringLiteral string

// Prompt represents a template with bindable placeholders
type Prompt struct {
	template string
	bindings map[string]binding
}

// NewPrompt creates a new prompt from a template literal and parses bindings
func NewPrompt(template stringLiteral) (*Prompt, error) {
	bindings := make(map[string]binding)

	// Walk the template once to discover placeholders. The walk returns the
	// template unchanged since every placeholder is echoed back.
	tmpl, err := walkTemplate(string(template), func(name string) (string, error) {
		if _, exists := bindings[name]; !exists {
			bindings[name] = &unboundBinding{name: name}
		}
		return fmt.Sprintf("{{%s}}", name), nil
	})
	if err != nil {
		return nil, err
	}

	return &Prompt{
		template: tmpl,
		bindings: bindings,
	}, nil
}

// GetBindings returns the names of all bindings found in the template as a set
// This is useful for testing and debugging
func (p *Prompt) GetBindings() map[string]struct{} {
	names := make(map[string]struct{}, len(p.bindings))
	for name := range p.bindings {
		names[name] = struct{}{}
	}
	return names
}

// bind returns a copy of the prompt with one placeholder bound. Prompts are
// immutable; the receiver is never modified, so a partially bound prompt can
// be reused across requests.
func (p *Prompt) bind(name string, b binding) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	bound := &Prompt{
		template: p.template,
		bindings: maps.Clone(p.bindings),
	}
	bound.bindings[name] = b
	return bound, nil
}

// BindStringLiteral binds a literal string value to a placeholder.
// The value comes from the developer, not from user input.
func (p *Prompt) BindStringLiteral(name string, value stringLiteral) (*Prompt, error) {
	return p.bind(name, &literalBinding{val: string(value)})
}

// BindXML binds structured data to a placeholder, marshaled as XML when the
// prompt is built. This is the safe way to inline untrusted text: the
// surrounding element keeps it from being read as template syntax.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	return p.bind(name, &xmlBinding{data: data})
}

// BindJSON binds structured data to a placeholder, marshaled as indented
// JSON when the prompt is built.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	return p.bind(name, &jsonBinding{data: data})
}

// BindYAML binds structured data to a placeholder, marshaled as YAML when
// the prompt is built.
func (p *Prompt) BindYAML(name string, data any) (*Prompt, error) {
	return p.bind(name, &yamlBinding{data: data})
}

// Build constructs the final prompt, returning an error if any bindings are unbound
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, binding := range p.bindings {
		val, err := binding.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}

	// Reuse the tokenizer so substitution sees exactly the placeholders
	// NewPrompt discovered.
	return walkTemplate(p.template, func(name string) (string, error) {
		if val, exists := values[name]; exists {
			return val, nil
		}
		return "", fmt.Errorf("internal error: binding %q not found in values map", name)
	})
}
