/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"chainguard.dev/skillcheck/agents/schema"
)

func TestReflect(t *testing.T) {
	type issueResult struct {
		Detected  int    `json:"detected" jsonschema:"description=1 if the issue was identified,required"`
		Reasoning string `json:"reasoning,omitempty" jsonschema:"description=One sentence of judge reasoning"`
	}
	type verdict struct {
		Issues              map[string]issueResult `json:"issues" jsonschema:"description=Per-issue detection results,required"`
		RecommendationMatch int                    `json:"recommendation_match" jsonschema:"required"`
	}

	s := schema.Reflect(&verdict{})
	if s == nil {
		t.Fatal("expected schema")
	}

	if len(s.Required) != 2 {
		t.Fatalf("unexpected required: %#v", s.Required)
	}

	props := s.Properties
	if props == nil {
		t.Fatal("expected properties")
	}

	issues, ok := props.Get("issues")
	if !ok {
		t.Fatal("missing issues property")
	}
	if issues.Description != "Per-issue detection results" {
		t.Fatalf("unexpected description: %q", issues.Description)
	}

	if _, ok := props.Get("recommendation_match"); !ok {
		t.Fatal("missing recommendation_match property")
	}
}

func TestReflectTypeMarshals(t *testing.T) {
	type verdict struct {
		RecommendationMatch int `json:"recommendation_match"`
	}

	s := schema.ReflectType[verdict]()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	if !strings.Contains(string(data), "recommendation_match") {
		t.Fatalf("schema JSON missing field: %s", data)
	}
}
