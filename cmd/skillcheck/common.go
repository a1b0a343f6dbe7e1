/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"chainguard.dev/skillcheck/evals/answerkey"
	"chainguard.dev/skillcheck/evals/judge"
	"chainguard.dev/skillcheck/evals/providers"
	"chainguard.dev/skillcheck/evals/scoring"
)

// evalFlags are the inputs shared by the judge and panel commands.
type evalFlags struct {
	document        string
	answerKey       string
	response        string
	businessContext string

	skill    string
	version  string
	docName  string
	model    string
	noSave   bool
	fpPerHit float64
	bonus    float64
}

func (f *evalFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.document, "document", "", "Path to the document under review (required)")
	flags.StringVar(&f.answerKey, "answer-key", "", "Path to the answer key JSON/YAML (required)")
	flags.StringVar(&f.response, "response", "", "Path to the response being evaluated (required)")
	flags.StringVar(&f.businessContext, "business-context", "", "Business context override (default: from the answer key)")
	flags.StringVar(&f.skill, "skill", "", "Skill id for the saved record (required unless --no-save)")
	flags.StringVar(&f.version, "skill-version", "v1", "Skill version for the saved record")
	flags.StringVar(&f.docName, "doc-name", "", "Test document name (default: document file stem)")
	flags.StringVar(&f.model, "model", "external", "Model key that produced the response")
	flags.BoolVar(&f.noSave, "no-save", false, "Print scores without saving a record")
	flags.Float64Var(&f.fpPerHit, "fp-penalty", scoring.DefaultConfig().FalsePositivePenaltyPer, "Points deducted per false positive")
	flags.Float64Var(&f.bonus, "recommendation-bonus", scoring.DefaultConfig().RecommendationBonus, "Points added for a matching recommendation")
	_ = cmd.MarkFlagRequired("document")
	_ = cmd.MarkFlagRequired("answer-key")
	_ = cmd.MarkFlagRequired("response")
}

func (f *evalFlags) validate() error {
	if !f.noSave && f.skill == "" {
		return fmt.Errorf("--skill is required unless --no-save is set")
	}
	return nil
}

func (f *evalFlags) scoringConfig() scoring.Config {
	cfg := scoring.DefaultConfig()
	cfg.FalsePositivePenaltyPer = f.fpPerHit
	cfg.RecommendationBonus = f.bonus
	return cfg
}

func (f *evalFlags) request() (*judge.Request, error) {
	key, err := answerkey.Load(f.answerKey)
	if err != nil {
		return nil, fmt.Errorf("loading answer key: %w", err)
	}
	document, err := os.ReadFile(f.document)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	response, err := os.ReadFile(f.response)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &judge.Request{
		Document:        string(document),
		Key:             key,
		BusinessContext: f.businessContext,
		Response:        string(response),
	}, nil
}

// resolvedDocName is the test document name used for record identity.
func (f *evalFlags) resolvedDocName() string {
	if f.docName != "" {
		return f.docName
	}
	return fileStem(f.document)
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// candidateModel resolves the model key the response came from. Keys outside
// the registry (externally produced responses, ad hoc names) get a synthetic
// config so records still carry a readable identity.
func candidateModel(registry providers.Registry, key string) providers.ModelConfig {
	if cfg, err := registry.Get(key); err == nil {
		return cfg
	}
	return providers.ModelConfig{Key: key, DisplayName: key}
}

func judgeModel(registry providers.Registry, key string) (providers.ModelConfig, error) {
	cfg, err := registry.Get(key)
	if err != nil {
		return providers.ModelConfig{}, err
	}
	if !cfg.Available() {
		return providers.ModelConfig{}, fmt.Errorf("judge model %s is not available: %s is not set", cfg.Name(), cfg.EnvKey)
	}
	return cfg, nil
}
