/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the skillcheck CLI: judging skill responses
// against answer keys, aggregating judge panels, rescoring saved results,
// and cross-run consensus analysis.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"chainguard.dev/skillcheck/evals/providers"
	"chainguard.dev/skillcheck/evals/record"
)

type config struct {
	// ResultsDir is where evaluation records are stored.
	ResultsDir string `env:"SKILLCHECK_RESULTS_DIR, default=results"`

	// ModelsFile optionally points at a YAML model registry; when empty the
	// built-in registry is used.
	ModelsFile string `env:"SKILLCHECK_MODELS"`
}

func (c *config) registry() (providers.Registry, error) {
	if c.ModelsFile == "" {
		return providers.Default(), nil
	}
	return providers.Load(c.ModelsFile)
}

func (c *config) store() *record.Store {
	return record.NewStore(c.ResultsDir)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	root := &cobra.Command{
		Use:           "skillcheck",
		Short:         "Evaluate skill outputs against answer keys with LLM judges",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(
		newJudgeCmd(&cfg),
		newPanelCmd(&cfg),
		newRescoreCmd(&cfg),
		newConsensusCmd(&cfg),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
