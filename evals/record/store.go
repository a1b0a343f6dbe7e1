/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package record

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/skillcheck/evals/answerkey"
	"chainguard.dev/skillcheck/evals/scoring"
)

// Store reads and writes evaluation records as JSON files under a root
// directory, one file per (skill, version, model, doc) combination:
//
//	{root}/{skill_id}/{version}/{model_key}__{doc_name}.json
//
// Saving the same combination again overwrites the previous record, so a
// re-run or a re-judge replaces the old result in place.
type Store struct {
	root string
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// first save.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Path returns the file path a record saves to.
func (s *Store) Path(r *Record) string {
	return filepath.Join(s.root, r.SkillID, r.Version, fmt.Sprintf("%s__%s.json", r.ModelKey, r.DocName))
}

// Save writes the record, creating parent directories as needed.
func (s *Store) Save(r *Record) error {
	if r.SkillID == "" || r.Version == "" || r.ModelKey == "" || r.DocName == "" {
		return fmt.Errorf("record is missing identity fields: skill=%q version=%q model=%q doc=%q",
			r.SkillID, r.Version, r.ModelKey, r.DocName)
	}
	path := s.Path(r)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", r.EvalID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing record %s: %w", r.EvalID, err)
	}
	return nil
}

// Load reads one record by its identity fields.
func (s *Store) Load(skillID, version, modelKey, docName string) (*Record, error) {
	path := filepath.Join(s.root, skillID, version, fmt.Sprintf("%s__%s.json", modelKey, docName))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", path, err)
	}
	return &r, nil
}

// List returns every readable record saved for a skill, walking all version
// subdirectories. Unparseable files are logged and skipped rather than
// failing the whole listing. A missing skill directory yields an empty list.
func (s *Store) List(ctx context.Context, skillID string) ([]*Record, error) {
	log := clog.FromContext(ctx)
	dir := filepath.Join(s.root, skillID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var records []*Record
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.With("path", path).With("error", err).Warn("Skipping unreadable record")
			return nil
		}
		var r Record
		if err := json.Unmarshal(data, &r); err != nil {
			log.With("path", path).With("error", err).Warn("Skipping unparseable record")
			return nil
		}
		records = append(records, &r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing records for %s: %w", skillID, err)
	}
	return records, nil
}

// KeyLookup resolves the answer key for a test document name.
type KeyLookup func(docName string) (*answerkey.AnswerKey, error)

// Rescore recomputes composite scores for every judged record of a skill
// from the stored verdicts, without re-calling any judge. Useful after
// changing scoring parameters. Records without judge output, or whose answer
// key cannot be resolved, are skipped. Returns the number of records updated.
func (s *Store) Rescore(ctx context.Context, skillID string, lookup KeyLookup, cfg scoring.Config) (int, error) {
	log := clog.FromContext(ctx)
	records, err := s.List(ctx, skillID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, r := range records {
		if r.Judge == nil || r.Judge.Verdict == nil {
			continue
		}
		key, err := lookup(r.DocName)
		if err != nil {
			log.With("doc", r.DocName).With("error", err).Warn("Skipping record with unresolvable answer key")
			continue
		}
		r.Judge.Score = scoring.Score(key, r.Judge.Verdict, cfg)
		if err := s.Save(r); err != nil {
			return count, fmt.Errorf("rescoring %s: %w", r.EvalID, err)
		}
		count++
	}
	log.With("skill", skillID).With("updated", count).Info("Rescore complete")
	return count, nil
}
