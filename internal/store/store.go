// Package store persists derivation runs under a data directory: one
// subdirectory per run with json metadata, the plain-text step trace, and a
// LaTeX rendering of the conditions.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/isuruf/jumplab/internal/derive"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string    `json:"id"`
	Problem        string    `json:"problem"`
	Timestamp      time.Time `json:"timestamp"`
	ValueCondition string    `json:"value_condition"`
	DerivCondition string    `json:"deriv_condition"`
	Target         string    `json:"target"`
	Coefficient    string    `json:"coefficient"`
}

func (s *Store) Save(result *derive.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", result.Problem, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Problem:        result.Problem,
		Timestamp:      time.Now(),
		ValueCondition: result.ValueCondition.String(),
		DerivCondition: result.DerivCondition.String(),
		Target:         result.Target.String(),
		Coefficient:    result.Coefficient.String(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	var trace strings.Builder
	for i, step := range result.Steps {
		fmt.Fprintf(&trace, "%d. %s:\n   %s\n", i+1, step.Name, step.Render())
	}
	if err := os.WriteFile(filepath.Join(runDir, "derivation.txt"), []byte(trace.String()), 0644); err != nil {
		return "", err
	}

	var tex strings.Builder
	fmt.Fprintf(&tex, "%% %s\n", result.Problem)
	fmt.Fprintf(&tex, "%s \\\\\n", result.ValueCondition.LaTeX())
	fmt.Fprintf(&tex, "%s \\\\\n", result.DerivCondition.LaTeX())
	fmt.Fprintf(&tex, "%s\n", result.Coefficient.LaTeX())
	if err := os.WriteFile(filepath.Join(runDir, "conditions.tex"), []byte(tex.String()), 0644); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadDerivation(runID string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "derivation.txt"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) LoadLaTeX(runID string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "conditions.tex"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
