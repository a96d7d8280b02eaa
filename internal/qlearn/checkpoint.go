package qlearn

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/lox/leducbots/internal/fileutil"
)

const checkpointVersion = 1

// Snapshot is the externalised learning state of an Agent.
type Snapshot struct {
	Version     int                `json:"version"`
	Iteration   int64              `json:"iteration"`
	Discount    float64            `json:"discount"`
	Exploration float64            `json:"exploration"`
	Features    string             `json:"features"`
	Weights     map[string]float64 `json:"weights"`
}

// Snapshot copies the weights and iteration counter.
func (a *Agent) Snapshot() Snapshot {
	return Snapshot{
		Version:     checkpointVersion,
		Iteration:   a.iterations,
		Discount:    a.discount,
		Exploration: a.exploration,
		Features:    a.features,
		Weights:     maps.Clone(a.weights),
	}
}

// Restore replaces the weights and iteration counter with those of s. The
// agent keeps its own discount and exploration.
func (a *Agent) Restore(s Snapshot) error {
	if s.Version != checkpointVersion {
		return fmt.Errorf("unsupported checkpoint version %d", s.Version)
	}
	if s.Features != a.features {
		return fmt.Errorf("checkpoint uses %q features, agent uses %q", s.Features, a.features)
	}
	if s.Iteration < 1 {
		return fmt.Errorf("checkpoint iteration %d out of range", s.Iteration)
	}
	a.iterations = s.Iteration
	a.weights = maps.Clone(s.Weights)
	if a.weights == nil {
		a.weights = make(map[string]float64)
	}
	return nil
}

// SaveCheckpoint writes the agent's snapshot to path as JSON.
func (a *Agent) SaveCheckpoint(path string) error {
	if err := fileutil.WriteJSONAtomic(path, a.Snapshot()); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a snapshot written by SaveCheckpoint.
func LoadCheckpoint(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open checkpoint: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a JSON snapshot from r.
func Decode(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode checkpoint: %w", err)
	}
	if s.Version != checkpointVersion {
		return Snapshot{}, fmt.Errorf("unsupported checkpoint version %d", s.Version)
	}
	return s, nil
}
