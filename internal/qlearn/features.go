package qlearn

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/lox/leducbots/internal/game"
)

// Feature is one sparse, named contribution to Q(s, a). Keys are built from
// values only so structurally identical states share features.
type Feature struct {
	Key   string
	Value float64
}

// FeatureExtractor maps a decision to its features.
type FeatureExtractor func(state game.GameState, action game.Action) []Feature

const (
	IdentityName     = "identity"
	HandStrengthName = "hand-strength"
)

var extractors = map[string]FeatureExtractor{
	IdentityName:     IdentityFeatures,
	HandStrengthName: HandStrengthFeatures,
}

// ExtractorNames lists the registered extractors, sorted.
func ExtractorNames() []string {
	names := make([]string, 0, len(extractors))
	for name := range extractors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Extractor looks up a registered extractor by name.
func Extractor(name string) (FeatureExtractor, error) {
	if fe, ok := extractors[name]; ok {
		return fe, nil
	}
	return nil, fmt.Errorf("unknown feature extractor %q (available: %v)", name, ExtractorNames())
}

// IdentityFeatures emits a single indicator for the exact information state and
// action, so nothing is shared between different states.
func IdentityFeatures(state game.GameState, action game.Action) []Feature {
	return []Feature{{Key: state.Key() + "|" + action.String(), Value: 1}}
}

// HandStrengthFeatures generalises over hands of the same class: the hand
// class with and without the bet being faced, plus a per-action bias.
func HandStrengthFeatures(state game.GameState, action game.Action) []Feature {
	class := handClass(state)
	call, _ := state.Costs()
	facing := "open"
	if call > 0 {
		facing = "facing"
	}
	a := action.String()
	return []Feature{
		{Key: "bias|" + a, Value: 1},
		{Key: "hand=" + class + "|" + a, Value: 1},
		{Key: "hand=" + class + "|" + facing + "|" + a, Value: 1},
	}
}

func handClass(state game.GameState) string {
	ranks := state.Public.Ranks
	hi := state.Exclusive.Hand[0].Rank(ranks)
	lo := state.Exclusive.Hand[1].Rank(ranks)
	if hi == lo {
		return "pair" + strconv.Itoa(hi)
	}
	if lo > hi {
		hi, lo = lo, hi
	}
	return "high" + strconv.Itoa(hi) + "-" + strconv.Itoa(lo)
}
