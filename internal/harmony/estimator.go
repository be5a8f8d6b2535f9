package harmony

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// currentChordWeight is how much more the detected chord counts than any
// single progression chord.
const currentChordWeight = 2.0

// KeyEstimate is the best key for an input and how well it fits
type KeyEstimate struct {
	Key        Key
	Confidence float64 // matched weight / total weight, in [0,1]
}

// KeyScore is one ranked candidate key
type KeyScore struct {
	Key     Key
	Matched float64 // weighted count of diatonic chords
	Score   float64 // Matched normalized by the total weight
}

// EstimateKey returns the best-scoring key for a progression and an optional
// current chord. Empty input yields DefaultKey with confidence 0.
func EstimateKey(progression []Chord, current *Chord) KeyEstimate {
	ranked := RankKeys(progression, current)
	if len(ranked) == 0 {
		return KeyEstimate{Key: DefaultKey, Confidence: 0}
	}
	return KeyEstimate{Key: ranked[0].Key, Confidence: clampUnit(ranked[0].Score)}
}

// RankKeys scores all 24 keys and returns them best first. Ties on the
// matched weight prefer a major key over its relative minor, then the key
// whose own tonic chord appears earliest in the progression, then the lower
// root. The current chord adds weight but takes no part in the tonic
// position. It returns nil for empty input.
func RankKeys(progression []Chord, current *Chord) []KeyScore {
	sequence := make([]Chord, 0, len(progression)+1)
	sequence = append(sequence, progression...)
	weights := make([]float64, len(progression), len(progression)+1)
	for i := range weights {
		weights[i] = 1
	}
	if current != nil {
		sequence = append(sequence, *current)
		weights = append(weights, currentChordWeight)
	}

	total := floats.Sum(weights)
	if total == 0 {
		return nil
	}

	type ranked struct {
		KeyScore
		tonicAt    int
		anchorRoot int
	}

	matched := make(map[Key]float64, len(allKeys))
	mask := make([]float64, len(sequence))
	for _, k := range allKeys {
		for i, c := range sequence {
			mask[i] = 0
			if k.Contains(c) {
				mask[i] = 1
			}
		}
		matched[k] = floats.Dot(weights, mask)
	}

	candidates := make([]ranked, 0, len(allKeys))
	for _, k := range allKeys {
		// A minor key tied with its relative major sits directly behind it.
		anchor := k
		if k.Mode() == ModeMinor && matched[k.Relative()] == matched[k] {
			anchor = k.Relative()
		}
		candidates = append(candidates, ranked{
			KeyScore:   KeyScore{Key: k, Matched: matched[k], Score: matched[k] / total},
			tonicAt:    firstIndexOf(progression, anchor.Tonic()),
			anchorRoot: anchor.Root(),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Matched != b.Matched {
			return a.Matched > b.Matched
		}
		if a.tonicAt != b.tonicAt {
			return a.tonicAt < b.tonicAt
		}
		if a.anchorRoot != b.anchorRoot {
			return a.anchorRoot < b.anchorRoot
		}
		if a.Key.mode != b.Key.mode {
			return a.Key.mode == ModeMajor
		}
		return a.Key.root < b.Key.root
	})

	scores := make([]KeyScore, len(candidates))
	for i, c := range candidates {
		scores[i] = c.KeyScore
	}
	return scores
}

// firstIndexOf returns the index of the first chord whose triad equals
// target, or len(sequence) when absent.
func firstIndexOf(sequence []Chord, target Chord) int {
	for i, c := range sequence {
		if c.Triad() == target {
			return i
		}
	}
	return len(sequence)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
