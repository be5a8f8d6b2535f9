package harmony

import (
	"fmt"
	"sort"
)

// Qualities tried when guessing, most specific first
var guessOrder = []Quality{
	QualityDominant7, QualityMajor7, QualityMinor7,
	QualityMajor, QualityMinor, QualityDiminished, QualityAugmented,
}

// GuessChord infers a chord from an unordered set of pitch-class names such
// as ["C", "E", "A"]. Every pitch class is tried as a root; the largest chord
// template fully present wins, then a bare root+third, and finally the first
// listed pitch class as a major triad. Unparsable names are an error.
func GuessChord(names []string) (Chord, error) {
	if len(names) == 0 {
		return Chord{}, fmt.Errorf("%w: no pitch classes", ErrUnparsableChord)
	}

	present := make(map[int]bool, len(names))
	first := -1
	for _, name := range names {
		pc, err := ParsePitchClass(name)
		if err != nil {
			return Chord{}, fmt.Errorf("%w: %v", ErrUnparsableChord, err)
		}
		if first < 0 {
			first = pc
		}
		present[pc] = true
	}

	roots := make([]int, 0, len(present))
	for pc := range present {
		roots = append(roots, pc)
	}
	sort.Ints(roots)

	best := NewChord(first, QualityMajor)
	bestScore := 0

	for _, root := range roots {
		for _, q := range guessOrder {
			score := templateScore(present, root, q)
			if score > bestScore {
				best = NewChord(root, q)
				bestScore = score
			}
		}
	}
	return best, nil
}

// templateScore rates how well a pitch-class set fits a chord built on root:
// twice the tone count for a full match, 1 when only root and third of a
// major or minor triad are present, else 0.
func templateScore(present map[int]bool, root int, q Quality) int {
	intervals := chordIntervals[q]
	matched := 0
	for _, interval := range intervals {
		if present[mod12(root+interval)] {
			matched++
		}
	}
	if matched == len(intervals) {
		return 2 * matched
	}
	if (q == QualityMajor || q == QualityMinor) && present[mod12(root+intervals[1])] {
		return 1
	}
	return 0
}
