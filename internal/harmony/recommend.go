package harmony

import "sort"

const (
	// DefaultMaxRecommendations applies when the caller asks for none
	DefaultMaxRecommendations = 4
	// MaxRecommendations caps any request
	MaxRecommendations = 12

	selfTransitionPenalty = 0.05
)

// Degrees of the fallback suggestions (I, V, vi, IV) with descending scores
var defaultDegrees = []struct {
	degree int
	score  float64
}{
	{0, 1.0},
	{4, 0.9},
	{5, 0.8},
	{3, 0.7},
}

// Candidate is one ranked next-chord suggestion
type Candidate struct {
	Chord    Chord
	Degree   int
	Roman    string
	Function Function
	Reason   string
	Score    float64
}

// Generator turns a current chord and key into ranked suggestions.
// It holds only read-only data and is safe for concurrent use.
type Generator struct {
	table *TransitionTable
}

// NewGenerator creates a generator over a transition table; nil selects the
// embedded default table.
func NewGenerator(table *TransitionTable) *Generator {
	if table == nil {
		table = DefaultTransitions()
	}
	return &Generator{table: table}
}

// Transitions returns the table the generator reads from
func (g *Generator) Transitions() *TransitionTable {
	return g.table
}

// ClampMaxRecommendations applies the default for n <= 0 and the hard cap
func ClampMaxRecommendations(n int) int {
	if n <= 0 {
		return DefaultMaxRecommendations
	}
	if n > MaxRecommendations {
		return MaxRecommendations
	}
	return n
}

// Recommend returns at most n suggestions, best first. A nil current chord
// yields the popular I, V, vi, IV set of the key, so the result is never
// empty.
func (g *Generator) Recommend(current *Chord, key Key, n int) []Candidate {
	n = ClampMaxRecommendations(n)

	var candidates []Candidate
	if current == nil {
		candidates = defaultCandidates(key)
	} else {
		candidates = g.transitionCandidates(*current, key)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Degree < candidates[j].Degree
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

func defaultCandidates(key Key) []Candidate {
	candidates := make([]Candidate, 0, len(defaultDegrees))
	for _, d := range defaultDegrees {
		chord := key.DegreeChord(d.degree)
		label := Label(chord, key)
		candidates = append(candidates, Candidate{
			Chord:    chord,
			Degree:   d.degree,
			Roman:    label.Roman,
			Function: label.Function,
			Reason:   "Popular " + string(label.Function) + " choice",
			Score:    d.score,
		})
	}
	return candidates
}

func (g *Generator) transitionCandidates(current Chord, key Key) []Candidate {
	source := Label(current, key)
	row := g.table.Row(key.Mode(), source.Degree)

	candidates := make([]Candidate, 0, len(row))
	for _, tr := range row {
		chord := key.DegreeChord(tr.Target)
		label := Label(chord, key)

		score := tr.Weight
		if chord == current && len(row) > 1 {
			score -= selfTransitionPenalty
		}

		candidates = append(candidates, Candidate{
			Chord:    chord,
			Degree:   tr.Target,
			Roman:    label.Roman,
			Function: label.Function,
			Reason:   transitionReason(source.Degree, tr.Target, key.Mode()),
			Score:    score,
		})
	}
	return candidates
}

// transitionReason names the move from one 0-based degree to another
func transitionReason(from, to int, mode Mode) string {
	switch {
	case from == to:
		return "Harmonic prolongation"
	case to == 0 && (from == 4 || (from == 6 && mode == ModeMajor)):
		return "Dominant resolution"
	case to == 0 && from == 3:
		return "Plagal resolution"
	case from == 4 && to == 5:
		return "Deceptive resolution"
	case isRelativePair(from, to, mode):
		return "Relative relationship"
	}

	switch FunctionOf(to) {
	case FunctionDominant:
		return "Dominant relationship"
	case FunctionSubdominant:
		return "Subdominant motion"
	case FunctionPredominant:
		return "Predominant preparation"
	case FunctionTonic:
		return "Return to tonic"
	}

	if to == 6 {
		if mode == ModeMajor {
			return "Leading-tone tension"
		}
		return "Subtonic motion"
	}
	return "Mediant color"
}

// isRelativePair reports whether two degrees are the tonics of the key and
// its relative (I and vi in major, i and III in minor).
func isRelativePair(a, b int, mode Mode) bool {
	rel := 5
	if mode == ModeMinor {
		rel = 2
	}
	return (a == 0 && b == rel) || (a == rel && b == 0)
}
