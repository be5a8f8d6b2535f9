package harmony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, symbols ...string) []Chord {
	t.Helper()
	chords := make([]Chord, 0, len(symbols))
	for _, s := range symbols {
		c, err := Parse(s)
		require.NoError(t, err)
		chords = append(chords, c)
	}
	return chords
}

func chordPtr(symbol string) *Chord {
	c := MustParse(symbol)
	return &c
}

func TestEstimateKey_Empty(t *testing.T) {
	est := EstimateKey(nil, nil)
	assert.Equal(t, DefaultKey, est.Key)
	assert.Equal(t, 0.0, est.Confidence)

	assert.Nil(t, RankKeys([]Chord{}, nil))
}

func TestEstimateKey(t *testing.T) {
	tests := []struct {
		name               string
		progression        []string
		current            string
		expectedKey        Key
		expectedConfidence float64
	}{
		{
			name:               "pop progression with current chord",
			progression:        []string{"C", "G", "Am", "F"},
			current:            "Am",
			expectedKey:        NewKey(0, ModeMajor),
			expectedConfidence: 1.0,
		},
		{
			name:               "pop progression alone",
			progression:        []string{"C", "G", "Am", "F"},
			expectedKey:        NewKey(0, ModeMajor),
			expectedConfidence: 1.0,
		},
		{
			name:               "major preferred over relative minor",
			progression:        []string{"Am", "Dm", "Em"},
			expectedKey:        NewKey(0, ModeMajor),
			expectedConfidence: 1.0,
		},
		{
			name:               "earliest tonic breaks ties between key pairs",
			progression:        []string{"G", "D"},
			expectedKey:        NewKey(7, ModeMajor),
			expectedConfidence: 1.0,
		},
		{
			name:               "earliest tonic breaks ties reversed",
			progression:        []string{"D", "G"},
			expectedKey:        NewKey(2, ModeMajor),
			expectedConfidence: 1.0,
		},
		{
			name:               "partial match",
			progression:        []string{"C", "G", "E"},
			expectedKey:        NewKey(0, ModeMajor),
			expectedConfidence: 2.0 / 3.0,
		},
		{
			name:               "current chord counts double",
			progression:        []string{"D", "A"},
			current:            "C",
			expectedKey:        NewKey(7, ModeMajor),
			expectedConfidence: 0.75,
		},
		{
			name:               "own tonic position beats the relative minor's",
			progression:        []string{"Am", "G", "C"},
			expectedKey:        NewKey(7, ModeMajor),
			expectedConfidence: 1.0,
		},
		{
			name:               "current chord does not count as a tonic position",
			progression:        []string{"Em"},
			current:            "D",
			expectedKey:        NewKey(2, ModeMajor),
			expectedConfidence: 1.0,
		},
		{
			name:               "current chord alone falls back to the lowest root",
			current:            "Em",
			expectedKey:        NewKey(0, ModeMajor),
			expectedConfidence: 1.0,
		},
		{
			name:               "nothing diatonic anywhere",
			progression:        []string{"Caug", "Eaug"},
			expectedKey:        DefaultKey,
			expectedConfidence: 0.0,
		},
		{
			name:               "sevenths reduce to triads",
			progression:        []string{"Dm7", "G7", "Cmaj7"},
			expectedKey:        NewKey(0, ModeMajor),
			expectedConfidence: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var current *Chord
			if tt.current != "" {
				current = chordPtr(tt.current)
			}

			est := EstimateKey(parseAll(t, tt.progression...), current)
			assert.Equal(t, tt.expectedKey, est.Key, "got %s", est.Key)
			assert.InDelta(t, tt.expectedConfidence, est.Confidence, 1e-9)
		})
	}
}

func TestEstimateKey_ConfidenceBounds(t *testing.T) {
	progressions := [][]string{
		{"C"},
		{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"},
		{"Cm", "C#m", "Ddim", "Eaug", "F7", "Gmaj7", "Am7"},
		{"Bdim", "Bdim", "Bdim"},
		{"Caug"},
	}

	for _, symbols := range progressions {
		for _, current := range []*Chord{nil, chordPtr("F#"), chordPtr("Caug")} {
			est := EstimateKey(parseAll(t, symbols...), current)
			assert.GreaterOrEqual(t, est.Confidence, 0.0)
			assert.LessOrEqual(t, est.Confidence, 1.0)
		}
	}
}

func TestEstimateKey_Deterministic(t *testing.T) {
	progression := parseAll(t, "E", "A", "B", "C#m", "F#m", "G#m")
	first := EstimateKey(progression, chordPtr("B"))
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, EstimateKey(progression, chordPtr("B")))
	}
}

func TestRankKeys(t *testing.T) {
	ranked := RankKeys(parseAll(t, "C", "G", "Am", "F"), nil)
	require.Len(t, ranked, 24)

	assert.Equal(t, NewKey(0, ModeMajor), ranked[0].Key)
	assert.Equal(t, NewKey(9, ModeMinor), ranked[1].Key, "relative minor ranks right behind its major")
	assert.InDelta(t, 4.0, ranked[0].Matched, 1e-9)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Matched, ranked[i].Matched)
	}
}

func TestRankKeys_TiedPairsStayTogether(t *testing.T) {
	ranked := RankKeys(parseAll(t, "Am", "G", "C"), nil)
	require.Len(t, ranked, 24)

	top := make([]Key, 0, 4)
	for _, ks := range ranked[:4] {
		assert.InDelta(t, 3.0, ks.Matched, 1e-9)
		top = append(top, ks.Key)
	}
	assert.Equal(t, []Key{
		NewKey(7, ModeMajor),
		NewKey(4, ModeMinor),
		NewKey(0, ModeMajor),
		NewKey(9, ModeMinor),
	}, top)
	assert.Less(t, ranked[4].Matched, 3.0)
}
