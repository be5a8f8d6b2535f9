package harmony

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name            string
		symbol          string
		expectedRoot    int
		expectedQuality Quality
	}{
		{name: "C major", symbol: "C", expectedRoot: 0, expectedQuality: QualityMajor},
		{name: "C sharp", symbol: "C#", expectedRoot: 1, expectedQuality: QualityMajor},
		{name: "D flat with dash", symbol: "D-", expectedRoot: 1, expectedQuality: QualityMajor},
		{name: "D flat with b", symbol: "Db", expectedRoot: 1, expectedQuality: QualityMajor},
		{name: "A minor", symbol: "Am", expectedRoot: 9, expectedQuality: QualityMinor},
		{name: "A minor long form", symbol: "Amin", expectedRoot: 9, expectedQuality: QualityMinor},
		{name: "G dominant 7th", symbol: "G7", expectedRoot: 7, expectedQuality: QualityDominant7},
		{name: "C major 7th", symbol: "Cmaj7", expectedRoot: 0, expectedQuality: QualityMajor7},
		{name: "C major 7th capital M", symbol: "CM7", expectedRoot: 0, expectedQuality: QualityMajor7},
		{name: "D minor 7th", symbol: "Dm7", expectedRoot: 2, expectedQuality: QualityMinor7},
		{name: "B flat minor 7th", symbol: "Bbm7", expectedRoot: 10, expectedQuality: QualityMinor7},
		{name: "B diminished", symbol: "Bdim", expectedRoot: 11, expectedQuality: QualityDiminished},
		{name: "B diminished with o", symbol: "Bo", expectedRoot: 11, expectedQuality: QualityDiminished},
		{name: "C augmented", symbol: "Caug", expectedRoot: 0, expectedQuality: QualityAugmented},
		{name: "F sharp minor", symbol: "F#m", expectedRoot: 6, expectedQuality: QualityMinor},
		{name: "E flat", symbol: "E-", expectedRoot: 3, expectedQuality: QualityMajor},
		{name: "C flat wraps to B", symbol: "Cb", expectedRoot: 11, expectedQuality: QualityMajor},
		{name: "B sharp wraps to C", symbol: "B#", expectedRoot: 0, expectedQuality: QualityMajor},
		{name: "slash chord ignores bass", symbol: "C/G", expectedRoot: 0, expectedQuality: QualityMajor},
		{name: "unknown suffix defaults to major", symbol: "Csus4", expectedRoot: 0, expectedQuality: QualityMajor},
		{name: "surrounding whitespace", symbol: "  G ", expectedRoot: 7, expectedQuality: QualityMajor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chord, err := Parse(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedRoot, chord.Root())
			assert.Equal(t, tt.expectedQuality, chord.Quality())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, symbol := range []string{"", "   ", "Xx", "H", "c", "#C", "/G"} {
		t.Run(symbol, func(t *testing.T) {
			_, err := Parse(symbol)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnparsableChord), "expected ErrUnparsableChord, got %v", err)
		})
	}
}

func TestEnharmonicEquivalence(t *testing.T) {
	pairs := [][2]string{
		{"C#", "D-"},
		{"D#", "E-"},
		{"F#", "G-"},
		{"G#", "A-"},
		{"A#", "B-"},
		{"A#m7", "Bbm7"},
	}

	for _, pair := range pairs {
		a := MustParse(pair[0])
		b := MustParse(pair[1])
		assert.Equal(t, a, b, "%s and %s should be the same chord", pair[0], pair[1])
		assert.Equal(t, Normalize(a), Normalize(b))
		assert.Equal(t, Format(a), Format(b))
	}

	assert.Equal(t, "C#", Format(MustParse("C#")))
	assert.Equal(t, "C#", Format(MustParse("D-")))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		chord    Chord
		expected string
	}{
		{NewChord(0, QualityMajor), "C"},
		{NewChord(9, QualityMinor), "Am"},
		{NewChord(11, QualityDiminished), "Bdim"},
		{NewChord(8, QualityAugmented), "G#aug"},
		{NewChord(7, QualityDominant7), "G7"},
		{NewChord(5, QualityMajor7), "Fmaj7"},
		{NewChord(2, QualityMinor7), "Dm7"},
		{NewChord(-2, QualityMajor), "A#"},
		{NewChord(15, QualityMinor), "D#m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.chord))
			assert.Equal(t, tt.expected, tt.chord.String())
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for root := 0; root < 12; root++ {
		for q := QualityMajor; q <= QualityMinor7; q++ {
			chord := NewChord(root, q)
			parsed, err := Parse(Format(chord))
			require.NoError(t, err)
			assert.Equal(t, chord, parsed, "round trip of %s", Format(chord))
		}
	}
}

func TestChord_PitchClasses(t *testing.T) {
	assert.Equal(t, []int{0, 4, 7}, MustParse("C").PitchClasses())
	assert.Equal(t, []int{9, 0, 4, 7}, MustParse("Am7").PitchClasses())
	assert.Equal(t, []int{11, 2, 5}, MustParse("Bdim").PitchClasses())
}

func TestChord_Triad(t *testing.T) {
	assert.Equal(t, MustParse("G"), MustParse("G7").Triad())
	assert.Equal(t, MustParse("C"), MustParse("Cmaj7").Triad())
	assert.Equal(t, MustParse("Dm"), MustParse("Dm7").Triad())
	assert.Equal(t, MustParse("Bdim"), MustParse("Bdim").Triad())
}

func TestParsePitchClass(t *testing.T) {
	pc, err := ParsePitchClass("B-")
	require.NoError(t, err)
	assert.Equal(t, 10, pc)

	pc, err = ParsePitchClass("F#")
	require.NoError(t, err)
	assert.Equal(t, 6, pc)

	_, err = ParsePitchClass("Cm")
	assert.Error(t, err)

	_, err = ParsePitchClass("")
	assert.Error(t, err)
}
