package harmony

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnparsableChord is returned when a chord symbol has no recognizable root
var ErrUnparsableChord = errors.New("unparsable chord")

// Quality is the harmonic quality of a chord
type Quality int

const (
	QualityMajor Quality = iota
	QualityMinor
	QualityDiminished
	QualityAugmented
	QualityDominant7
	QualityMajor7
	QualityMinor7
)

const pitchClassCount = 12

// Canonical display spelling, sharps for the ambiguous pitch classes
var pitchClassNames = [pitchClassCount]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// Note letter semitone offsets from C
var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Chord tones as semitones above the root
var chordIntervals = map[Quality][]int{
	QualityMajor:      {0, 4, 7},
	QualityMinor:      {0, 3, 7},
	QualityDiminished: {0, 3, 6},
	QualityAugmented:  {0, 4, 8},
	QualityDominant7:  {0, 4, 7, 10},
	QualityMajor7:     {0, 4, 7, 11},
	QualityMinor7:     {0, 3, 7, 10},
}

// Quality suffixes checked in order; longer prefixes must come first.
var qualitySuffixes = []struct {
	prefix  string
	quality Quality
}{
	{"maj7", QualityMajor7},
	{"M7", QualityMajor7},
	{"min7", QualityMinor7},
	{"m7", QualityMinor7},
	{"maj", QualityMajor},
	{"min", QualityMinor},
	{"dim", QualityDiminished},
	{"°", QualityDiminished},
	{"o", QualityDiminished},
	{"aug", QualityAugmented},
	{"+", QualityAugmented},
	{"7", QualityDominant7},
	{"m", QualityMinor},
}

func (q Quality) String() string {
	switch q {
	case QualityMajor:
		return "major"
	case QualityMinor:
		return "minor"
	case QualityDiminished:
		return "diminished"
	case QualityAugmented:
		return "augmented"
	case QualityDominant7:
		return "dominant7"
	case QualityMajor7:
		return "major7"
	case QualityMinor7:
		return "minor7"
	default:
		return "unknown"
	}
}

// Triad reduces a seventh chord quality to the quality of its underlying triad
func (q Quality) Triad() Quality {
	switch q {
	case QualityDominant7, QualityMajor7:
		return QualityMajor
	case QualityMinor7:
		return QualityMinor
	default:
		return q
	}
}

func (q Quality) suffix() string {
	switch q {
	case QualityMinor:
		return "m"
	case QualityDiminished:
		return "dim"
	case QualityAugmented:
		return "aug"
	case QualityDominant7:
		return "7"
	case QualityMajor7:
		return "maj7"
	case QualityMinor7:
		return "m7"
	default:
		return ""
	}
}

// Chord is an immutable root pitch class plus quality.
// Two chords with the same root and quality compare equal with ==.
type Chord struct {
	root    int
	quality Quality
}

// NewChord builds a chord from any integer root, reduced modulo 12
func NewChord(root int, quality Quality) Chord {
	return Chord{root: mod12(root), quality: quality}
}

// Root returns the root pitch class (C = 0)
func (c Chord) Root() int { return c.root }

// Quality returns the chord quality
func (c Chord) Quality() Quality { return c.quality }

func (c Chord) String() string { return Format(c) }

// Triad returns the chord with seventh qualities reduced to their triad
func (c Chord) Triad() Chord {
	return Chord{root: c.root, quality: c.quality.Triad()}
}

// PitchClasses returns the chord tones as pitch classes, root first
func (c Chord) PitchClasses() []int {
	intervals := chordIntervals[c.quality]
	pcs := make([]int, 0, len(intervals))
	for _, interval := range intervals {
		pcs = append(pcs, mod12(c.root+interval))
	}
	return pcs
}

// Parse converts a chord symbol such as "C", "D-m7", "Bbmaj7" or "F#dim"
// into a Chord. Slash basses are ignored and unrecognized quality suffixes
// default to major. It fails only when the root cannot be read.
func Parse(symbol string) (Chord, error) {
	s := strings.TrimSpace(symbol)
	if idx := strings.Index(s, "/"); idx > 0 {
		s = s[:idx]
	}

	root, rest, err := parseRootNote(s)
	if err != nil {
		return Chord{}, fmt.Errorf("%w %q: %v", ErrUnparsableChord, symbol, err)
	}

	return Chord{root: root, quality: parseChordQuality(rest)}, nil
}

// MustParse is like Parse but panics on error. Intended for tables and tests.
func MustParse(symbol string) Chord {
	c, err := Parse(symbol)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize returns the canonical pitch class of the chord root
func Normalize(c Chord) int {
	return c.root
}

// Format renders the canonical spelling of a chord, e.g. "C#m7"
func Format(c Chord) string {
	return PitchClassName(c.root) + c.quality.suffix()
}

// PitchClassName returns the canonical sharp spelling of a pitch class
func PitchClassName(pc int) string {
	return pitchClassNames[mod12(pc)]
}

// ParsePitchClass parses a bare note name ("A", "C#", "E-", "Bb")
func ParsePitchClass(name string) (int, error) {
	pc, rest, err := parseRootNote(strings.TrimSpace(name))
	if err != nil {
		return 0, err
	}
	if rest != "" {
		return 0, fmt.Errorf("unexpected trailing characters in note name %q", name)
	}
	return pc, nil
}

// parseRootNote reads the root letter and an optional accidental,
// returning the pitch class and the unconsumed suffix.
func parseRootNote(s string) (int, string, error) {
	if len(s) == 0 {
		return 0, "", errors.New("empty chord symbol")
	}

	semitone, ok := letterOffsets[s[0]]
	if !ok {
		return 0, "", fmt.Errorf("invalid root note: %s", s[:1])
	}

	idx := 1
	if idx < len(s) {
		switch s[idx] {
		case '#':
			semitone++
			idx++
		case '-', 'b':
			semitone--
			idx++
		}
	}

	return mod12(semitone), s[idx:], nil
}

func parseChordQuality(suffix string) Quality {
	for _, qs := range qualitySuffixes {
		if strings.HasPrefix(suffix, qs.prefix) {
			return qs.quality
		}
	}
	// Default to major
	return QualityMajor
}

func mod12(n int) int {
	return ((n % pitchClassCount) + pitchClassCount) % pitchClassCount
}
