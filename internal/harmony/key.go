package harmony

import "fmt"

// Mode is the mode of a key
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

const scaleLength = 7

// Scale steps in semitones above the tonic
var scaleSteps = map[Mode][scaleLength]int{
	ModeMajor: {0, 2, 4, 5, 7, 9, 11},
	ModeMinor: {0, 2, 3, 5, 7, 8, 10}, // natural minor
}

// Triad quality built on each scale step
var diatonicQualities = map[Mode][scaleLength]Quality{
	ModeMajor: {QualityMajor, QualityMinor, QualityMinor, QualityMajor, QualityMajor, QualityMinor, QualityDiminished},
	ModeMinor: {QualityMinor, QualityDiminished, QualityMajor, QualityMinor, QualityMinor, QualityMajor, QualityMajor},
}

// DefaultKey is reported when there is nothing to estimate from
var DefaultKey = NewKey(0, ModeMajor)

// allKeys lists the 24 candidate keys, majors first, each ascending from C
var allKeys = func() []Key {
	keys := make([]Key, 0, 2*pitchClassCount)
	for _, mode := range []Mode{ModeMajor, ModeMinor} {
		for root := 0; root < pitchClassCount; root++ {
			keys = append(keys, NewKey(root, mode))
		}
	}
	return keys
}()

func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

// Key is a tonic pitch class plus mode
type Key struct {
	root int
	mode Mode
}

// NewKey builds a key from any integer root, reduced modulo 12
func NewKey(root int, mode Mode) Key {
	return Key{root: mod12(root), mode: mode}
}

// AllKeys returns the 24 major and minor keys
func AllKeys() []Key {
	keys := make([]Key, len(allKeys))
	copy(keys, allKeys)
	return keys
}

func (k Key) Root() int  { return k.root }
func (k Key) Mode() Mode { return k.mode }

// String returns the long name, e.g. "A minor"
func (k Key) String() string {
	return fmt.Sprintf("%s %s", PitchClassName(k.root), k.mode)
}

// DisplayName returns the tonic spelling with "m" appended for minor keys
func (k Key) DisplayName() string {
	if k.mode == ModeMinor {
		return PitchClassName(k.root) + "m"
	}
	return PitchClassName(k.root)
}

// Relative returns the relative major or minor key
func (k Key) Relative() Key {
	if k.mode == ModeMajor {
		return NewKey(k.root+9, ModeMinor)
	}
	return NewKey(k.root+3, ModeMajor)
}

// Tonic returns the tonic triad of the key
func (k Key) Tonic() Chord {
	return k.DegreeChord(0)
}

// DegreeChord returns the diatonic triad on a 0-based scale degree
func (k Key) DegreeChord(degree int) Chord {
	d := ((degree % scaleLength) + scaleLength) % scaleLength
	return NewChord(k.root+scaleSteps[k.mode][d], diatonicQualities[k.mode][d])
}

// Contains reports whether the chord, reduced to its triad, is one of the
// key's diatonic triads.
func (k Key) Contains(c Chord) bool {
	triad := c.Triad()
	for d := 0; d < scaleLength; d++ {
		if k.DegreeChord(d) == triad {
			return true
		}
	}
	return false
}
