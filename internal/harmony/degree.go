package harmony

import "strings"

// Function is the harmonic role of a chord within a key
type Function string

const (
	FunctionTonic       Function = "tonic"
	FunctionSubdominant Function = "subdominant"
	FunctionDominant    Function = "dominant"
	FunctionPredominant Function = "predominant"
	FunctionOther       Function = "other"
)

const nonDiatonicSuffix = " (non-diatonic)"

var romanNumerals = [scaleLength]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// Function of each 0-based scale degree; identical for major and minor
var degreeFunctions = [scaleLength]Function{
	FunctionTonic,       // 1
	FunctionPredominant, // 2
	FunctionOther,       // 3
	FunctionSubdominant, // 4
	FunctionDominant,    // 5
	FunctionPredominant, // 6
	FunctionOther,       // 7
}

// DegreeLabel locates a chord within a key
type DegreeLabel struct {
	Degree   int // 0-based scale degree
	Roman    string
	Function Function
	Diatonic bool // false when the root fell between scale steps
}

// Label computes the roman numeral and harmonic function of a chord in a
// key. Roots outside the scale are labeled on the nearest degree and marked
// non-diatonic; Label never fails.
func Label(c Chord, k Key) DegreeLabel {
	degree, diatonic := ScaleDegree(c, k)
	roman := RomanNumeral(degree, c.Quality())
	if !diatonic {
		roman += nonDiatonicSuffix
	}
	return DegreeLabel{
		Degree:   degree,
		Roman:    roman,
		Function: FunctionOf(degree),
		Diatonic: diatonic,
	}
}

// ScaleDegree returns the 0-based scale degree of the chord root. A root
// between two scale steps resolves to the upper one (the flat-degree reading,
// as in bVII), except above the last step where it resolves down.
func ScaleDegree(c Chord, k Key) (int, bool) {
	interval := mod12(c.Root() - k.Root())
	steps := scaleSteps[k.Mode()]

	for d, step := range steps {
		if step == interval {
			return d, true
		}
	}
	for d, step := range steps {
		if step > interval {
			return d, false
		}
	}
	return scaleLength - 1, false
}

// RomanNumeral renders a degree in the case and marks implied by the quality
func RomanNumeral(degree int, q Quality) string {
	numeral := romanNumerals[((degree%scaleLength)+scaleLength)%scaleLength]

	switch q {
	case QualityMinor:
		return strings.ToLower(numeral)
	case QualityDiminished:
		return strings.ToLower(numeral) + "°"
	case QualityAugmented:
		return numeral + "+"
	case QualityDominant7:
		return numeral + "7"
	case QualityMajor7:
		return numeral + "maj7"
	case QualityMinor7:
		return strings.ToLower(numeral) + "7"
	default:
		return numeral
	}
}

// FunctionOf returns the function assigned to a 0-based scale degree
func FunctionOf(degree int) Function {
	return degreeFunctions[((degree%scaleLength)+scaleLength)%scaleLength]
}
