package models

import "encoding/json"

// RecommendationRequest is the body of POST /recommendations
type RecommendationRequest struct {
	Progression         []string `json:"progression"`
	CurrentChord        *string  `json:"current_chord"`
	CurrentPitchClasses []string `json:"current_pitch_classes,omitempty"` // fallback when no symbol was resolved
	MaxRecs             *int     `json:"max_recs,omitempty"`

	fields map[string]bool
}

// UnmarshalJSON decodes the request and remembers which top-level keys were
// present, so an explicit null can be told apart from a missing field.
func (r *RecommendationRequest) UnmarshalJSON(data []byte) error {
	type plain RecommendationRequest
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = RecommendationRequest(decoded)
	r.fields = make(map[string]bool, len(raw))
	for k := range raw {
		r.fields[k] = true
	}
	return nil
}

// HasField reports whether the decoded body carried the given key. Requests
// built in code report every non-empty field as present.
func (r *RecommendationRequest) HasField(name string) bool {
	if r.fields != nil {
		return r.fields[name]
	}
	switch name {
	case "progression":
		return r.Progression != nil
	case "current_chord":
		return r.CurrentChord != nil
	case "current_pitch_classes":
		return r.CurrentPitchClasses != nil
	case "max_recs":
		return r.MaxRecs != nil
	}
	return false
}

// Recommendation is a single ranked next-chord suggestion
type Recommendation struct {
	Chord    string  `json:"chord"`
	Roman    string  `json:"roman"`
	Function string  `json:"function"`
	Reason   string  `json:"reason"`
	Score    float64 `json:"score"`
}

// KeyCandidate is one of the best-scoring keys for the input
type KeyCandidate struct {
	Key   string  `json:"key"`
	Mode  string  `json:"mode"`
	Score float64 `json:"score"`
}

// RecommendationResponse is returned by POST /recommendations
type RecommendationResponse struct {
	KeyGuess           string           `json:"key_guess"`
	Mode               string           `json:"mode"`
	Confidence         float64          `json:"confidence"`
	CurrentChord       string           `json:"current_chord,omitempty"`
	CurrentRoman       string           `json:"current_roman,omitempty"`
	CurrentChordSource string           `json:"current_chord_source,omitempty"` // current_chord, pitch_classes or progression
	KeyCandidates      []KeyCandidate   `json:"key_candidates"`
	Recommendations    []Recommendation `json:"recommendations"`
}

// AnalyzeRequest is the body of POST /progressions/analyze
type AnalyzeRequest struct {
	Progression []string `json:"progression"`
}

// AnalyzedChord labels one chord of a progression within the estimated key
type AnalyzedChord struct {
	Symbol   string `json:"symbol"` // as sent by the client
	Chord    string `json:"chord"`  // canonical spelling
	Roman    string `json:"roman"`
	Function string `json:"function"`
}

// AnalyzeResponse is returned by POST /progressions/analyze
type AnalyzeResponse struct {
	KeyGuess      string          `json:"key_guess"`
	Mode          string          `json:"mode"`
	Confidence    float64         `json:"confidence"`
	KeyCandidates []KeyCandidate  `json:"key_candidates"`
	Chords        []AnalyzedChord `json:"chords"`
}
