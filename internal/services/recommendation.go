package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Conceptual-Machines/harmony-api/internal/harmony"
	"github.com/Conceptual-Machines/harmony-api/internal/logger"
	"github.com/Conceptual-Machines/harmony-api/internal/models"
)

// ErrInvalidRequestShape is returned when a request carries none of the
// fields the pipeline needs.
var ErrInvalidRequestShape = errors.New("invalid request shape")

const (
	// Applied when the current chord was guessed from bare pitch classes
	degradedConfidenceFactor = 0.5
	maxKeyCandidates         = 3

	sourceCurrentChord = "current_chord"
	sourcePitchClasses = "pitch_classes"
	sourceProgression  = "progression"
)

// RecommendationService runs the stateless recommendation pipeline:
// parse, estimate the key, pick and label the current chord, generate.
type RecommendationService struct {
	generator *harmony.Generator
}

// NewRecommendationService creates a service over the embedded transition table
func NewRecommendationService() *RecommendationService {
	return &RecommendationService{generator: harmony.NewGenerator(nil)}
}

// NewRecommendationServiceWithTable creates a service over a custom table
func NewRecommendationServiceWithTable(table *harmony.TransitionTable) *RecommendationService {
	return &RecommendationService{generator: harmony.NewGenerator(table)}
}

// Transitions returns the transition table recommendations are drawn from
func (s *RecommendationService) Transitions() *harmony.TransitionTable {
	return s.generator.Transitions()
}

// Recommend estimates the key of the request and returns ranked next chords.
// Unparsable symbols are skipped with a warning; only a request with none of
// progression, current_chord or current_pitch_classes is rejected.
func (s *RecommendationService) Recommend(ctx context.Context, req *models.RecommendationRequest) (*models.RecommendationResponse, error) {
	if req == nil || !(req.HasField("progression") || req.HasField("current_chord") || req.HasField("current_pitch_classes")) {
		return nil, fmt.Errorf("%w: expected progression, current_chord or current_pitch_classes", ErrInvalidRequestShape)
	}

	progression := parseProgression(ctx, "progression", req.Progression)

	var current *harmony.Chord
	source := ""
	if req.CurrentChord != nil && *req.CurrentChord != "" {
		if c, ok := parseSymbol(ctx, "current_chord", 0, *req.CurrentChord); ok {
			current = &c
			source = sourceCurrentChord
		}
	}
	if current == nil && len(req.CurrentPitchClasses) > 0 {
		c, err := harmony.GuessChord(req.CurrentPitchClasses)
		if err != nil {
			logger.Warn("Skipping unparsable pitch classes", logger.Fields{
				"request_id":    logger.RequestIDFromContext(ctx),
				"pitch_classes": req.CurrentPitchClasses,
				"error":         err.Error(),
			})
		} else {
			current = &c
			source = sourcePitchClasses
		}
	}

	ranked := harmony.RankKeys(progression, current)
	estimate := harmony.EstimateKey(progression, current)
	if source == sourcePitchClasses {
		estimate.Confidence *= degradedConfidenceFactor
	}

	// Without an explicit chord, recommend from where the progression stopped
	base := current
	if base == nil && len(progression) > 0 {
		last := progression[len(progression)-1]
		base = &last
		source = sourceProgression
	}

	maxRecs := 0
	if req.MaxRecs != nil {
		maxRecs = *req.MaxRecs
	}
	candidates := s.generator.Recommend(base, estimate.Key, maxRecs)

	resp := &models.RecommendationResponse{
		KeyGuess:           estimate.Key.DisplayName(),
		Mode:               estimate.Key.Mode().String(),
		Confidence:         estimate.Confidence,
		CurrentChordSource: source,
		KeyCandidates:      keyCandidates(ranked),
		Recommendations:    make([]models.Recommendation, 0, len(candidates)),
	}
	if base != nil {
		resp.CurrentChord = harmony.Format(*base)
		resp.CurrentRoman = harmony.Label(*base, estimate.Key).Roman
	}
	for _, c := range candidates {
		resp.Recommendations = append(resp.Recommendations, models.Recommendation{
			Chord:    harmony.Format(c.Chord),
			Roman:    c.Roman,
			Function: string(c.Function),
			Reason:   c.Reason,
			Score:    c.Score,
		})
	}

	return resp, nil
}

// Analyze estimates the key of a progression and labels each chord in it
func (s *RecommendationService) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	if req == nil || req.Progression == nil {
		return nil, fmt.Errorf("%w: expected progression", ErrInvalidRequestShape)
	}

	resp := &models.AnalyzeResponse{Chords: make([]models.AnalyzedChord, 0, len(req.Progression))}

	progression := make([]harmony.Chord, 0, len(req.Progression))
	symbols := make([]string, 0, len(req.Progression))
	for i, symbol := range req.Progression {
		if c, ok := parseSymbol(ctx, "progression", i, symbol); ok {
			progression = append(progression, c)
			symbols = append(symbols, symbol)
		}
	}

	estimate := harmony.EstimateKey(progression, nil)
	resp.KeyGuess = estimate.Key.DisplayName()
	resp.Mode = estimate.Key.Mode().String()
	resp.Confidence = estimate.Confidence
	resp.KeyCandidates = keyCandidates(harmony.RankKeys(progression, nil))

	for i, c := range progression {
		label := harmony.Label(c, estimate.Key)
		resp.Chords = append(resp.Chords, models.AnalyzedChord{
			Symbol:   symbols[i],
			Chord:    harmony.Format(c),
			Roman:    label.Roman,
			Function: string(label.Function),
		})
	}

	return resp, nil
}

func parseProgression(ctx context.Context, field string, symbols []string) []harmony.Chord {
	chords := make([]harmony.Chord, 0, len(symbols))
	for i, symbol := range symbols {
		if c, ok := parseSymbol(ctx, field, i, symbol); ok {
			chords = append(chords, c)
		}
	}
	return chords
}

func parseSymbol(ctx context.Context, field string, index int, symbol string) (harmony.Chord, bool) {
	c, err := harmony.Parse(symbol)
	if err != nil {
		logger.Warn("Skipping unparsable chord symbol", logger.Fields{
			"request_id": logger.RequestIDFromContext(ctx),
			"field":      field,
			"index":      index,
			"symbol":     symbol,
		})
		return harmony.Chord{}, false
	}
	return c, true
}

func keyCandidates(ranked []harmony.KeyScore) []models.KeyCandidate {
	n := len(ranked)
	if n > maxKeyCandidates {
		n = maxKeyCandidates
	}
	candidates := make([]models.KeyCandidate, 0, n)
	for _, ks := range ranked[:n] {
		candidates = append(candidates, models.KeyCandidate{
			Key:   ks.Key.DisplayName(),
			Mode:  ks.Key.Mode().String(),
			Score: ks.Score,
		})
	}
	return candidates
}
