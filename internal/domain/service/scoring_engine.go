package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// ScoringEngine: logistic default-probability model
// ---------------------------------------------------------------------------

// ScoreResult carries the scoring output before offer resolution.
type ScoreResult struct {
	Logit              float64
	DefaultProbability float64
	// Score is the default probability scaled by 1000 and rounded half away
	// from zero to 2 decimals.
	Score float64
}

// ScoringEngine computes the logistic score from a complete feature vector.
type ScoringEngine struct {
	coeffs CoefficientTable
}

// NewScoringEngine wires the fixed coefficient table.
func NewScoringEngine(coeffs CoefficientTable) *ScoringEngine {
	return &ScoringEngine{coeffs: coeffs}
}

// Score evaluates the model. The vector's key set must match the coefficient
// table's exactly; a mismatch is a configuration bug and fails loudly rather
// than defaulting features.
//
// The logit is accumulated over the keys in sorted order so identical inputs
// always produce a bit-identical result, independent of map iteration order.
func (e *ScoringEngine) Score(features FeatureVector) (ScoreResult, error) {
	if err := e.checkKeys(features); err != nil {
		return ScoreResult{}, err
	}

	keys := make([]string, 0, len(e.coeffs))
	for k := range e.coeffs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var logit float64
	for _, k := range keys {
		logit += features[k] * e.coeffs[k]
	}

	goodStanding := 1 / (1 + math.Exp(-logit))
	p := 1 - goodStanding
	score := roundHalfAwayFromZero(p*1000, 2)

	return ScoreResult{Logit: logit, DefaultProbability: p, Score: score}, nil
}

func (e *ScoringEngine) checkKeys(features FeatureVector) error {
	if len(features) != len(e.coeffs) {
		return fmt.Errorf("feature vector has %d keys, coefficient table has %d", len(features), len(e.coeffs))
	}
	for k := range e.coeffs {
		if _, ok := features[k]; !ok {
			return fmt.Errorf("feature vector missing key %q", k)
		}
	}
	return nil
}

// roundHalfAwayFromZero pins the rounding mode of every rounded figure the
// service emits. decimal.Round rounds half away from zero.
func roundHalfAwayFromZero(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// RoundProbability rounds a probability to the 6 decimals exposed on the
// wire.
func RoundProbability(p float64) float64 {
	return roundHalfAwayFromZero(p, 6)
}
