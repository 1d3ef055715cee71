package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwbc/credit-decision-service/internal/domain/service"
)

func zeroVector(coeffs service.CoefficientTable) service.FeatureVector {
	features := make(service.FeatureVector, len(coeffs))
	for k := range coeffs {
		features[k] = 0
	}
	return features
}

func TestScoringEngine_Score(t *testing.T) {
	engine := service.NewScoringEngine(prodCoefficients())

	t.Run("intercept-only vector scores the intercept coefficient", func(t *testing.T) {
		features := zeroVector(prodCoefficients())
		features[service.FeatIntercept] = 1

		result, err := engine.Score(features)
		require.NoError(t, err)

		assert.Equal(t, 0.003536496, result.Logit)
		assert.InDelta(t, 1-1/(1+math.Exp(-0.003536496)), result.DefaultProbability, 1e-15)
		assert.Equal(t, 499.12, result.Score)
	})

	t.Run("worked example", func(t *testing.T) {
		features := zeroVector(prodCoefficients())
		features[service.FeatIntercept] = 1
		features[service.FeatEntityCount3M] = 2
		features[service.FeatMeanDebt3M] = 150
		features[service.FeatMonthlyCommitment] = 45000
		features[service.FeatBureauScore] = 520
		features[service.FeatAge] = 30
		features[service.FeatWorstDelinquency] = 1
		features[service.FeatDebtDelta] = 0.5
		features[service.FeatMonetaryEstimate] = 350000
		features[service.FeatMaleFlag] = 1
		features["region_CENTRO"] = 1

		result, err := engine.Score(features)
		require.NoError(t, err)

		assert.InDelta(t, -0.52315497715, result.Logit, 1e-9)
		assert.Equal(t, 627.89, result.Score)
	})

	t.Run("identical input is bit-identical across runs", func(t *testing.T) {
		features := zeroVector(prodCoefficients())
		features[service.FeatIntercept] = 1
		features[service.FeatBureauScore] = 412
		features[service.FeatAge] = 47
		features["region_NOA"] = 1

		first, err := engine.Score(features)
		require.NoError(t, err)

		for i := 0; i < 100; i++ {
			again, err := engine.Score(features)
			require.NoError(t, err)
			assert.Equal(t, first.Logit, again.Logit)
			assert.Equal(t, first.DefaultProbability, again.DefaultProbability)
			assert.Equal(t, first.Score, again.Score)
		}
	})

	t.Run("fails on a missing feature key", func(t *testing.T) {
		features := zeroVector(prodCoefficients())
		delete(features, service.FeatAge)

		_, err := engine.Score(features)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "18")
	})

	t.Run("fails on an extra feature key", func(t *testing.T) {
		features := zeroVector(prodCoefficients())
		features["unknown_feature"] = 1
		delete(features, service.FeatAge)

		_, err := engine.Score(features)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing key")
	})

	t.Run("does not silently default mismatched vectors", func(t *testing.T) {
		_, err := engine.Score(service.FeatureVector{service.FeatIntercept: 1})
		require.Error(t, err)
	})
}

func TestRoundProbability(t *testing.T) {
	assert.Equal(t, 0.499116, service.RoundProbability(0.49911587692146264))
	assert.Equal(t, 0.627885, service.RoundProbability(0.6278852090551201))
	// Half-away-from-zero at the 6th decimal.
	assert.Equal(t, 0.123457, service.RoundProbability(0.1234565))
}
