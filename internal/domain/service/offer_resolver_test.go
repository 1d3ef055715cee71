package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nwbc/credit-decision-service/internal/domain/model"
	"github.com/nwbc/credit-decision-service/internal/domain/service"
	"github.com/nwbc/credit-decision-service/internal/domain/valueobject"
)

func newResolver() *service.OfferResolver {
	bands := valueobject.RiskTable{
		{Min: 1, Max: 304, Tier: valueobject.TierOut},
		{Min: 305, Max: 598, Tier: valueobject.TierHigh},
		{Min: 599, Max: 644, Tier: valueobject.TierMedium},
		{Min: 645, Max: 999, Tier: valueobject.TierLow},
	}
	offers := valueobject.OfferTable{
		valueobject.TierHigh:   {MaxTermMonths: 6, MaxAmount: 500000, IncomeRatioCap: 0.25},
		valueobject.TierMedium: {MaxTermMonths: 9, MaxAmount: 750000, IncomeRatioCap: 0.30},
		valueobject.TierLow:    {MaxTermMonths: 12, MaxAmount: 1500000, IncomeRatioCap: 0.35},
	}
	return service.NewOfferResolver(bands, offers)
}

func TestOfferResolver_Resolve(t *testing.T) {
	resolver := newResolver()

	t.Run("tier Out yields all-zero terms", func(t *testing.T) {
		tier, offer := resolver.Resolve(304, 350000)
		assert.Equal(t, valueobject.TierOut, tier)
		assert.Equal(t, model.Offer{}, offer)
	})

	t.Run("score 305 enters the high-risk tier", func(t *testing.T) {
		tier, offer := resolver.Resolve(305, 350000)
		assert.Equal(t, valueobject.TierHigh, tier)
		assert.Equal(t, 6, offer.MaxTermMonths)
		assert.Equal(t, 500000.0, offer.MaxAmount)
		assert.Equal(t, 0.25, offer.IncomeRatioCap)
		assert.Equal(t, 87500.0, offer.MaxInstallment)
	})

	t.Run("medium tier applies its own ratio cap", func(t *testing.T) {
		tier, offer := resolver.Resolve(627.89, 350000)
		assert.Equal(t, valueobject.TierMedium, tier)
		assert.Equal(t, 9, offer.MaxTermMonths)
		assert.Equal(t, 105000.0, offer.MaxInstallment)
	})

	t.Run("low tier at the upper bound", func(t *testing.T) {
		tier, offer := resolver.Resolve(999, 200000)
		assert.Equal(t, valueobject.TierLow, tier)
		assert.Equal(t, 12, offer.MaxTermMonths)
		assert.Equal(t, 70000.0, offer.MaxInstallment)
	})

	t.Run("scores outside every band land in Out", func(t *testing.T) {
		tier, offer := resolver.Resolve(0.5, 350000)
		assert.Equal(t, valueobject.TierOut, tier)
		assert.Equal(t, model.Offer{}, offer)

		tier, offer = resolver.Resolve(1200, 350000)
		assert.Equal(t, valueobject.TierOut, tier)
		assert.Equal(t, model.Offer{}, offer)
	})
}
