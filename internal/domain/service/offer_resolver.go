package service

import (
	"github.com/nwbc/credit-decision-service/internal/domain/model"
	"github.com/nwbc/credit-decision-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// OfferResolver: maps a score to a risk tier and loan terms
// ---------------------------------------------------------------------------

// OfferResolver holds the band and offer reference tables.
type OfferResolver struct {
	bands  valueobject.RiskTable
	offers valueobject.OfferTable
}

// NewOfferResolver wires the reference tables.
func NewOfferResolver(bands valueobject.RiskTable, offers valueobject.OfferTable) *OfferResolver {
	return &OfferResolver{bands: bands, offers: offers}
}

// Resolve classifies the score and, for lendable tiers, computes the offer
// including the installment cap against the applicant's income estimate.
// Tier Out yields all-zero terms.
func (r *OfferResolver) Resolve(score, incomeEstimate float64) (valueobject.RiskTier, model.Offer) {
	tier := r.bands.Classify(score)

	terms, ok := r.offers[tier]
	if !ok {
		return tier, model.Offer{}
	}

	return tier, model.Offer{
		MaxTermMonths:  terms.MaxTermMonths,
		MaxAmount:      terms.MaxAmount,
		IncomeRatioCap: terms.IncomeRatioCap,
		MaxInstallment: terms.MaxInstallment(incomeEstimate),
	}
}
