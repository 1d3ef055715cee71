package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// OfferTerms: loan conditions associated with a risk tier
// ---------------------------------------------------------------------------

// OfferTerms carries the loan parameters granted to a risk tier.
type OfferTerms struct {
	MaxTermMonths  int     `yaml:"max_term_months"`
	MaxAmount      float64 `yaml:"max_amount"`
	IncomeRatioCap float64 `yaml:"income_ratio_cap"`
}

// MaxInstallment computes the installment cap for the given monthly income
// estimate, rounded half away from zero to 2 decimals.
func (o OfferTerms) MaxInstallment(incomeEstimate float64) float64 {
	installment := decimal.NewFromFloat(o.IncomeRatioCap).
		Mul(decimal.NewFromFloat(incomeEstimate)).
		Round(2)
	return installment.InexactFloat64()
}

// OfferTable maps lendable tiers to their terms. Tier Out carries no entry.
type OfferTable map[RiskTier]OfferTerms

// Validate checks that every lendable tier referenced by the risk table has
// terms and that the terms themselves are sane.
func (t OfferTable) Validate(risk RiskTable) error {
	for _, band := range risk {
		if !band.Tier.Lendable() {
			continue
		}
		terms, ok := t[band.Tier]
		if !ok {
			return fmt.Errorf("offer table: missing terms for tier %q", band.Tier)
		}
		if terms.MaxTermMonths <= 0 {
			return fmt.Errorf("offer table: tier %q: max term months must be positive", band.Tier)
		}
		if terms.MaxAmount <= 0 {
			return fmt.Errorf("offer table: tier %q: max amount must be positive", band.Tier)
		}
		if terms.IncomeRatioCap <= 0 || terms.IncomeRatioCap >= 1 {
			return fmt.Errorf("offer table: tier %q: income ratio cap must be in (0, 1)", band.Tier)
		}
	}
	return nil
}
