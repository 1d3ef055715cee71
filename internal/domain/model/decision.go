package model

import (
	"github.com/nwbc/credit-decision-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Decision: tagged outcome of one evaluation
// ---------------------------------------------------------------------------

// RejectionCode identifies which class of check rejected the applicant.
type RejectionCode string

const (
	// RejectionInternal covers in-house policy checks (age window).
	RejectionInternal RejectionCode = "interno"
	// RejectionDebtBureau covers central-bank debt registry checks.
	RejectionDebtBureau RejectionCode = "bcra"
	// RejectionCreditBureau covers credit bureau variable checks.
	RejectionCreditBureau RejectionCode = "nosis"
)

// Rejection is a business rejection raised by an eligibility gate. It is a
// normal outcome, not an error.
type Rejection struct {
	Code        RejectionCode
	Explanation string
}

// Offer carries the resolved loan terms of an approved evaluation. A tier
// without terms (Out) yields the zero value.
type Offer struct {
	MaxTermMonths  int
	MaxAmount      float64
	IncomeRatioCap float64
	MaxInstallment float64
}

// Decision is the immutable result of one evaluation: either a rejection or
// an approval with scoring output. Exactly one branch is populated.
type Decision struct {
	rejection *Rejection

	score              float64
	defaultProbability float64
	riskTier           valueobject.RiskTier
	region             string
	age                int
	offer              Offer
}

// NewRejectedDecision builds the rejected branch.
func NewRejectedDecision(r Rejection) Decision {
	return Decision{rejection: &r}
}

// NewApprovedDecision builds the approved branch.
func NewApprovedDecision(
	score, defaultProbability float64,
	tier valueobject.RiskTier,
	region string,
	age int,
	offer Offer,
) Decision {
	return Decision{
		score:              score,
		defaultProbability: defaultProbability,
		riskTier:           tier,
		region:             region,
		age:                age,
		offer:              offer,
	}
}

// Rejected reports whether the applicant was turned down by a gate.
func (d Decision) Rejected() bool { return d.rejection != nil }

// Rejection returns the rejection details; callers must check Rejected first.
func (d Decision) Rejection() Rejection {
	if d.rejection == nil {
		return Rejection{}
	}
	return *d.rejection
}

// Score returns the scaled default-probability score.
func (d Decision) Score() float64 { return d.score }

// DefaultProbability returns the modeled probability of default.
func (d Decision) DefaultProbability() float64 { return d.defaultProbability }

// RiskTier returns the tier the score mapped to.
func (d Decision) RiskTier() valueobject.RiskTier { return d.riskTier }

// Region returns the region feature key the applicant resolved to.
func (d Decision) Region() string { return d.region }

// Age returns the applicant's age at evaluation time.
func (d Decision) Age() int { return d.age }

// Offer returns the resolved loan terms.
func (d Decision) Offer() Offer { return d.offer }
