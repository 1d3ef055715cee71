package valueobject

import "fmt"

// RiskTier classifies an applicant's scored default risk.
type RiskTier string

const (
	TierOut    RiskTier = "Out"
	TierHigh   RiskTier = "Alto"
	TierMedium RiskTier = "Medio"
	TierLow    RiskTier = "Bajo"
)

// String returns the wire representation of the tier.
func (t RiskTier) String() string { return string(t) }

// Lendable reports whether the tier is eligible for an offer.
func (t RiskTier) Lendable() bool {
	return t == TierHigh || t == TierMedium || t == TierLow
}

// ---------------------------------------------------------------------------
// RiskBand: one row of the score-to-tier table
// ---------------------------------------------------------------------------

// RiskBand maps an inclusive score range to a risk tier.
type RiskBand struct {
	Min  int      `yaml:"min"`
	Max  int      `yaml:"max"`
	Tier RiskTier `yaml:"tier"`
}

// Contains reports whether score falls inside the band. Bounds are inclusive.
func (b RiskBand) Contains(score float64) bool {
	return float64(b.Min) <= score && score <= float64(b.Max)
}

// RiskTable is an ordered list of bands, checked ascending, first match wins.
type RiskTable []RiskBand

// Classify returns the tier of the first band containing score, or TierOut
// when no band matches.
func (t RiskTable) Classify(score float64) RiskTier {
	for _, band := range t {
		if band.Contains(score) {
			return band.Tier
		}
	}
	return TierOut
}

// Validate checks that bands are ascending and non-overlapping.
func (t RiskTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("risk table must not be empty")
	}
	prevMax := -1 << 31
	for i, band := range t {
		if band.Min > band.Max {
			return fmt.Errorf("risk band %d: min %d exceeds max %d", i, band.Min, band.Max)
		}
		if band.Min <= prevMax {
			return fmt.Errorf("risk band %d: overlaps or is out of order (min %d, previous max %d)", i, band.Min, prevMax)
		}
		if band.Tier == "" {
			return fmt.Errorf("risk band %d: tier is required", i)
		}
		prevMax = band.Max
	}
	return nil
}
