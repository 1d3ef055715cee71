package service

import (
	"github.com/nwbc/credit-decision-service/internal/domain/model"
	"github.com/nwbc/credit-decision-service/internal/domain/port"
)

// ---------------------------------------------------------------------------
// FeatureExtractor: normalizes provider payloads into a FeatureVector
// ---------------------------------------------------------------------------

// EstimatorScale converts the person registry's income estimator from its
// reporting unit (thousands of pesos) to pesos.
const EstimatorScale = 1000

// FeatureExtractor assembles the flat feature mapping the scoring engine
// consumes. It owns no state beyond the injected reference tables.
type FeatureExtractor struct {
	coeffs    CoefficientTable
	provinces ProvinceRegionMap
}

// NewFeatureExtractor wires the reference tables.
func NewFeatureExtractor(coeffs CoefficientTable, provinces ProvinceRegionMap) *FeatureExtractor {
	return &FeatureExtractor{coeffs: coeffs, provinces: provinces}
}

// ApplicantFeatures is the per-evaluation data the extractor combines.
type ApplicantFeatures struct {
	Age    int
	Debt   port.DebtReport
	Person port.PersonRecord
	Vars   port.BureauVariables
}

// RegionKey resolves the person's province to its region indicator key.
func (e *FeatureExtractor) RegionKey(person port.PersonRecord) string {
	return e.provinces.Region(person.Province)
}

// ScaledEstimator returns the income estimator converted to pesos.
func ScaledEstimator(person port.PersonRecord) float64 {
	return person.IncomeEstimator * EstimatorScale
}

// Extract builds the feature vector. Exactly one region indicator is set to
// 1; every other region key of the coefficient table is set to 0, so the
// vector's key set always matches the table's.
func (e *FeatureExtractor) Extract(applicant model.Applicant, f ApplicantFeatures) FeatureVector {
	region := e.RegionKey(f.Person)

	maleFlag := 0.0
	if applicant.IsMale() {
		maleFlag = 1
	}

	features := FeatureVector{
		FeatIntercept:         1,
		FeatEntityCount3M:     f.Debt.EntityCount3M,
		FeatMeanDebt3M:        f.Debt.MeanDebt3M,
		FeatMonthlyCommitment: f.Vars.Value(port.VarMonthlyCommitment),
		FeatBureauScore:       f.Vars.Value(port.VarScore),
		FeatAge:               float64(f.Age),
		FeatWorstDelinquency:  f.Debt.WorstDelinquency1M,
		FeatBankGroup:         0, // reserved, not populated by any provider
		FeatDebtDelta:         f.Debt.DebtDelta1To3M,
		FeatMonetaryEstimate:  ScaledEstimator(f.Person),
		FeatMaleFlag:          maleFlag,
	}

	for _, key := range e.coeffs.RegionKeys() {
		features[key] = 0
	}
	features[region] = 1

	return features
}
