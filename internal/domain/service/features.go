package service

import (
	"fmt"
	"strings"
)

// Feature names of the regression model. Region indicators are prefixed with
// RegionFeaturePrefix and enumerated by the coefficient table itself.
const (
	FeatIntercept         = "intercepto"
	FeatEntityCount3M     = "Qentidades_3m"
	FeatMeanDebt3M        = "deuda_mean_3m"
	FeatMonthlyCommitment = "nosis_compromiso_mensual"
	FeatBureauScore       = "nosis_score"
	FeatAge               = "age"
	FeatWorstDelinquency  = "sit_max_1m"
	FeatBankGroup         = "grupo_banco"
	FeatDebtDelta         = "dif_deuda_1_3m"
	FeatMonetaryEstimate  = "pi_monetario"
	FeatMaleFlag          = "flag_hombre"

	RegionFeaturePrefix = "region_"
	RegionUnspecified   = "region_SIN INFORMAR"
)

// FeatureVector maps feature names to their numeric values. Before scoring
// it must carry exactly the keys of the coefficient table.
type FeatureVector map[string]float64

// CoefficientTable maps feature names to fixed regression weights. It is
// supplied externally and never recomputed by the engine.
type CoefficientTable map[string]float64

// RegionKeys returns every region indicator key present in the table.
func (c CoefficientTable) RegionKeys() []string {
	keys := make([]string, 0, 8)
	for k := range c {
		if strings.HasPrefix(k, RegionFeaturePrefix) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Validate checks the structural invariants of the table: the intercept key
// must exist and at least one region indicator must be present.
func (c CoefficientTable) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("coefficient table must not be empty")
	}
	if _, ok := c[FeatIntercept]; !ok {
		return fmt.Errorf("coefficient table: missing %q key", FeatIntercept)
	}
	if _, ok := c[RegionUnspecified]; !ok {
		return fmt.Errorf("coefficient table: missing %q key", RegionUnspecified)
	}
	return nil
}

// ProvinceRegionMap maps upper-cased province names to region feature keys.
type ProvinceRegionMap map[string]string

// Region resolves a raw province name to a region indicator key. Unknown,
// empty or unreported provinces resolve to the unspecified region.
func (m ProvinceRegionMap) Region(province string) string {
	key, ok := m[strings.ToUpper(province)]
	if !ok {
		return RegionUnspecified
	}
	return key
}

// Validate checks that every mapped region key has a coefficient.
func (m ProvinceRegionMap) Validate(coeffs CoefficientTable) error {
	if len(m) == 0 {
		return fmt.Errorf("province map must not be empty")
	}
	for province, region := range m {
		if _, ok := coeffs[region]; !ok {
			return fmt.Errorf("province map: %q maps to %q which has no coefficient", province, region)
		}
	}
	return nil
}
