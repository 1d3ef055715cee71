package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nwbc/credit-decision-service/internal/domain/service"
	"github.com/nwbc/credit-decision-service/internal/domain/valueobject"
)

// ReferenceTables bundles the fixed model tables the engine is wired with.
// They are loaded once at startup, validated, and never mutated afterwards,
// so concurrent evaluations may read them without synchronization.
type ReferenceTables struct {
	Coefficients service.CoefficientTable  `yaml:"coefficients"`
	Provinces    service.ProvinceRegionMap `yaml:"provinces"`
	RiskBands    valueobject.RiskTable     `yaml:"risk_bands"`
	Offers       valueobject.OfferTable    `yaml:"offers"`
}

// LoadTables returns the built-in tables, or the contents of the YAML file
// at path when it is non-empty. The result is validated either way.
func LoadTables(path string) (ReferenceTables, error) {
	tables := defaultTables()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return ReferenceTables{}, fmt.Errorf("read tables file: %w", err)
		}
		tables = ReferenceTables{}
		if err := yaml.Unmarshal(data, &tables); err != nil {
			return ReferenceTables{}, fmt.Errorf("parse tables file: %w", err)
		}
	}

	if err := tables.Validate(); err != nil {
		return ReferenceTables{}, err
	}
	return tables, nil
}

// Validate cross-checks the tables: coefficients are structurally sound,
// every province maps to a coefficient key, bands are ordered and every
// lendable tier has offer terms.
func (t ReferenceTables) Validate() error {
	if err := t.Coefficients.Validate(); err != nil {
		return err
	}
	if err := t.Provinces.Validate(t.Coefficients); err != nil {
		return err
	}
	if err := t.RiskBands.Validate(); err != nil {
		return err
	}
	return t.Offers.Validate(t.RiskBands)
}

// defaultTables returns the production model as shipped: the fixed
// regression coefficients, the Argentine province-to-region mapping, the
// score bands and the per-tier offer conditions.
func defaultTables() ReferenceTables {
	return ReferenceTables{
		Coefficients: service.CoefficientTable{
			"intercepto":               0.0035364960,
			"Qentidades_3m":            -0.0842042651,
			"deuda_mean_3m":            0.0000318869,
			"nosis_compromiso_mensual": -0.0000001408,
			"nosis_score":              -0.0007818815,
			"age":                      0.0017059463,
			"sit_max_1m":               0.0125032217,
			"grupo_banco":              -0.0150974226,
			"dif_deuda_1_3m":           0.0353815967,
			"pi_monetario":             -0.0000001781,
			"flag_hombre":              0.0207322175,
			"region_CAPITAL FEDERAL":   -0.0108002476,
			"region_CENTRO":            0.0100787755,
			"region_CUYO":              0.0031393120,
			"region_NEA":               0.0020421952,
			"region_NOA":               0.0032558456,
			"region_SIN INFORMAR":      -0.0002924466,
			"region_SUR":               0.0006340789,
		},
		Provinces: service.ProvinceRegionMap{
			"CAP. FEDERAL":        "region_CAPITAL FEDERAL",
			"BUENOS AIRES":        "region_CENTRO",
			"CORDOBA":             "region_CENTRO",
			"ENTRE RIOS":          "region_CENTRO",
			"SANTA FE":            "region_CENTRO",
			"MENDOZA":             "region_CUYO",
			"SAN JUAN":            "region_CUYO",
			"SAN LUIS":            "region_CUYO",
			"LA RIOJA":            "region_CUYO",
			"CHACO":               "region_NEA",
			"CORRIENTES":          "region_NEA",
			"FORMOSA":             "region_NEA",
			"MISIONES":            "region_NEA",
			"CATAMARCA":           "region_NOA",
			"JUJUY":               "region_NOA",
			"SALTA":               "region_NOA",
			"SANTIAGO DEL ESTERO": "region_NOA",
			"TUCUMAN":             "region_NOA",
			"NEUQUEN":             "region_SUR",
			"RIO NEGRO":           "region_SUR",
			"CHUBUT":              "region_SUR",
			"SANTA CRUZ":          "region_SUR",
			"TIERRA DEL FUEGO":    "region_SUR",
			"LA PAMPA":            "region_SUR",
			"SIN INFORMAR":        "region_SIN INFORMAR",
			"0":                   "region_SIN INFORMAR",
		},
		RiskBands: valueobject.RiskTable{
			{Min: 1, Max: 304, Tier: valueobject.TierOut},
			{Min: 305, Max: 598, Tier: valueobject.TierHigh},
			{Min: 599, Max: 644, Tier: valueobject.TierMedium},
			{Min: 645, Max: 999, Tier: valueobject.TierLow},
		},
		Offers: valueobject.OfferTable{
			valueobject.TierHigh:   {MaxTermMonths: 6, MaxAmount: 500000, IncomeRatioCap: 0.25},
			valueobject.TierMedium: {MaxTermMonths: 9, MaxAmount: 750000, IncomeRatioCap: 0.30},
			valueobject.TierLow:    {MaxTermMonths: 12, MaxAmount: 1500000, IncomeRatioCap: 0.35},
		},
	}
}
