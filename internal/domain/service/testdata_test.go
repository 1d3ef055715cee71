package service_test

import (
	"github.com/nwbc/credit-decision-service/internal/domain/service"
)

// Production reference tables, duplicated here so a table regression in the
// config package cannot silently change what the engine tests assert.

func prodCoefficients() service.CoefficientTable {
	return service.CoefficientTable{
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
	}
}

func prodProvinces() service.ProvinceRegionMap {
	return service.ProvinceRegionMap{
		"CAP. FEDERAL":     "region_CAPITAL FEDERAL",
		"BUENOS AIRES":     "region_CENTRO",
		"CORDOBA":          "region_CENTRO",
		"SANTA FE":         "region_CENTRO",
		"MENDOZA":          "region_CUYO",
		"CHACO":            "region_NEA",
		"SALTA":            "region_NOA",
		"NEUQUEN":          "region_SUR",
		"TIERRA DEL FUEGO": "region_SUR",
		"SIN INFORMAR":     "region_SIN INFORMAR",
		"0":                "region_SIN INFORMAR",
	}
}
