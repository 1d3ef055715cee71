package dto

import (
	"encoding/json"

	"github.com/nwbc/credit-decision-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// EvaluationRequest is the inbound evaluation payload. The CUIL is accepted
// both as a JSON number and as a string.
type EvaluationRequest struct {
	CUIL      json.Number `json:"cuil" validate:"required,numeric,min=10"`
	Sexo      string      `json:"sexo" validate:"required"`
	Birthdate string      `json:"birthdate" validate:"required,datetime=2006-01-02"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// RejectedResponse is the wire shape of a business rejection.
type RejectedResponse struct {
	Rechazado   bool   `json:"rechazado"`
	Motivo      string `json:"motivo"`
	Explicacion string `json:"explicacion"`
}

// ApprovedResponse is the wire shape of an approved evaluation.
type ApprovedResponse struct {
	Rechazado           bool    `json:"rechazado"`
	Motivo              string  `json:"motivo"`
	Score               float64 `json:"score"`
	ProbabilidadDefault float64 `json:"probabilidad_default"`
	NivelRiesgo         string  `json:"nivel_riesgo"`
	Region              string  `json:"region"`
	Edad                int     `json:"edad"`
	PlazoMax            int     `json:"plazo_max"`
	MontoMax            float64 `json:"monto_max"`
	RCI                 float64 `json:"rci"`
	CuotaMax            float64 `json:"cuota_max"`
}

// FromDecision maps a domain decision onto its wire representation.
func FromDecision(d model.Decision) any {
	if d.Rejected() {
		r := d.Rejection()
		return RejectedResponse{
			Rechazado:   true,
			Motivo:      string(r.Code),
			Explicacion: r.Explanation,
		}
	}

	offer := d.Offer()
	return ApprovedResponse{
		Rechazado:           false,
		Motivo:              "aprobado",
		Score:               d.Score(),
		ProbabilidadDefault: d.DefaultProbability(),
		NivelRiesgo:         d.RiskTier().String(),
		Region:              d.Region(),
		Edad:                d.Age(),
		PlazoMax:            offer.MaxTermMonths,
		MontoMax:            offer.MaxAmount,
		RCI:                 offer.IncomeRatioCap,
		CuotaMax:            offer.MaxInstallment,
	}
}
