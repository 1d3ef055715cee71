package service

import (
	"fmt"
	"math"
	"strconv"

	"github.com/nwbc/credit-decision-service/internal/domain/model"
	"github.com/nwbc/credit-decision-service/internal/domain/port"
)

// Hard-stop eligibility thresholds. Gate order is fixed: age, delinquency,
// inquiries, score floor, references. The first failing gate determines the
// rejection and later gates never run.
const (
	MinAge            = 25
	MaxAge            = 70
	MaxDelinquency1M  = 1
	MaxInquiries1M    = 5
	MinBureauScore    = 190
	MaxCommercialRefs = 1
)

// GateChain runs the ordered hard-stop checks. Checks are grouped in stages
// so the caller can fetch provider data lazily between them: a rejection in
// an early stage must never trigger the provider calls of a later one.
type GateChain struct{}

// NewGateChain returns the chain. Thresholds are compiled policy, not
// tunable configuration.
func NewGateChain() *GateChain {
	return &GateChain{}
}

// CheckAge is gate 1. It needs no provider data.
func (g *GateChain) CheckAge(age int) *model.Rejection {
	if age < MinAge || age > MaxAge {
		return &model.Rejection{
			Code:        model.RejectionInternal,
			Explanation: fmt.Sprintf("Edad fuera de rango permitido: %d años", age),
		}
	}
	return nil
}

// CheckDebt is gate 2: worst one-month delinquency above the tolerated
// situation level.
func (g *GateChain) CheckDebt(debt port.DebtReport) *model.Rejection {
	if debt.WorstDelinquency1M > MaxDelinquency1M {
		return &model.Rejection{
			Code:        model.RejectionDebtBureau,
			Explanation: "Situación crediticia > 1 en el último mes: " + formatValue(debt.WorstDelinquency1M),
		}
	}
	return nil
}

// CheckBureau runs gates 3 to 5 in order against the credit bureau variables:
// inquiry volume, score floor, commercial references.
func (g *GateChain) CheckBureau(vars port.BureauVariables) *model.Rejection {
	inquiries := vars.Value(port.VarInquiriesFinance) + vars.Value(port.VarInquiriesBanking)
	if inquiries > MaxInquiries1M {
		return &model.Rejection{
			Code:        model.RejectionCreditBureau,
			Explanation: "Cantidad de consultas en Nosis > 5: " + formatBureauValue(inquiries),
		}
	}

	score := vars.Value(port.VarScore)
	if score < MinBureauScore {
		return &model.Rejection{
			Code:        model.RejectionCreditBureau,
			Explanation: "Score Nosis menor a 190: " + formatBureauValue(score),
		}
	}

	references := vars.Value(port.VarReferenceCount)
	if references > MaxCommercialRefs {
		return &model.Rejection{
			Code:        model.RejectionCreditBureau,
			Explanation: "Referencias comerciales mayores a 1: " + formatBureauValue(references),
		}
	}

	return nil
}

// formatValue renders the debt registry situation level as it appears on the
// wire, without a trailing ".0" for whole numbers.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatBureauValue renders a bureau variable after float coercion: whole
// numbers keep one decimal ("6.0", "150.0"), fractional values use the
// shortest form.
func formatBureauValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
