package port

import "context"

// ---------------------------------------------------------------------------
// External data provider ports (driven adapters)
// ---------------------------------------------------------------------------

// DebtReport is the typed payload of the central-bank debt registry.
// Fields the provider omits default to 0.
type DebtReport struct {
	WorstDelinquency1M float64 `json:"sit_max_1m"`
	EntityCount3M      float64 `json:"Qentidades_3m"`
	MeanDebt3M         float64 `json:"deuda_mean_3m"`
	DebtDelta1To3M     float64 `json:"dif_deuda_1_3m"`
}

// PersonRecord is the typed payload of the person registry. The income
// estimator is reported in thousands of pesos.
type PersonRecord struct {
	Province        string  `json:"provincia"`
	IncomeEstimator float64 `json:"estimador"`
}

// Variable names queried from the credit bureau payload.
const (
	VarScore             = "SCO_Vig"
	VarMonthlyCommitment = "CI_Vig_CompMensual"
	VarInquiriesFinance  = "CO_1m_Finan_Cant"
	VarInquiriesBanking  = "CO_1m_Banca_Cant"
	VarReferenceCount    = "RC_Vig_Cant"
)

// BureauVariable is one named entry of the credit bureau variable list.
type BureauVariable struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// BureauVariables is the ordered variable list as returned by the bureau.
// Duplicate names may occur; lookups take the first match.
type BureauVariables []BureauVariable

// Value scans the list for an exact name match and returns its value, or 0
// when the name is absent.
func (v BureauVariables) Value(name string) float64 {
	for _, entry := range v {
		if entry.Name == name {
			return entry.Value
		}
	}
	return 0
}

// DebtBureauClient fetches the debt registry report for a CUIL.
type DebtBureauClient interface {
	GetDebtReport(ctx context.Context, cuil string) (DebtReport, error)
}

// PersonRegistryClient fetches identity data for a document number.
type PersonRegistryClient interface {
	GetPerson(ctx context.Context, documentID string) (PersonRecord, error)
}

// BureauVariablesClient fetches the credit bureau variable list for a
// document number.
type BureauVariablesClient interface {
	GetVariables(ctx context.Context, documentID string) (BureauVariables, error)
}
