package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/nwbc/credit-decision-service/internal/domain/port"
)

// Deterministic stub providers for development and testing. Every payload is
// derived from a hash of the lookup key, so repeated evaluations of the same
// applicant are reproducible.

// StubDebtBureauClient implements port.DebtBureauClient.
type StubDebtBureauClient struct{}

// NewStubDebtBureauClient creates the stub.
func NewStubDebtBureauClient() *StubDebtBureauClient {
	return &StubDebtBureauClient{}
}

// GetDebtReport returns a hash-derived debt report. The delinquency
// indicator lands in [0, 3] so some applicants trip the severity gate.
func (c *StubDebtBureauClient) GetDebtReport(_ context.Context, cuil string) (port.DebtReport, error) {
	if cuil == "" {
		return port.DebtReport{}, fmt.Errorf("cuil is required")
	}
	h := sha256.Sum256([]byte("deuda:" + cuil))
	return port.DebtReport{
		WorstDelinquency1M: float64(binary.BigEndian.Uint16(h[0:2]) % 4),
		EntityCount3M:      float64(1 + binary.BigEndian.Uint16(h[2:4])%6),
		MeanDebt3M:         float64(binary.BigEndian.Uint32(h[4:8]) % 400000),
		DebtDelta1To3M:     float64(binary.BigEndian.Uint16(h[8:10])%200)/100 - 1,
	}, nil
}

// StubPersonRegistryClient implements port.PersonRegistryClient.
type StubPersonRegistryClient struct{}

// NewStubPersonRegistryClient creates the stub.
func NewStubPersonRegistryClient() *StubPersonRegistryClient {
	return &StubPersonRegistryClient{}
}

var stubProvinces = []string{
	"CAP. FEDERAL", "BUENOS AIRES", "CORDOBA", "SANTA FE", "MENDOZA",
	"CHACO", "SALTA", "NEUQUEN", "SIN INFORMAR",
}

// GetPerson returns a hash-derived person record. The estimator lands in
// [80, 1103] thousand pesos.
func (c *StubPersonRegistryClient) GetPerson(_ context.Context, documentID string) (port.PersonRecord, error) {
	if documentID == "" {
		return port.PersonRecord{}, fmt.Errorf("document id is required")
	}
	h := sha256.Sum256([]byte("persona:" + documentID))
	return port.PersonRecord{
		Province:        stubProvinces[int(h[0])%len(stubProvinces)],
		IncomeEstimator: float64(80 + binary.BigEndian.Uint16(h[1:3])%1024),
	}, nil
}

// StubBureauVariablesClient implements port.BureauVariablesClient.
type StubBureauVariablesClient struct{}

// NewStubBureauVariablesClient creates the stub.
func NewStubBureauVariablesClient() *StubBureauVariablesClient {
	return &StubBureauVariablesClient{}
}

// GetVariables returns a hash-derived variable list covering every name the
// engine queries. The bureau score lands in [150, 918].
func (c *StubBureauVariablesClient) GetVariables(_ context.Context, documentID string) (port.BureauVariables, error) {
	if documentID == "" {
		return nil, fmt.Errorf("document id is required")
	}
	h := sha256.Sum256([]byte("variables:" + documentID))
	return port.BureauVariables{
		{Name: port.VarScore, Value: float64(150 + binary.BigEndian.Uint16(h[0:2])%769)},
		{Name: port.VarMonthlyCommitment, Value: float64(binary.BigEndian.Uint32(h[2:6]) % 120000)},
		{Name: port.VarInquiriesFinance, Value: float64(binary.BigEndian.Uint16(h[6:8]) % 5)},
		{Name: port.VarInquiriesBanking, Value: float64(binary.BigEndian.Uint16(h[8:10]) % 4)},
		{Name: port.VarReferenceCount, Value: float64(binary.BigEndian.Uint16(h[10:12]) % 3)},
	}, nil
}
