package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/nwbc/credit-decision-service/internal/domain/port"
	"github.com/nwbc/credit-decision-service/internal/observability"
)

// ---------------------------------------------------------------------------
// Person registry adapter (identity / income estimator provider)
// ---------------------------------------------------------------------------

// personEnvelope mirrors the provider's nested response shape. The estimator
// arrives as a numeric string.
type personEnvelope struct {
	Resultado struct {
		Persona struct {
			Row struct {
				Provincia string `json:"provincia"`
				Estimador string `json:"estimador"`
			} `json:"row"`
		} `json:"persona"`
	} `json:"RESULTADO"`
}

// PersonRegistryAdapter fetches identity data over HTTP.
type PersonRegistryAdapter struct {
	baseURL string
	client  *http.Client
}

// NewPersonRegistryAdapter builds the adapter with a bounded-wait HTTP client.
func NewPersonRegistryAdapter(baseURL string, timeout time.Duration) *PersonRegistryAdapter {
	return &PersonRegistryAdapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetPerson implements port.PersonRegistryClient. A missing province comes
// back empty (the region mapping treats it as unreported); an absent or
// unparsable estimator defaults to 0.
func (a *PersonRegistryAdapter) GetPerson(ctx context.Context, documentID string) (port.PersonRecord, error) {
	start := time.Now()
	defer func() {
		observability.ProviderRequestDuration.WithLabelValues("person_registry").Observe(time.Since(start).Seconds())
	}()

	url := fmt.Sprintf("%s/persona/%s/json", a.baseURL, documentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return port.PersonRecord{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return port.PersonRecord{}, fmt.Errorf("person registry request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return port.PersonRecord{}, fmt.Errorf("person registry returned status %d", resp.StatusCode)
	}

	var envelope personEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return port.PersonRecord{}, fmt.Errorf("decode person registry payload: %w", err)
	}

	row := envelope.Resultado.Persona.Row
	estimator, err := strconv.ParseFloat(row.Estimador, 64)
	if err != nil {
		estimator = 0
	}

	return port.PersonRecord{
		Province:        row.Provincia,
		IncomeEstimator: estimator,
	}, nil
}
