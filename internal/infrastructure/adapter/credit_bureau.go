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
// Credit bureau adapter (named variable list provider)
// ---------------------------------------------------------------------------

// variablesEnvelope mirrors the provider's nested response shape.
type variablesEnvelope struct {
	Contenido struct {
		Datos struct {
			Variables []struct {
				Nombre string `json:"Nombre"`
				Valor  string `json:"Valor"`
			} `json:"Variables"`
		} `json:"Datos"`
	} `json:"Contenido"`
}

// CreditBureauAdapter fetches the bureau variable list over HTTP.
type CreditBureauAdapter struct {
	baseURL string
	client  *http.Client
}

// NewCreditBureauAdapter builds the adapter with a bounded-wait HTTP client.
func NewCreditBureauAdapter(baseURL string, timeout time.Duration) *CreditBureauAdapter {
	return &CreditBureauAdapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetVariables implements port.BureauVariablesClient. Values arrive as
// numeric strings; entries that fail to parse carry value 0 rather than
// failing the whole list.
func (a *CreditBureauAdapter) GetVariables(ctx context.Context, documentID string) (port.BureauVariables, error) {
	start := time.Now()
	defer func() {
		observability.ProviderRequestDuration.WithLabelValues("credit_bureau").Observe(time.Since(start).Seconds())
	}()

	url := fmt.Sprintf("%s/variables?documento=%s&format=json", a.baseURL, documentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("credit bureau request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("credit bureau returned status %d", resp.StatusCode)
	}

	var envelope variablesEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode credit bureau payload: %w", err)
	}

	raw := envelope.Contenido.Datos.Variables
	vars := make(port.BureauVariables, 0, len(raw))
	for _, entry := range raw {
		value, err := strconv.ParseFloat(entry.Valor, 64)
		if err != nil {
			value = 0
		}
		vars = append(vars, port.BureauVariable{Name: entry.Nombre, Value: value})
	}
	return vars, nil
}
