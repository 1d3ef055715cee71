package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nwbc/credit-decision-service/internal/domain/port"
	"github.com/nwbc/credit-decision-service/internal/observability"
)

// ---------------------------------------------------------------------------
// Debt registry adapter (BCRA-style central debt bureau)
// ---------------------------------------------------------------------------

// DebtBureauAdapter fetches the debt registry report over HTTP. Calls block
// up to the configured timeout and are never retried; a timeout or
// non-success status is fatal for the evaluation.
type DebtBureauAdapter struct {
	baseURL string
	client  *http.Client
}

// NewDebtBureauAdapter builds the adapter with a bounded-wait HTTP client.
func NewDebtBureauAdapter(baseURL string, timeout time.Duration) *DebtBureauAdapter {
	return &DebtBureauAdapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetDebtReport implements port.DebtBureauClient. Fields absent from the
// payload decode to 0.
func (a *DebtBureauAdapter) GetDebtReport(ctx context.Context, cuil string) (port.DebtReport, error) {
	start := time.Now()
	defer func() {
		observability.ProviderRequestDuration.WithLabelValues("debt_bureau").Observe(time.Since(start).Seconds())
	}()

	url := fmt.Sprintf("%s/deuda/%s/json", a.baseURL, cuil)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return port.DebtReport{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return port.DebtReport{}, fmt.Errorf("debt bureau request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return port.DebtReport{}, fmt.Errorf("debt bureau returned status %d", resp.StatusCode)
	}

	var report port.DebtReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return port.DebtReport{}, fmt.Errorf("decode debt bureau payload: %w", err)
	}
	return report, nil
}
