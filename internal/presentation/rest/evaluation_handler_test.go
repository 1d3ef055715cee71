package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwbc/credit-decision-service/internal/application/usecase"
	"github.com/nwbc/credit-decision-service/internal/domain/port"
	"github.com/nwbc/credit-decision-service/internal/domain/service"
	"github.com/nwbc/credit-decision-service/internal/infrastructure/config"
	"github.com/nwbc/credit-decision-service/internal/observability"
	"github.com/nwbc/credit-decision-service/internal/presentation/rest"
)

// --- Stub provider ports ---

type stubDebtClient struct {
	report port.DebtReport
	err    error
}

func (s *stubDebtClient) GetDebtReport(_ context.Context, _ string) (port.DebtReport, error) {
	return s.report, s.err
}

type stubPersonClient struct {
	record port.PersonRecord
}

func (s *stubPersonClient) GetPerson(_ context.Context, _ string) (port.PersonRecord, error) {
	return s.record, nil
}

type stubBureauClient struct {
	vars port.BureauVariables
}

func (s *stubBureauClient) GetVariables(_ context.Context, _ string) (port.BureauVariables, error) {
	return s.vars, nil
}

var handlerNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, debt *stubDebtClient) *httptest.Server {
	t.Helper()

	tables, err := config.LoadTables("")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := usecase.NewEvaluateApplicantUseCase(
		debt,
		&stubPersonClient{record: port.PersonRecord{Province: "BUENOS AIRES", IncomeEstimator: 350}},
		&stubBureauClient{vars: port.BureauVariables{
			{Name: port.VarScore, Value: 520},
			{Name: port.VarMonthlyCommitment, Value: 45000},
			{Name: port.VarInquiriesFinance, Value: 2},
			{Name: port.VarInquiriesBanking, Value: 1},
			{Name: port.VarReferenceCount, Value: 1},
		}},
		nil,
		service.NewGateChain(),
		service.NewFeatureExtractor(tables.Coefficients, tables.Provinces),
		service.NewScoringEngine(tables.Coefficients),
		service.NewOfferResolver(tables.RiskBands, tables.Offers),
		logger,
	).WithClock(func() time.Time { return handlerNow })

	mux := http.NewServeMux()
	rest.NewEvaluationHandler(uc, logger).RegisterRoutes(mux)
	rest.NewHealthHandler(logger).RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func passingDebt() *stubDebtClient {
	return &stubDebtClient{report: port.DebtReport{
		WorstDelinquency1M: 1,
		EntityCount3M:      2,
		MeanDebt3M:         150,
		DebtDelta1To3M:     0.5,
	}}
}

func postEvaluation(t *testing.T, srv *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/evaluations", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestEvaluationHandler(t *testing.T) {
	t.Run("approves a passing applicant", func(t *testing.T) {
		srv := newTestServer(t, passingDebt())

		resp, raw := postEvaluation(t, srv, `{"cuil": 20301234567, "sexo": "M", "birthdate": "1995-06-15"}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, false, body["rechazado"])
		assert.Equal(t, "aprobado", body["motivo"])
		assert.Equal(t, 627.89, body["score"])
		assert.Equal(t, 0.627885, body["probabilidad_default"])
		assert.Equal(t, "Medio", body["nivel_riesgo"])
		assert.Equal(t, "region_CENTRO", body["region"])
		assert.Equal(t, 30.0, body["edad"])
		assert.Equal(t, 9.0, body["plazo_max"])
		assert.Equal(t, 750000.0, body["monto_max"])
		assert.Equal(t, 0.30, body["rci"])
		assert.Equal(t, 105000.0, body["cuota_max"])
	})

	t.Run("returns the exact rejection body for an under-age applicant", func(t *testing.T) {
		srv := newTestServer(t, passingDebt())

		resp, raw := postEvaluation(t, srv, `{"cuil": 20301234567, "sexo": "M", "birthdate": "2002-12-31"}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t,
			`{"rechazado": true, "motivo": "interno", "explicacion": "Edad fuera de rango permitido: 22 años"}`,
			string(raw),
		)
	})

	t.Run("accepts the cuil as a string", func(t *testing.T) {
		srv := newTestServer(t, passingDebt())

		resp, raw := postEvaluation(t, srv, `{"cuil": "20301234567", "sexo": "M", "birthdate": "1995-06-15"}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, false, body["rechazado"])
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		srv := newTestServer(t, passingDebt())

		resp, _ := postEvaluation(t, srv, `{not json`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields are a 400, not a silent default", func(t *testing.T) {
		srv := newTestServer(t, passingDebt())

		resp, _ := postEvaluation(t, srv, `{"cuil": 20301234567}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("provider failure is an opaque 500", func(t *testing.T) {
		srv := newTestServer(t, &stubDebtClient{err: fmt.Errorf("registry down: secret detail")})

		resp, raw := postEvaluation(t, srv, `{"cuil": 20301234567, "sexo": "M", "birthdate": "1995-06-15"}`)

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"error": "evaluation failed"}`, string(raw))
		assert.NotContains(t, string(raw), "secret detail")
	})

	t.Run("outcome counters are recorded when the decision is served", func(t *testing.T) {
		srv := newTestServer(t, passingDebt())

		approvedBefore := testutil.ToFloat64(observability.EvaluationsTotal.WithLabelValues("approved", "aprobado"))
		rejectedBefore := testutil.ToFloat64(observability.EvaluationsTotal.WithLabelValues("rejected", "interno"))

		postEvaluation(t, srv, `{"cuil": 20301234567, "sexo": "M", "birthdate": "1995-06-15"}`)
		postEvaluation(t, srv, `{"cuil": 20301234567, "sexo": "M", "birthdate": "2002-12-31"}`)

		assert.Equal(t, approvedBefore+1, testutil.ToFloat64(observability.EvaluationsTotal.WithLabelValues("approved", "aprobado")))
		assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(observability.EvaluationsTotal.WithLabelValues("rejected", "interno")))
	})

	t.Run("health endpoints answer ok", func(t *testing.T) {
		srv := newTestServer(t, passingDebt())

		resp, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = http.Get(srv.URL + "/readyz")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("throttles a client that exhausts its bucket", func(t *testing.T) {
		limiter := rest.NewRateLimiter(2, time.Minute)
		t.Cleanup(limiter.Stop)
		handler := rest.RateLimitMiddleware(limiter)(okHandler)

		statuses := make([]int, 0, 4)
		for i := 0; i < 4; i++ {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.RemoteAddr = "10.0.0.1:4000"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			statuses = append(statuses, rec.Code)
		}

		assert.Equal(t, []int{
			http.StatusOK,
			http.StatusOK,
			http.StatusTooManyRequests,
			http.StatusTooManyRequests,
		}, statuses)
	})

	t.Run("buckets are tracked per client ip", func(t *testing.T) {
		limiter := rest.NewRateLimiter(1, time.Minute)
		t.Cleanup(limiter.Stop)
		handler := rest.RateLimitMiddleware(limiter)(okHandler)

		send := func(addr string) int {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			return rec.Code
		}

		assert.Equal(t, http.StatusOK, send("10.0.0.1:4000"))
		assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:4001"))
		assert.Equal(t, http.StatusOK, send("10.0.0.2:4000"))
	})
}
