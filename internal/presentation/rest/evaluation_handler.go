package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nwbc/credit-decision-service/internal/application/dto"
	"github.com/nwbc/credit-decision-service/internal/application/usecase"
	"github.com/nwbc/credit-decision-service/internal/observability"
)

// EvaluationHandler exposes the credit evaluation endpoint.
type EvaluationHandler struct {
	evaluate *usecase.EvaluateApplicantUseCase
	logger   *slog.Logger
}

// NewEvaluationHandler creates the handler.
func NewEvaluationHandler(evaluate *usecase.EvaluateApplicantUseCase, logger *slog.Logger) *EvaluationHandler {
	return &EvaluationHandler{evaluate: evaluate, logger: logger}
}

// RegisterRoutes attaches the evaluation route to the given mux.
func (h *EvaluationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /evaluations", h.evaluateApplicant)
}

// evaluateApplicant handles one evaluation request. Business rejections are
// a 200 with the rejected body; fatal conditions surface as opaque errors.
func (h *EvaluationHandler) evaluateApplicant(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.EvaluationFailures.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	decision, err := h.evaluate.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			observability.EvaluationFailures.WithLabelValues("bad_request").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid evaluation request"})
			return
		}
		// Provider failures and invariant violations: log the detail, answer
		// with an opaque body.
		observability.EvaluationFailures.WithLabelValues("internal").Inc()
		h.logger.Error("evaluation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "evaluation failed"})
		return
	}

	if decision.Rejected() {
		observability.EvaluationsTotal.WithLabelValues("rejected", string(decision.Rejection().Code)).Inc()
	} else {
		observability.EvaluationsTotal.WithLabelValues("approved", "aprobado").Inc()
	}

	writeJSON(w, http.StatusOK, dto.FromDecision(decision))
}
