package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nwbc/credit-decision-service/internal/application/dto"
	"github.com/nwbc/credit-decision-service/internal/domain/event"
	"github.com/nwbc/credit-decision-service/internal/domain/model"
	"github.com/nwbc/credit-decision-service/internal/domain/port"
	"github.com/nwbc/credit-decision-service/internal/domain/service"
)

// ErrInvalidInput marks validation failures of the inbound request. They
// abort the evaluation before any provider call.
var ErrInvalidInput = errors.New("invalid evaluation request")

// EvaluateApplicantUseCase orchestrates one credit evaluation: lazy provider
// fetches interleaved with the gate chain, then feature extraction, scoring
// and offer resolution. It is the sole construction point of the public
// decision shape.
type EvaluateApplicantUseCase struct {
	debtClient   port.DebtBureauClient
	personClient port.PersonRegistryClient
	bureauClient port.BureauVariablesClient
	publisher    port.EventPublisher

	gates     *service.GateChain
	extractor *service.FeatureExtractor
	scorer    *service.ScoringEngine
	resolver  *service.OfferResolver

	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// NewEvaluateApplicantUseCase wires dependencies. The clock defaults to
// time.Now and is injectable for tests.
func NewEvaluateApplicantUseCase(
	debtClient port.DebtBureauClient,
	personClient port.PersonRegistryClient,
	bureauClient port.BureauVariablesClient,
	publisher port.EventPublisher,
	gates *service.GateChain,
	extractor *service.FeatureExtractor,
	scorer *service.ScoringEngine,
	resolver *service.OfferResolver,
	logger *slog.Logger,
) *EvaluateApplicantUseCase {
	return &EvaluateApplicantUseCase{
		debtClient:   debtClient,
		personClient: personClient,
		bureauClient: bureauClient,
		publisher:    publisher,
		gates:        gates,
		extractor:    extractor,
		scorer:       scorer,
		resolver:     resolver,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock overrides the evaluation clock. Intended for tests.
func (uc *EvaluateApplicantUseCase) WithClock(now func() time.Time) *EvaluateApplicantUseCase {
	uc.now = now
	return uc
}

// Execute runs one evaluation. Business rejections come back as a rejected
// Decision with nil error; every fatal condition (bad input, provider
// failure, invariant violation) comes back as an error.
func (uc *EvaluateApplicantUseCase) Execute(ctx context.Context, req dto.EvaluationRequest) (model.Decision, error) {
	evaluationID := uuid.New().String()

	// 1. Validate input. Fails before any provider call.
	if err := uc.validate.Struct(req); err != nil {
		return model.Decision{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	applicant, err := model.NewApplicant(req.CUIL.String(), req.Sexo, req.Birthdate)
	if err != nil {
		return model.Decision{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	age := applicant.AgeAt(uc.now())
	log := uc.logger.With("evaluation_id", evaluationID)

	// 2. Gate 1: age window. Needs no provider data, so a rejection here
	// performs zero external calls.
	if rej := uc.gates.CheckAge(age); rej != nil {
		return uc.reject(ctx, log, evaluationID, applicant, *rej), nil
	}

	// 3. Debt registry fetch, then gate 2.
	debt, err := uc.debtClient.GetDebtReport(ctx, applicant.CUIL())
	if err != nil {
		return model.Decision{}, fmt.Errorf("debt registry: %w", err)
	}
	if rej := uc.gates.CheckDebt(debt); rej != nil {
		return uc.reject(ctx, log, evaluationID, applicant, *rej), nil
	}

	// 4. Person registry and credit bureau fetches, then gates 3-5.
	documentID := applicant.DocumentID()
	person, err := uc.personClient.GetPerson(ctx, documentID)
	if err != nil {
		return model.Decision{}, fmt.Errorf("person registry: %w", err)
	}
	vars, err := uc.bureauClient.GetVariables(ctx, documentID)
	if err != nil {
		return model.Decision{}, fmt.Errorf("credit bureau: %w", err)
	}
	if rej := uc.gates.CheckBureau(vars); rej != nil {
		return uc.reject(ctx, log, evaluationID, applicant, *rej), nil
	}

	// 5. Feature assembly and scoring.
	features := uc.extractor.Extract(applicant, service.ApplicantFeatures{
		Age:    age,
		Debt:   debt,
		Person: person,
		Vars:   vars,
	})
	result, err := uc.scorer.Score(features)
	if err != nil {
		return model.Decision{}, fmt.Errorf("scoring: %w", err)
	}

	// 6. Offer resolution and assembly.
	tier, offer := uc.resolver.Resolve(result.Score, service.ScaledEstimator(person))
	region := uc.extractor.RegionKey(person)

	decision := model.NewApprovedDecision(
		result.Score,
		service.RoundProbability(result.DefaultProbability),
		tier,
		region,
		age,
		offer,
	)

	log.Info("applicant approved",
		"score", result.Score,
		"risk_tier", tier.String(),
		"region", region,
	)

	uc.publish(ctx, log, event.NewEvaluationApproved(
		evaluationID, applicant.CUIL(),
		result.Score, decision.DefaultProbability(),
		tier.String(), region,
	))

	return decision, nil
}

func (uc *EvaluateApplicantUseCase) reject(
	ctx context.Context,
	log *slog.Logger,
	evaluationID string,
	applicant model.Applicant,
	rej model.Rejection,
) model.Decision {
	log.Info("applicant rejected",
		"reason", string(rej.Code),
		"explanation", rej.Explanation,
	)

	uc.publish(ctx, log, event.NewEvaluationRejected(
		evaluationID, applicant.CUIL(),
		string(rej.Code), rej.Explanation,
	))

	return model.NewRejectedDecision(rej)
}

// publish sends a decision event. Publishing is best effort: the decision
// has already been made and a broker outage must not fail the evaluation.
func (uc *EvaluateApplicantUseCase) publish(ctx context.Context, log *slog.Logger, evt event.DomainEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		log.Warn("publish decision event", "event_type", evt.EventType(), "error", err)
	}
}
