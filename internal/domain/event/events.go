package event

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all decision events implement.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	EvaluationID() string
	OccurredAt() time.Time
}

// BaseEvent provides the common fields of every decision event.
type BaseEvent struct {
	ID           uuid.UUID `json:"event_id"`
	Type         string    `json:"event_type"`
	Evaluation   string    `json:"evaluation_id"`
	ApplicantRef string    `json:"applicant_ref"`
	At           time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated id and the current time.
// The applicant reference is a hash of the CUIL; the raw identifier never
// leaves the service through the event stream.
func NewBaseEvent(eventType, evaluationID, cuil string) BaseEvent {
	return BaseEvent{
		ID:           uuid.New(),
		Type:         eventType,
		Evaluation:   evaluationID,
		ApplicantRef: hashCUIL(cuil),
		At:           time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID    { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EvaluationID() string  { return e.Evaluation }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

func hashCUIL(cuil string) string {
	h := sha256.Sum256([]byte(cuil))
	return hex.EncodeToString(h[:8])
}

// ---------------------------------------------------------------------------
// Decision events
// ---------------------------------------------------------------------------

// EvaluationApproved is raised when an applicant passes every gate.
type EvaluationApproved struct {
	BaseEvent
	Score              float64 `json:"score"`
	DefaultProbability float64 `json:"default_probability"`
	RiskTier           string  `json:"risk_tier"`
	Region             string  `json:"region"`
}

// NewEvaluationApproved builds the approval event.
func NewEvaluationApproved(evaluationID, cuil string, score, defaultProbability float64, tier, region string) EvaluationApproved {
	return EvaluationApproved{
		BaseEvent:          NewBaseEvent("credit.decision.approved", evaluationID, cuil),
		Score:              score,
		DefaultProbability: defaultProbability,
		RiskTier:           tier,
		Region:             region,
	}
}

// EvaluationRejected is raised when a gate turns the applicant down.
type EvaluationRejected struct {
	BaseEvent
	Reason      string `json:"reason"`
	Explanation string `json:"explanation"`
}

// NewEvaluationRejected builds the rejection event.
func NewEvaluationRejected(evaluationID, cuil, reason, explanation string) EvaluationRejected {
	return EvaluationRejected{
		BaseEvent:   NewBaseEvent("credit.decision.rejected", evaluationID, cuil),
		Reason:      reason,
		Explanation: explanation,
	}
}
