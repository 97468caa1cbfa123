package models

import "time"

// Status is the two-valued admission outcome.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Reason records which check decided the outcome. At most one rejection
// reason applies since checks short-circuit in order.
type Reason string

const (
	ReasonAccepted          Reason = "accepted"
	ReasonValidationFailed  Reason = "validation_failed"
	ReasonClientNotFound    Reason = "client_not_found"
	ReasonCreditLimitTooLow Reason = "credit_limit_too_low"
)

// Result is the outcome of one admission evaluation. User is set only when
// the candidate was accepted.
type Result struct {
	Status      Status    `json:"status"`
	Reason      Reason    `json:"reason"`
	User        *User     `json:"user,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

func (r *Result) Accepted() bool {
	return r != nil && r.Status == StatusAccepted
}

// Accept builds an accepted result for user.
func Accept(user *User, at time.Time) *Result {
	return &Result{Status: StatusAccepted, Reason: ReasonAccepted, User: user, EvaluatedAt: at}
}

// Reject builds a rejected result for reason.
func Reject(reason Reason, at time.Time) *Result {
	return &Result{Status: StatusRejected, Reason: reason, EvaluatedAt: at}
}
