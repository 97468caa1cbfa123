package admission

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"admission/internal/admission/metrics"
	"admission/internal/admission/models"
	"admission/internal/admission/ports"
	dErrors "admission/pkg/domain-errors"
	"admission/pkg/platform/sentinel"
	"admission/pkg/requestcontext"
)

const tracerName = "admission"

// Service decides whether a candidate is admitted as a user. Each call is
// independent: the service holds no mutable state, and persistence is the only
// side effect, performed once and only on acceptance.
type Service struct {
	clients  ports.ClientDirectory
	oracle   ports.CreditLimitOracle
	users    ports.UserStore
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// New constructs a Service over its three collaborators.
func New(clients ports.ClientDirectory, oracle ports.CreditLimitOracle, users ports.UserStore, opts ...Option) (*Service, error) {
	if clients == nil {
		return nil, errors.New("client directory is required")
	}
	if oracle == nil {
		return nil, errors.New("credit limit oracle is required")
	}
	if users == nil {
		return nil, errors.New("user store is required")
	}
	s := &Service{
		clients:  clients,
		oracle:   oracle,
		users:    users,
		validate: validator.New(),
		logger:   slog.New(slog.DiscardHandler),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddUser admits a candidate and reports whether the user was accepted and
// persisted. Rejections and collaborator failures both yield false.
func (s *Service) AddUser(ctx context.Context, firstName, lastName, email string, dateOfBirth time.Time, clientID models.ClientID) bool {
	result, err := s.Evaluate(ctx, models.Candidate{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		DateOfBirth: dateOfBirth,
		ClientID:    clientID,
	})
	if err != nil {
		return false
	}
	return result.Accepted()
}

// Evaluate runs the admission pipeline for a candidate.
// Rule order (fail-fast):
//  1. Input validation and minimum age
//  2. Client resolution
//  3. Tier credit policy
//  4. Minimum credit limit
//
// Rejections are returned as results. A non-nil error means a collaborator
// failed and no decision was reached; nothing is persisted in that case.
func (s *Service) Evaluate(ctx context.Context, candidate models.Candidate) (*models.Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "admission.Evaluate",
		trace.WithAttributes(attribute.String("admission.client_id", candidate.ClientID.String())),
	)
	defer span.End()
	defer func() { s.metrics.ObserveEvaluateLatency(time.Since(start)) }()

	now := requestcontext.Now(ctx)

	if err := validateCandidate(s.validate, candidate, now); err != nil {
		if !dErrors.HasCode(err, dErrors.CodeValidation) {
			return nil, s.fail(ctx, span, err)
		}
		return s.reject(ctx, span, models.ReasonValidationFailed, "", now,
			"client_id", candidate.ClientID,
			"detail", err.Error(),
		), nil
	}

	client, err := s.clients.FindByID(ctx, candidate.ClientID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound), err == nil && client == nil:
		return s.reject(ctx, span, models.ReasonClientNotFound, "", now,
			"client_id", candidate.ClientID,
		), nil
	case err != nil:
		return nil, s.fail(ctx, span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve client"))
	}

	user := models.NewUser(candidate, client)
	if err := s.applyCreditPolicy(ctx, user); err != nil {
		return nil, s.fail(ctx, span, err)
	}

	if ShouldDeny(user) {
		return s.reject(ctx, span, models.ReasonCreditLimitTooLow, client.Tier, now,
			"client_id", client.ID,
			"credit_limit", user.CreditLimit,
		), nil
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, s.fail(ctx, span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist user"))
	}

	result := models.Accept(user, now)
	s.record(span, result, client.Tier)
	s.logger.InfoContext(ctx, "admission accepted",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID,
		"client_id", client.ID,
		"tier", client.Tier,
		"has_credit_limit", user.HasCreditLimit,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// applyCreditPolicy fills in the user's credit fields according to the
// client's tier, consulting the oracle only when the tier carries a limit.
func (s *Service) applyCreditPolicy(ctx context.Context, user *models.User) error {
	policy := CreditPolicyFor(user.Client.Tier)
	if !policy.HasCreditLimit {
		user.ClearCreditLimit()
		return nil
	}

	start := time.Now()
	base, err := s.oracle.CreditLimit(ctx, user.LastName, user.DateOfBirth)
	s.metrics.ObserveOracleLatency(time.Since(start), err)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute credit limit")
	}

	user.ApplyCreditLimit(policy.Limit(base))
	return nil
}

func (s *Service) reject(ctx context.Context, span trace.Span, reason models.Reason, tier models.ClientTier, now time.Time, attrs ...any) *models.Result {
	result := models.Reject(reason, now)
	s.record(span, result, tier)

	attrs = append([]any{"request_id", requestcontext.RequestID(ctx), "reason", reason}, attrs...)
	s.logger.InfoContext(ctx, "admission rejected", attrs...)
	return result
}

func (s *Service) record(span trace.Span, result *models.Result, tier models.ClientTier) {
	s.metrics.IncrementOutcome(string(result.Status), string(result.Reason), string(tier))
	span.SetAttributes(
		attribute.String("admission.status", string(result.Status)),
		attribute.String("admission.reason", string(result.Reason)),
		attribute.String("admission.tier", string(tier)),
	)
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "admission evaluation failed")
	s.logger.ErrorContext(ctx, "admission evaluation failed",
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	return err
}
