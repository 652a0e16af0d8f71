// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/tryconstruct/internal/domain"
	"github.com/jsamuelsen11/tryconstruct/internal/domain/signup"
	"github.com/jsamuelsen11/tryconstruct/internal/domain/user"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/telemetry"
	"github.com/jsamuelsen11/tryconstruct/internal/ports"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// Compile-time check that SignupService implements ports.SignupService.
var _ ports.SignupService = (*SignupService)(nil)

const tracerName = "github.com/jsamuelsen11/tryconstruct/internal/app"

// SignupService implements ports.SignupService. It runs the signup factory,
// stores valid signups, and reports every call through logs, spans and the
// validation metrics. The rules themselves live in the domain packages.
type SignupService struct {
	factory *validation.Factory[signup.Signup]
	repo    ports.SignupRepository
	metrics *telemetry.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewSignupService creates a SignupService. dir backs the email uniqueness
// check and repo stores valid signups. metrics may be nil; a nil logger
// discards output. opts tune the signup factory.
func NewSignupService(
	dir ports.EmailDirectory,
	repo ports.SignupRepository,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
	opts ...validation.Option,
) *SignupService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &SignupService{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
	opts = append(opts, validation.WithObserver(s.observe))
	s.factory = signup.NewFactory(dir, opts...)
	return s
}

// Register validates rec and stores the signup when it is valid.
func (s *SignupService) Register(ctx context.Context, rec *validation.Record) (*ports.RegisterResult, error) {
	out, err := s.validate(ctx, "Register", rec)
	if err != nil {
		return nil, err
	}

	su, ok := out.Value()
	if !ok {
		return &ports.RegisterResult{Outcome: out}, nil
	}

	id, err := s.repo.Save(ctx, su)
	switch {
	case errors.Is(err, domain.ErrConflict):
		// Someone registered the email between the lookup and the save.
		s.logger.InfoContext(ctx, "signup lost email race",
			slog.String("operation", "Register"),
		)
		return &ports.RegisterResult{Outcome: validation.Invalid[signup.Signup](emailTaken())}, nil
	case err != nil && ctx.Err() != nil:
		s.logger.WarnContext(ctx, "signup save cancelled",
			slog.String("operation", "Register"),
			slog.Any("cause", context.Cause(ctx)),
		)
		return nil, fmt.Errorf("%w: saving signup: %w", validation.ErrCancelled, err)
	case err != nil:
		s.logger.ErrorContext(ctx, "failed to save signup",
			slog.String("operation", "Register"),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "signup registered", slog.String("signup_id", id.String()))
	return &ports.RegisterResult{Outcome: out, ID: id}, nil
}

// Validate runs the signup factory without storing anything.
func (s *SignupService) Validate(ctx context.Context, rec *validation.Record) (validation.Outcome[signup.Signup], error) {
	return s.validate(ctx, "Validate", rec)
}

// Get returns a stored signup.
func (s *SignupService) Get(ctx context.Context, id uuid.UUID) (signup.Signup, error) {
	s.logger.InfoContext(ctx, "fetching signup", slog.String("signup_id", id.String()))

	su, err := s.repo.Get(ctx, id)
	if err != nil && ctx.Err() != nil {
		return signup.Signup{}, fmt.Errorf("%w: fetching signup: %w", validation.ErrCancelled, err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch signup",
			slog.String("operation", "Get"),
			slog.String("signup_id", id.String()),
			slog.Any("error", err),
		)
		return signup.Signup{}, err
	}
	return su, nil
}

func (s *SignupService) validate(
	ctx context.Context,
	op string,
	rec *validation.Record,
) (validation.Outcome[signup.Signup], error) {
	ctx, span := s.tracer.Start(ctx, "SignupService."+op,
		trace.WithAttributes(telemetry.AttrFactory.String(s.factory.Name())),
	)
	defer span.End()

	start := time.Now()
	out, err := s.factory.TryCreate(ctx, rec)
	result := resultOf(out, err)

	s.metrics.RecordOutcome(ctx, s.factory.Name(), result, time.Since(start))
	span.SetAttributes(telemetry.AttrResult.String(result))

	switch result {
	case telemetry.ResultUnavailable:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "signup validation could not complete",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	case telemetry.ResultCancelled:
		s.logger.WarnContext(ctx, "signup validation cancelled",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	case telemetry.ResultInvalid:
		s.logger.InfoContext(ctx, "signup rejected",
			slog.String("operation", op),
			slog.Any("fields", out.Errors().Fields()),
		)
	}
	return out, err
}

// observe turns factory state changes into span events.
func (s *SignupService) observe(ctx context.Context, factory string, state validation.State) {
	trace.SpanFromContext(ctx).AddEvent("validation."+state.String(),
		trace.WithAttributes(attribute.String("validation.factory", factory)),
	)
	s.logger.DebugContext(ctx, "validation state",
		slog.String("factory", factory),
		slog.String("state", state.String()),
	)
}

func resultOf(out validation.Outcome[signup.Signup], err error) string {
	switch {
	case errors.Is(err, validation.ErrCancelled):
		return telemetry.ResultCancelled
	case err != nil:
		return telemetry.ResultUnavailable
	case out.IsValid():
		return telemetry.ResultValid
	default:
		return telemetry.ResultInvalid
	}
}

func emailTaken() validation.Error {
	return validation.Error{
		Path:    []string{user.FieldEmail},
		Kind:    validation.KindReferential,
		Message: validation.Label(user.FieldEmail) + " is already registered",
	}
}
