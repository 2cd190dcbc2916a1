// Package store is the in-memory Domain Store: the canonical collections of
// users, grids, audits, action plans, policies, meetings and notifications,
// and every mutation over them.
//
// A Store serializes mutations behind one lock and hands out deep copies, so
// callers never share memory with the canonical state. Notification fanout
// runs inside the mutation that triggers it, after the entity change.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/auditforce/internal/app/fanout"
	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/notification"
	"github.com/jsamuelsen11/auditforce/internal/platform/ids"
	"github.com/jsamuelsen11/auditforce/internal/platform/logging"
	"github.com/jsamuelsen11/auditforce/internal/platform/password"
	"github.com/jsamuelsen11/auditforce/internal/platform/telemetry"
	"github.com/jsamuelsen11/auditforce/internal/ports"
)

const (
	// HealthName identifies the store in readiness reports.
	HealthName = "domain-store"

	tracerName = "github.com/jsamuelsen11/auditforce/internal/app/store"
)

// Compile-time checks that Store implements every service port.
var (
	_ ports.UserService         = (*Store)(nil)
	_ ports.GridService         = (*Store)(nil)
	_ ports.AuditService        = (*Store)(nil)
	_ ports.ActionPlanService   = (*Store)(nil)
	_ ports.PolicyService       = (*Store)(nil)
	_ ports.MeetingService      = (*Store)(nil)
	_ ports.NotificationService = (*Store)(nil)
	_ ports.HealthChecker       = (*Store)(nil)
)

// Store owns all domain state. The zero value is not usable; call New.
type Store struct {
	mu    sync.RWMutex
	state state

	ids     ids.Source
	now     func() time.Time
	hasher  *password.Hasher
	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  trace.Tracer
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs sets the identifier source.
func WithIDs(src ids.Source) Option {
	return func(s *Store) { s.ids = src }
}

// WithHasher sets the password hasher.
func WithHasher(h *password.Hasher) Option {
	return func(s *Store) { s.hasher = h }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics enables the domain counters.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithTracerProvider sets the provider spans are started from. The global
// provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Store) { s.tracer = tp.Tracer(tracerName) }
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		state:  newState(),
		now:    func() time.Time { return time.Now().UTC() },
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = ids.NewRandom()
	}
	if s.hasher == nil {
		s.hasher = password.NewHasher(0)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return HealthName }

// HealthCheck implements ports.HealthChecker. The store has no external
// dependencies, so it is healthy unless ctx is already done.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(domain.ErrUnavailable, err)
	}
	return nil
}

// begin opens a span for a mutation and returns a completion func that
// records the outcome on the span, the mutation counter and the log.
func (s *Store) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "store."+op, trace.WithAttributes(attrs...))

	return ctx, func(err error) {
		defer span.End()

		result := "ok"
		if err != nil {
			result = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			logAttrs := []any{slog.String("operation", op)}
			for _, a := range attrs {
				logAttrs = append(logAttrs, slog.String(string(a.Key), a.Value.Emit()))
			}
			logAttrs = append(logAttrs, slog.Any("error", err))
			if isCallerError(err) {
				s.log(ctx).WarnContext(ctx, "mutation rejected", logAttrs...)
			} else {
				s.log(ctx).ErrorContext(ctx, "mutation failed", logAttrs...)
			}
		}

		if s.metrics != nil {
			s.metrics.StoreMutationTotal.Add(ctx, 1, metric.WithAttributes(
				telemetry.AttrOperation.String(op),
				telemetry.AttrResult.String(result),
			))
		}
	}
}

// log returns the request-scoped logger carried by ctx, or the store's own.
func (s *Store) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}

func isCallerError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrPrecondition) ||
		errors.Is(err, domain.ErrForbidden)
}

// notify appends one unread notification per message. Callers hold s.mu.
func (s *Store) notify(ctx context.Context, msgs []fanout.Message) {
	if len(msgs) == 0 {
		return
	}
	now := s.now()
	for _, m := range msgs {
		s.state.notifications = append(s.state.notifications, notification.Notification{
			ID:        s.ids.NewSortableID(),
			UserID:    m.UserID,
			Message:   m.Text,
			Timestamp: now,
		})
	}
	if s.metrics != nil {
		s.metrics.NotificationCreatedTotal.Add(ctx, int64(len(msgs)))
	}
	s.log(ctx).InfoContext(ctx, "notifications created", slog.Int("count", len(msgs)))
}
