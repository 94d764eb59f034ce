package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/SscSPs/expense_tracker/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Events  clients.EventPublisher
	Metrics *metrics.Metrics
	Clock   func() time.Time
}

// BaseOption configures the shared parts of a service.
type BaseOption func(*BaseService)

// WithEventPublisher publishes domain events after successful writes.
func WithEventPublisher(p clients.EventPublisher) BaseOption {
	return func(s *BaseService) {
		s.Events = p
	}
}

// WithMetrics counts dropped events on m.
func WithMetrics(m *metrics.Metrics) BaseOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

// WithClock overrides the wall clock, mostly for tests.
func WithClock(now func() time.Time) BaseOption {
	return func(s *BaseService) {
		s.Clock = now
	}
}

func (s *BaseService) apply(opts []BaseOption) {
	for _, opt := range opts {
		opt(s)
	}
	if s.Clock == nil {
		s.Clock = time.Now
	}
}

// Now returns the service clock's current time.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// NowMillis returns the service clock's current time in Unix milliseconds.
func (s *BaseService) NowMillis() int64 {
	return s.Now().UnixMilli()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Publish sends a domain event. Delivery is best effort: failures are logged and counted, never returned.
func (s *BaseService) Publish(ctx context.Context, eventType, userID, entityID string, payload map[string]any) {
	if s.Events == nil {
		return
	}
	event := clients.Event{
		Type:       eventType,
		UserID:     userID,
		EntityID:   entityID,
		OccurredAt: s.NowMillis(),
		Payload:    payload,
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		s.Metrics.EventDropped(eventType)
		s.LogError(ctx, err, "Failed to publish event",
			slog.String("type", eventType),
			slog.String("entity_id", entityID))
	}
}
