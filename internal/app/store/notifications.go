package store

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/notification"
)

const kindNotification = "notification"

// MarkNotificationRead flags one notification as read.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) (err error) {
	ctx, done := s.begin(ctx, "MarkNotificationRead", attribute.String("notification_id", id))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.notifications {
		if s.state.notifications[i].ID == id {
			s.state.notifications[i].Read = true
			s.log(ctx).InfoContext(ctx, "notification read", slog.String("notification_id", id))
			return nil
		}
	}
	return domain.NotFound(kindNotification, id)
}

// MarkAllNotificationsRead flags every unread notification of a user as read
// and returns how many changed.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) (_ int, err error) {
	ctx, done := s.begin(ctx, "MarkAllNotificationsRead", attribute.String("user_id", userID))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for i := range s.state.notifications {
		if s.state.notifications[i].UserID == userID && !s.state.notifications[i].Read {
			s.state.notifications[i].Read = true
			n++
		}
	}

	s.log(ctx).InfoContext(ctx, "notifications read", slog.String("user_id", userID), slog.Int("count", n))
	return n, nil
}

// ListNotifications returns a user's notifications, newest first.
func (s *Store) ListNotifications(_ context.Context, userID string) []notification.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []notification.Notification
	for i := len(s.state.notifications) - 1; i >= 0; i-- {
		if s.state.notifications[i].UserID == userID {
			out = append(out, s.state.notifications[i])
		}
	}
	return out
}
