package middleware

import (
	"context"
	"net/http"
	"strings"
)

// HeaderUserID carries the id of the user performing the request. It names
// the author of follow-ups and policy versions and the default meeting
// organizer. It is not an authentication mechanism.
const HeaderUserID = "X-User-ID"

type actorKey struct{}

// WithActor returns a new context carrying the acting user id.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the acting user id, or an empty string when the
// request did not name one.
func ActorFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(actorKey{}).(string); ok {
		return id
	}
	return ""
}

// Actor returns middleware that copies the X-User-ID header into the request
// context. Requests without the header pass through unchanged.
func Actor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(HeaderUserID))
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), id)))
		})
	}
}
