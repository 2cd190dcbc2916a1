package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/middleware"
)

func TestActor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "header is copied into context", header: "user-2", want: "user-2"},
		{name: "surrounding spaces are trimmed", header: "  user-3 ", want: "user-3"},
		{name: "missing header leaves no actor", header: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			handler := middleware.Actor()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = middleware.ActorFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/action-plans/p1/follow-ups", http.NoBody)
			if tt.header != "" {
				req.Header.Set(middleware.HeaderUserID, tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("ActorFromContext = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActorFromContext_NotFound(t *testing.T) {
	t.Parallel()

	if got := middleware.ActorFromContext(context.Background()); got != "" {
		t.Errorf("ActorFromContext = %q, want empty string", got)
	}
}
