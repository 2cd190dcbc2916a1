package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/auditforce/internal/app/store"
	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/grid"
	"github.com/jsamuelsen11/auditforce/internal/domain/user"
	"github.com/jsamuelsen11/auditforce/internal/platform/ids"
	"github.com/jsamuelsen11/auditforce/internal/platform/password"
)

var testTime = time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(
		store.WithClock(func() time.Time { return testTime }),
		store.WithIDs(ids.NewSequence("id")),
		store.WithHasher(password.NewHasher(bcrypt.MinCost)),
	)
}

func seedUser(t *testing.T, s *store.Store, name, email string, role user.Role) *user.User {
	t.Helper()
	u, err := s.AddUser(context.Background(), user.Draft{Name: name, Email: email, Role: role})
	require.NoError(t, err)
	return u
}

func seedGrid(t *testing.T, s *store.Store, titles ...string) *grid.Grid {
	t.Helper()
	reqs := make([]grid.Requirement, len(titles))
	for i, title := range titles {
		reqs[i] = grid.Requirement{Title: title}
	}
	g, err := s.SaveGrid(context.Background(), domain.Create(grid.Draft{Title: "ISO 27001", Requirements: reqs}))
	require.NoError(t, err)
	return g
}

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withActor(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.WithActor(r.Context(), userID))
}

// newRequest builds a request with an optional JSON body and chi path params.
func newRequest(t *testing.T, method, target string, body any, params map[string]string) *http.Request {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != nil {
		rdr = jsonBody(t, body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if params != nil {
		req = withChiParams(req, params)
	}
	return req
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
