package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/dto"
	"github.com/jsamuelsen11/auditforce/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/auditforce/internal/domain/user"
)

func TestCreateUser_Success(t *testing.T) {
	t.Parallel()
	h := handlers.NewUserHandler(newStore(t))

	body := dto.UserRequest{Name: "Ana", Email: "ana@example.com", Role: "Auditor", Password: "s3cret"}
	rec := httptest.NewRecorder()
	h.CreateUser(rec, newRequest(t, http.MethodPost, "/api/v1/users", body, nil))

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.UserResponse](t, rec)
	if resp.Email != "ana@example.com" || !resp.HasPassword || resp.Status != "Offline" {
		t.Errorf("response = %+v", resp)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("s3cret")) {
		t.Error("response leaked the password")
	}
}

func TestCreateUser_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body any
		want int
	}{
		{name: "invalid JSON", body: nil, want: http.StatusBadRequest},
		{name: "missing name", body: dto.UserRequest{Email: "x@example.com", Role: "Auditor"}, want: http.StatusBadRequest},
		{name: "bad role", body: dto.UserRequest{Name: "X", Email: "x@example.com", Role: "Boss"}, want: http.StatusBadRequest},
		{name: "duplicate e-mail", body: dto.UserRequest{Name: "X", Email: "ANA@example.com", Role: "Auditor"}, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newStore(t)
			seedUser(t, s, "Ana", "ana@example.com", user.RoleAuditor)
			h := handlers.NewUserHandler(s)

			req := newRequest(t, http.MethodPost, "/api/v1/users", tt.body, nil)
			if tt.body == nil {
				req = httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBufferString("{bad"))
			}
			rec := httptest.NewRecorder()
			h.CreateUser(rec, req)

			requireStatus(t, rec, tt.want)
		})
	}
}

func TestGetUser(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	u := seedUser(t, s, "Ana", "ana@example.com", user.RoleAuditor)
	h := handlers.NewUserHandler(s)

	rec := httptest.NewRecorder()
	h.GetUser(rec, newRequest(t, http.MethodGet, "/api/v1/users/"+u.ID, nil, map[string]string{"id": u.ID}))
	requireStatus(t, rec, http.StatusOK)

	rec = httptest.NewRecorder()
	h.GetUser(rec, newRequest(t, http.MethodGet, "/api/v1/users/nope", nil, map[string]string{"id": "nope"}))
	requireStatus(t, rec, http.StatusNotFound)
}

func TestListUsers(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	seedUser(t, s, "Ana", "ana@example.com", user.RoleAuditor)
	seedUser(t, s, "Bia", "bia@example.com", user.RoleManager)
	h := handlers.NewUserHandler(s)

	rec := httptest.NewRecorder()
	h.ListUsers(rec, newRequest(t, http.MethodGet, "/api/v1/users", nil, nil))

	requireStatus(t, rec, http.StatusOK)
	if resp := decodeJSON[dto.ListResponse[dto.UserResponse]](t, rec); resp.Count != 2 {
		t.Errorf("Count = %d, want 2", resp.Count)
	}
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	u := seedUser(t, s, "Ana", "ana@example.com", user.RoleAuditor)
	h := handlers.NewUserHandler(s)

	body := dto.UserRequest{Name: "Ana Lima", Email: "ana@example.com", Role: "Manager"}
	rec := httptest.NewRecorder()
	h.UpdateUser(rec, newRequest(t, http.MethodPut, "/api/v1/users/"+u.ID, body, map[string]string{"id": u.ID}))

	requireStatus(t, rec, http.StatusOK)
	if resp := decodeJSON[dto.UserResponse](t, rec); resp.Name != "Ana Lima" || resp.Role != "Manager" {
		t.Errorf("response = %+v", resp)
	}
}

func TestUploadAvatar(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	u := seedUser(t, s, "Ana", "ana@example.com", user.RoleAuditor)
	h := handlers.NewUserHandler(s)

	body := dto.FileRequest{Name: "me.png", Size: 2048, URL: "https://files.example.com/me.png"}
	rec := httptest.NewRecorder()
	h.UploadAvatar(rec, newRequest(t, http.MethodPost, "/", body, map[string]string{"id": u.ID}))

	requireStatus(t, rec, http.StatusOK)
	if resp := decodeJSON[dto.UserResponse](t, rec); resp.AvatarURL != body.URL {
		t.Errorf("AvatarURL = %q, want %q", resp.AvatarURL, body.URL)
	}
}

func TestLoginLogout(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	h := handlers.NewUserHandler(s)

	rec := httptest.NewRecorder()
	h.CreateUser(rec, newRequest(t, http.MethodPost, "/api/v1/users",
		dto.UserRequest{Name: "Ana", Email: "ana@example.com", Role: "Auditor", Password: "pw"}, nil))
	requireStatus(t, rec, http.StatusCreated)
	id := decodeJSON[dto.UserResponse](t, rec).ID

	rec = httptest.NewRecorder()
	h.Login(rec, newRequest(t, http.MethodPost, "/api/v1/sessions/login",
		dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}, nil))
	requireStatus(t, rec, http.StatusForbidden)

	rec = httptest.NewRecorder()
	h.Login(rec, newRequest(t, http.MethodPost, "/api/v1/sessions/login",
		dto.LoginRequest{Email: "ana@example.com", Password: "pw"}, nil))
	requireStatus(t, rec, http.StatusOK)
	if resp := decodeJSON[dto.UserResponse](t, rec); resp.Status != "Online" {
		t.Errorf("Status after login = %q, want Online", resp.Status)
	}

	rec = httptest.NewRecorder()
	h.Logout(rec, newRequest(t, http.MethodPost, "/", nil, map[string]string{"id": id}))
	requireStatus(t, rec, http.StatusOK)
	if resp := decodeJSON[dto.UserResponse](t, rec); resp.Status != "Offline" {
		t.Errorf("Status after logout = %q, want Offline", resp.Status)
	}
}

func TestLogin_MissingEmail(t *testing.T) {
	t.Parallel()
	h := handlers.NewUserHandler(newStore(t))

	rec := httptest.NewRecorder()
	h.Login(rec, newRequest(t, http.MethodPost, "/api/v1/sessions/login", dto.LoginRequest{}, nil))

	requireStatus(t, rec, http.StatusBadRequest)
}
