package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/user"
)

func TestStore_AddUser(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	u, err := s.AddUser(context.Background(), user.Draft{
		Name:     "Carla",
		Email:    "carla@example.com",
		Role:     user.RoleEmployee,
		Password: "password",
	})
	require.NoError(t, err)

	if u.Status != user.StatusOffline {
		t.Errorf("Status = %q, want Offline", u.Status)
	}
	if want := "https://i.pravatar.cc/150?u=" + u.ID; u.AvatarURL != want {
		t.Errorf("AvatarURL = %q, want %q", u.AvatarURL, want)
	}
	if u.PasswordHash == "" || u.PasswordHash == "password" {
		t.Errorf("PasswordHash = %q, want bcrypt hash", u.PasswordHash)
	}
}

func TestStore_AddUser_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		draft   user.Draft
		wantErr error
	}{
		{
			name:    "duplicate e-mail ignoring case",
			draft:   user.Draft{Name: "Other", Email: "CARLA@example.com", Role: user.RoleManager},
			wantErr: domain.ErrConflict,
		},
		{
			name:    "invalid payload",
			draft:   user.Draft{Name: "", Email: "x@example.com", Role: user.RoleManager},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore(t)
			mustAddUser(t, s, "Carla", "carla@example.com", user.RoleEmployee)

			_, err := s.AddUser(context.Background(), tt.draft)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddUser() error = %v, want %v", err, tt.wantErr)
			}
			if got := len(s.ListUsers(context.Background())); got != 1 {
				t.Errorf("len(ListUsers) = %d, want 1", got)
			}
		})
	}
}

func TestStore_AddUser_ConflictCarriesReason(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	mustAddUser(t, s, "Carla", "carla@example.com", user.RoleEmployee)
	_, err := s.AddUser(context.Background(), user.Draft{Name: "C", Email: "carla@example.com", Role: user.RoleEmployee})

	var rej *domain.RejectionError
	if !errors.As(err, &rej) || rej.Reason == "" {
		t.Errorf("AddUser() error = %v, want RejectionError with reason", err)
	}
}

func TestStore_UpdateUser(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	carla := mustAddUser(t, s, "Carla", "carla@example.com", user.RoleEmployee)
	other := mustAddUser(t, s, "Dan", "dan@example.com", user.RoleAuditor)

	t.Run("replaces fields and keeps avatar", func(t *testing.T) {
		got, err := s.UpdateUser(context.Background(), carla.ID, user.Draft{
			Name: "Carla M.", Email: "carla.m@example.com", Role: user.RoleManager,
		})
		require.NoError(t, err)
		if got.Name != "Carla M." || got.Role != user.RoleManager {
			t.Errorf("UpdateUser() = %+v", got)
		}
		if got.AvatarURL != carla.AvatarURL {
			t.Errorf("AvatarURL = %q, want unchanged %q", got.AvatarURL, carla.AvatarURL)
		}
	})

	t.Run("keeping own e-mail is allowed", func(t *testing.T) {
		_, err := s.UpdateUser(context.Background(), other.ID, user.Draft{
			Name: "Dan", Email: "DAN@example.com", Role: user.RoleAuditor,
		})
		require.NoError(t, err)
	})

	t.Run("taking another user's e-mail conflicts", func(t *testing.T) {
		_, err := s.UpdateUser(context.Background(), other.ID, user.Draft{
			Name: "Dan", Email: "carla.m@example.com", Role: user.RoleAuditor,
		})
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("UpdateUser() error = %v, want ErrConflict", err)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := s.ListUsers(context.Background())
		_, err := s.UpdateUser(context.Background(), "ghost", user.Draft{
			Name: "G", Email: "g@example.com", Role: user.RoleAuditor,
		})
		assertNotFound(t, err)
		if after := s.ListUsers(context.Background()); len(after) != len(before) {
			t.Errorf("users changed: %d -> %d", len(before), len(after))
		}
	})
}

func TestStore_UpdateUserAvatar(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	u := mustAddUser(t, s, "Carla", "carla@example.com", user.RoleEmployee)

	got, err := s.UpdateUserAvatar(context.Background(), u.ID, domain.File{Name: "me.png", Size: 10, URL: "blob:me"})
	require.NoError(t, err)
	if got.AvatarURL != "blob:me" {
		t.Errorf("AvatarURL = %q, want blob:me", got.AvatarURL)
	}

	_, err = s.UpdateUserAvatar(context.Background(), u.ID, domain.File{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("UpdateUserAvatar(empty file) error = %v, want ErrValidation", err)
	}
}

func TestStore_LoginLogout(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	admin := mustAddUser(t, s, "Admin", "admin@example.com", user.RoleAdministrator)
	_, err := s.AddUser(context.Background(), user.Draft{
		Name: "Carla", Email: "carla@example.com", Role: user.RoleEmployee, Password: "password",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "password user", email: "Carla@Example.com", password: "password"},
		{name: "passwordless user", email: "admin@example.com"},
		{name: "wrong password", email: "carla@example.com", password: "nope", wantErr: domain.ErrForbidden},
		{name: "missing password", email: "carla@example.com", wantErr: domain.ErrForbidden},
		{name: "unknown e-mail", email: "ghost@example.com", password: "password", wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := s.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			if u.Status != user.StatusOnline {
				t.Errorf("Status = %q, want Online", u.Status)
			}
		})
	}

	out, err := s.Logout(context.Background(), admin.ID)
	require.NoError(t, err)
	if out.Status != user.StatusOffline {
		t.Errorf("Status after Logout = %q, want Offline", out.Status)
	}

	_, err = s.Logout(context.Background(), "ghost")
	assertNotFound(t, err)
}

func TestStore_GetUser_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	u := mustAddUser(t, s, "Carla", "carla@example.com", user.RoleEmployee)

	got, err := s.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := s.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	if again.Name != "Carla" {
		t.Errorf("store shared memory with caller: Name = %q", again.Name)
	}

	_, err = s.GetUser(context.Background(), "ghost")
	assertNotFound(t, err)
}
