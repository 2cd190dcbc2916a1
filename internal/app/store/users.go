package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/user"
	"github.com/jsamuelsen11/auditforce/internal/platform/password"
)

const (
	emailTakenReason = "Já existe um usuário com este e-mail."
	kindUser         = "user"
)

// ErrInvalidCredentials is returned by Login when the e-mail is unknown or
// the password does not match.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)

// AddUser creates an Offline user. E-mail addresses are unique regardless of
// case; a collision is rejected.
func (s *Store) AddUser(ctx context.Context, d user.Draft) (_ *user.User, err error) {
	ctx, done := s.begin(ctx, "AddUser")
	defer func() { done(err) }()

	if err := d.Validate(); err != nil {
		return nil, err
	}
	hash, err := s.hashIfSet(d.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(d.Email, "") {
		return nil, domain.Reject(emailTakenReason)
	}

	u := user.User{
		ID:           s.ids.NewID(),
		Name:         d.Name,
		Email:        d.Email,
		Role:         d.Role,
		AvatarURL:    d.AvatarURL,
		PasswordHash: hash,
		Status:       user.StatusOffline,
	}
	if u.AvatarURL == "" {
		u.AvatarURL = user.DefaultAvatarURL(u.ID)
	}
	s.state.users = append(s.state.users, u)

	s.log(ctx).InfoContext(ctx, "user added", slog.String("user_id", u.ID), slog.String("role", u.Role.String()))
	return &u, nil
}

// UpdateUser replaces the editable fields of a user. An empty password keeps
// the current one; an empty avatar keeps the current avatar.
func (s *Store) UpdateUser(ctx context.Context, id string, d user.Draft) (_ *user.User, err error) {
	ctx, done := s.begin(ctx, "UpdateUser", attribute.String("user_id", id))
	defer func() { done(err) }()

	if err := d.Validate(); err != nil {
		return nil, err
	}
	hash, err := s.hashIfSet(d.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.user(id)
	if u == nil {
		return nil, domain.NotFound(kindUser, id)
	}
	if s.emailTaken(d.Email, id) {
		return nil, domain.Reject(emailTakenReason)
	}

	u.Name = d.Name
	u.Email = d.Email
	u.Role = d.Role
	if d.AvatarURL != "" {
		u.AvatarURL = d.AvatarURL
	}
	if hash != "" {
		u.PasswordHash = hash
	}

	s.log(ctx).InfoContext(ctx, "user updated", slog.String("user_id", id))
	out := cloneUser(*u)
	return &out, nil
}

// UpdateUserAvatar points the user's avatar at an uploaded file.
func (s *Store) UpdateUserAvatar(ctx context.Context, id string, f domain.File) (_ *user.User, err error) {
	ctx, done := s.begin(ctx, "UpdateUserAvatar", attribute.String("user_id", id))
	defer func() { done(err) }()

	if err := f.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.user(id)
	if u == nil {
		return nil, domain.NotFound(kindUser, id)
	}
	u.AvatarURL = f.URL

	s.log(ctx).InfoContext(ctx, "user avatar updated", slog.String("user_id", id))
	out := cloneUser(*u)
	return &out, nil
}

// Login marks the user with the given e-mail Online. Users without a stored
// password sign in by e-mail alone.
func (s *Store) Login(ctx context.Context, email, plaintext string) (_ *user.User, err error) {
	ctx, done := s.begin(ctx, "Login")
	defer func() { done(err) }()

	s.mu.RLock()
	var id, hash string
	for i := range s.state.users {
		if user.NormalizeEmail(s.state.users[i].Email) == user.NormalizeEmail(email) {
			id, hash = s.state.users[i].ID, s.state.users[i].PasswordHash
			break
		}
	}
	s.mu.RUnlock()

	if id == "" {
		return nil, ErrInvalidCredentials
	}
	if hash != "" {
		if err := s.hasher.Verify(hash, plaintext); err != nil {
			if errors.Is(err, password.ErrMismatch) {
				return nil, ErrInvalidCredentials
			}
			return nil, fmt.Errorf("verifying password: %w", err)
		}
	}

	return s.setUserStatus(ctx, id, user.StatusOnline)
}

// Logout marks the user Offline.
func (s *Store) Logout(ctx context.Context, id string) (_ *user.User, err error) {
	ctx, done := s.begin(ctx, "Logout", attribute.String("user_id", id))
	defer func() { done(err) }()

	return s.setUserStatus(ctx, id, user.StatusOffline)
}

func (s *Store) setUserStatus(ctx context.Context, id string, status user.Status) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.user(id)
	if u == nil {
		return nil, domain.NotFound(kindUser, id)
	}
	u.Status = status

	s.log(ctx).InfoContext(ctx, "user status changed", slog.String("user_id", id), slog.String("status", status.String()))
	out := cloneUser(*u)
	return &out, nil
}

// ListUsers returns every user in creation order.
func (s *Store) ListUsers(_ context.Context) []user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.state.users, cloneUser)
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(_ context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.user(id)
	if u == nil {
		return nil, domain.NotFound(kindUser, id)
	}
	out := cloneUser(*u)
	return &out, nil
}

func (s *Store) hashIfSet(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	return s.hasher.Hash(plaintext)
}

// user returns a pointer into the canonical slice. Callers hold s.mu.
func (s *Store) user(id string) *user.User {
	i := slices.IndexFunc(s.state.users, func(u user.User) bool { return u.ID == id })
	if i < 0 {
		return nil
	}
	return &s.state.users[i]
}

// emailTaken reports whether a user other than exceptID uses email.
func (s *Store) emailTaken(email, exceptID string) bool {
	key := user.NormalizeEmail(email)
	for i := range s.state.users {
		if s.state.users[i].ID != exceptID && user.NormalizeEmail(s.state.users[i].Email) == key {
			return true
		}
	}
	return false
}

// administratorIDs returns the ids of every Administrator in creation order.
func (s *Store) administratorIDs() []string {
	var out []string
	for i := range s.state.users {
		if s.state.users[i].IsAdministrator() {
			out = append(out, s.state.users[i].ID)
		}
	}
	return out
}
