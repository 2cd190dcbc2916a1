// Package user defines the User entity: the people who audit, manage, own
// action plans and attend policy meetings.
package user

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/jsamuelsen11/auditforce/internal/domain"
)

const defaultAvatarBase = "https://i.pravatar.cc/150?u="

// User is a person known to the system. Users are never hard-deleted.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	AvatarURL    string
	PasswordHash string
	Status       Status
}

// HasPassword reports whether the user signs in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// IsAdministrator reports whether the user holds the Administrator role.
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

// Draft carries the editable fields of a user. Password is plaintext and is
// hashed by the store; an empty Password leaves any existing hash unchanged.
type Draft struct {
	Name      string
	Email     string
	Role      Role
	AvatarURL string
	Password  string
}

// Validate checks business rules for a user payload.
func (d *Draft) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(d.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if strings.TrimSpace(d.Email) == "" {
		fields["email"] = domain.MsgRequired
	} else if _, err := mail.ParseAddress(d.Email); err != nil {
		fields["email"] = fmt.Sprintf("invalid address: %q", d.Email)
	}
	if !d.Role.IsValid() {
		fields["role"] = fmt.Sprintf("invalid: %q", d.Role)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// NormalizeEmail returns the case-insensitive comparison form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultAvatarURL returns the placeholder avatar used when none is supplied.
func DefaultAvatarURL(seed string) string {
	return defaultAvatarBase + seed
}
