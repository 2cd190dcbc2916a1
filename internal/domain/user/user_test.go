package user

import (
	"errors"
	"testing"

	"github.com/jsamuelsen11/auditforce/internal/domain"
)

func validDraft() Draft {
	return Draft{
		Name:  "Bob Auditor",
		Email: "auditor@example.com",
		Role:  RoleAuditor,
	}
}

func TestRole_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role Role
		want bool
	}{
		{RoleAuditor, true},
		{RoleManager, true},
		{RoleEmployee, true},
		{RoleAdministrator, true},
		{"", false},
		{"administrator", false},
		{"Owner", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()
			if got := tt.role.IsValid(); got != tt.want {
				t.Errorf("Role(%q).IsValid() = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestDraft_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*Draft)
		wantField string
	}{
		{name: "valid draft passes", modify: func(_ *Draft) {}},
		{name: "empty name fails", modify: func(d *Draft) { d.Name = " " }, wantField: "name"},
		{name: "empty email fails", modify: func(d *Draft) { d.Email = "" }, wantField: "email"},
		{name: "malformed email fails", modify: func(d *Draft) { d.Email = "not-an-email" }, wantField: "email"},
		{name: "unknown role fails", modify: func(d *Draft) { d.Role = "Owner" }, wantField: "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := validDraft()
			tt.modify(&d)
			err := d.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("errors.As(err, *ValidationError) = false, got %v", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("Fields missing key %q, got %v", tt.wantField, verr.Fields)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  Manager@Outlook.COM "); got != "manager@outlook.com" {
		t.Errorf("NormalizeEmail() = %q, want %q", got, "manager@outlook.com")
	}
}
