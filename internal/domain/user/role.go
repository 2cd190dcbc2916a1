package user

// Role is the user's function within the compliance program.
type Role string

const (
	RoleAuditor       Role = "Auditor"
	RoleManager       Role = "Manager"
	RoleEmployee      Role = "Employee"
	RoleAdministrator Role = "Administrator"
)

// IsValid returns true if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleAuditor, RoleManager, RoleEmployee, RoleAdministrator:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Status is the user's presence.
type Status string

const (
	StatusOnline  Status = "Online"
	StatusOffline Status = "Offline"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	return s == StatusOnline || s == StatusOffline
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
