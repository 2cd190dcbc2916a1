package ports

import (
	"context"

	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/actionplan"
	"github.com/jsamuelsen11/auditforce/internal/domain/audit"
	"github.com/jsamuelsen11/auditforce/internal/domain/grid"
	"github.com/jsamuelsen11/auditforce/internal/domain/meeting"
	"github.com/jsamuelsen11/auditforce/internal/domain/notification"
	"github.com/jsamuelsen11/auditforce/internal/domain/policy"
	"github.com/jsamuelsen11/auditforce/internal/domain/user"
)

// UserService defines the service port for user accounts and sessions.
// Implemented by the domain store; called by inbound adapters (handlers).
type UserService interface {
	// AddUser registers a user. The e-mail must be unique ignoring case;
	// a collision returns a *domain.RejectionError (domain.ErrConflict).
	AddUser(ctx context.Context, d user.Draft) (*user.User, error)

	// UpdateUser replaces the editable fields of a user.
	// Returns domain.ErrNotFound if the user does not exist.
	UpdateUser(ctx context.Context, id string, d user.Draft) (*user.User, error)

	// UpdateUserAvatar points the user's avatar at an uploaded file.
	UpdateUserAvatar(ctx context.Context, id string, f domain.File) (*user.User, error)

	// Login verifies the credentials and marks the user Online.
	// Returns an error wrapping domain.ErrForbidden on bad credentials.
	Login(ctx context.Context, email, password string) (*user.User, error)

	// Logout marks the user Offline.
	Logout(ctx context.Context, id string) (*user.User, error)

	ListUsers(ctx context.Context) []user.User
	GetUser(ctx context.Context, id string) (*user.User, error)
}

// GridService defines the service port for audit checklists.
type GridService interface {
	// SaveGrid creates or updates a grid. Existing audits are unaffected.
	SaveGrid(ctx context.Context, cmd domain.Save[grid.Draft]) (*grid.Grid, error)

	// DeleteGrid removes a grid. A grid referenced by any audit is kept and
	// a *domain.RejectionError carries the reason.
	DeleteGrid(ctx context.Context, id string) error

	ListGrids(ctx context.Context) []grid.Grid
	GetGrid(ctx context.Context, id string) (*grid.Grid, error)
}

// AuditService defines the service port for audits and their findings.
type AuditService interface {
	// AddAudit schedules an audit and snapshots one finding per requirement
	// of the referenced grid.
	// Returns domain.ErrNotFound if the grid does not exist.
	AddAudit(ctx context.Context, d audit.Draft) (*audit.Audit, error)

	// UpdateAuditStatus moves an audit to a new status. Entering Concluído
	// notifies every administrator.
	UpdateAuditStatus(ctx context.Context, id string, status audit.Status) (*audit.Audit, error)

	// Finding mutations locate the finding across all audits. They return
	// domain.ErrNotFound for unknown ids and a *domain.RejectionError once
	// the owning audit is concluded.
	UpdateFindingStatus(ctx context.Context, findingID string, status audit.FindingStatus) (*audit.Finding, error)
	UpdateFindingDescription(ctx context.Context, findingID, description string) (*audit.Finding, error)
	AddAttachment(ctx context.Context, findingID string, f domain.File) (*audit.Attachment, error)
	DeleteAttachment(ctx context.Context, findingID, attachmentID string) error

	ListAudits(ctx context.Context) []audit.Audit
	GetAudit(ctx context.Context, id string) (*audit.Audit, error)
	AuditReport(ctx context.Context, id string) (*AuditReport, error)
}

// ActionPlanService defines the service port for 5W2H action plans.
type ActionPlanService interface {
	// SaveActionPlan creates or updates a plan and notifies the responsible
	// user when the plan is new or was reassigned.
	SaveActionPlan(ctx context.Context, cmd domain.Save[actionplan.Draft]) (*actionplan.ActionPlan, error)

	// UpdateActionPlanStatus changes only the plan status.
	UpdateActionPlanStatus(ctx context.Context, id string, status actionplan.Status) (*actionplan.ActionPlan, error)

	// AddFollowUp records progress on a plan and notifies the responsible
	// user unless they are the author.
	AddFollowUp(ctx context.Context, planID, content, authorID string) (*actionplan.FollowUp, error)

	ListActionPlans(ctx context.Context, filter actionplan.Filter) []actionplan.ActionPlan
	GetActionPlan(ctx context.Context, id string) (*actionplan.ActionPlan, error)
}

// PolicyService defines the service port for versioned policies.
type PolicyService interface {
	// SavePolicy creates a policy or edits its live head. With
	// opts.CreateNewVersion the previous head is archived and the minor
	// version is incremented.
	// Returns domain.ErrPrecondition when an author is required but missing.
	SavePolicy(ctx context.Context, cmd domain.Save[policy.Draft], opts policy.SaveOptions) (*policy.Policy, error)

	// DeletePolicy removes the head and every archived version.
	DeletePolicy(ctx context.Context, id string) error

	ListPolicies(ctx context.Context) []policy.Policy
	GetPolicy(ctx context.Context, id string) (*policy.Policy, error)
	ListPolicyHistory(ctx context.Context, id string) []policy.Policy
}

// MeetingService defines the service port for policy review meetings.
type MeetingService interface {
	// SaveMeeting schedules or edits a meeting and notifies its attendees.
	SaveMeeting(ctx context.Context, cmd domain.Save[meeting.Draft]) (*meeting.Meeting, error)

	// DeleteMeeting cancels a meeting and notifies its attendees.
	DeleteMeeting(ctx context.Context, id string) error

	ListMeetings(ctx context.Context, filter meeting.Filter) []meeting.Meeting
	GetMeeting(ctx context.Context, id string) (*meeting.Meeting, error)
}

// NotificationService defines the service port for in-app notifications.
type NotificationService interface {
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int, error)

	// ListNotifications returns a user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string) []notification.Notification
}

// AuditReport gathers an audit with everything its printed report shows.
type AuditReport struct {
	Audit       audit.Audit
	Grid        *grid.Grid
	Auditor     *user.User
	ActionPlans []actionplan.ActionPlan
	// Summary counts findings per status.
	Summary map[audit.FindingStatus]int
}
