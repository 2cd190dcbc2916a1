package dto

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/actionplan"
	"github.com/jsamuelsen11/auditforce/internal/domain/audit"
	"github.com/jsamuelsen11/auditforce/internal/domain/grid"
	"github.com/jsamuelsen11/auditforce/internal/domain/meeting"
	"github.com/jsamuelsen11/auditforce/internal/domain/policy"
	"github.com/jsamuelsen11/auditforce/internal/domain/user"
)

// UserRequest represents the JSON body for creating or updating a user.
// On update an empty password or avatar keeps the current value.
type UserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Password  string `json:"password,omitempty"`
}

// Draft converts the request into a domain user payload.
func (r *UserRequest) Draft() user.Draft {
	return user.Draft{
		Name:      r.Name,
		Email:     r.Email,
		Role:      user.Role(r.Role),
		AvatarURL: r.AvatarURL,
		Password:  r.Password,
	}
}

// Validate applies the domain user rules.
func (r *UserRequest) Validate() error {
	d := r.Draft()
	return d.Validate()
}

// LoginRequest represents the JSON body for POST /sessions/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Validate checks that an e-mail was supplied.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return &domain.ValidationError{Fields: map[string]string{"email": domain.MsgRequired}}
	}
	return nil
}

// FileRequest describes an uploaded file by reference. Used for avatars and
// finding attachments.
type FileRequest struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// File converts the request into a domain file reference.
func (r *FileRequest) File() domain.File {
	return domain.File{Name: r.Name, Size: r.Size, URL: r.URL}
}

// Validate applies the domain file rules.
func (r *FileRequest) Validate() error {
	f := r.File()
	return f.Validate()
}

// RequirementRequest is one checklist item of a GridRequest.
type RequirementRequest struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Guidance    string `json:"guidance,omitempty"`
}

// GridRequest represents the JSON body for creating or updating a grid.
type GridRequest struct {
	Title        string               `json:"title"`
	Scope        string               `json:"scope"`
	Description  string               `json:"description"`
	Requirements []RequirementRequest `json:"requirements"`
}

// Draft converts the request into a domain grid payload.
func (r *GridRequest) Draft() grid.Draft {
	reqs := make([]grid.Requirement, len(r.Requirements))
	for i, q := range r.Requirements {
		reqs[i] = grid.Requirement{
			ID:          q.ID,
			Title:       q.Title,
			Description: q.Description,
			Guidance:    q.Guidance,
		}
	}
	return grid.Draft{
		Title:        r.Title,
		Scope:        r.Scope,
		Description:  r.Description,
		Requirements: reqs,
	}
}

// Validate applies the domain grid rules.
func (r *GridRequest) Validate() error {
	d := r.Draft()
	return d.Validate()
}

// AuditRequest represents the JSON body for scheduling an audit.
type AuditRequest struct {
	Title     string `json:"title"`
	Scope     string `json:"scope"`
	AuditorID string `json:"auditorId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	GridID    string `json:"gridId"`
}

// Draft converts the request into a domain audit payload.
func (r *AuditRequest) Draft() audit.Draft {
	return audit.Draft{
		Title:     r.Title,
		Scope:     r.Scope,
		AuditorID: r.AuditorID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		GridID:    r.GridID,
	}
}

// Validate applies the domain audit rules.
func (r *AuditRequest) Validate() error {
	d := r.Draft()
	return d.Validate()
}

// AuditStatusRequest represents the JSON body for PATCH /audits/{id}/status.
type AuditStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks that the status is a known audit status.
func (r *AuditStatusRequest) Validate() error {
	return validateStatus(audit.Status(r.Status).IsValid(), r.Status)
}

// FindingStatusRequest represents the JSON body for PATCH /findings/{id}/status.
type FindingStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks that the status is a known finding status.
func (r *FindingStatusRequest) Validate() error {
	return validateStatus(audit.FindingStatus(r.Status).IsValid(), r.Status)
}

// FindingDescriptionRequest represents the JSON body for
// PATCH /findings/{id}/description. An empty description clears it.
type FindingDescriptionRequest struct {
	Description string `json:"description"`
}

// Validate accepts any description.
func (r *FindingDescriptionRequest) Validate() error { return nil }

// ActionPlanRequest represents the JSON body for creating or updating a 5W2H
// action plan. Exactly one of FindingID and PerformanceIndicatorID is set.
type ActionPlanRequest struct {
	FindingID              string   `json:"findingId,omitempty"`
	PerformanceIndicatorID string   `json:"performanceIndicatorId,omitempty"`
	What                   string   `json:"what"`
	Why                    string   `json:"why"`
	Where                  string   `json:"where"`
	When                   string   `json:"when"`
	Who                    string   `json:"who"`
	How                    string   `json:"how"`
	HowMuch                *float64 `json:"howMuch,omitempty"`
	Status                 string   `json:"status,omitempty"`
}

// Draft converts the request into a domain action plan payload.
func (r *ActionPlanRequest) Draft() actionplan.Draft {
	return actionplan.Draft{
		FindingID:              r.FindingID,
		PerformanceIndicatorID: r.PerformanceIndicatorID,
		What:                   r.What,
		Why:                    r.Why,
		Where:                  r.Where,
		When:                   r.When,
		Who:                    r.Who,
		How:                    r.How,
		HowMuch:                r.HowMuch,
		Status:                 actionplan.Status(r.Status),
	}
}

// Validate applies the domain action plan rules.
func (r *ActionPlanRequest) Validate() error {
	d := r.Draft()
	return d.Validate()
}

// ActionPlanStatusRequest represents the JSON body for
// PATCH /action-plans/{id}/status.
type ActionPlanStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks that the status is a known plan status.
func (r *ActionPlanStatusRequest) Validate() error {
	return validateStatus(actionplan.Status(r.Status).IsValid(), r.Status)
}

// FollowUpRequest represents the JSON body for POST /action-plans/{id}/follow-ups.
// The author is the acting user.
type FollowUpRequest struct {
	Content string `json:"content"`
}

// Validate checks that the content is not blank.
func (r *FollowUpRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return &domain.ValidationError{Fields: map[string]string{"content": domain.MsgRequired}}
	}
	return nil
}

// IndicatorRequest is one performance indicator of a PolicyRequest. New
// indicators may omit the id or carry a temp- placeholder.
type IndicatorRequest struct {
	ID            string  `json:"id,omitempty"`
	Objective     string  `json:"objective"`
	Department    string  `json:"department"`
	ResponsibleID string  `json:"responsibleId"`
	Goal          float64 `json:"goal"`
	ActualValue   float64 `json:"actualValue"`
}

// PolicyRequest represents the JSON body for creating or updating a policy.
// CreateNewVersion archives the current head and moves to the next minor
// version. The author is the acting user.
type PolicyRequest struct {
	Title             string             `json:"title"`
	Category          string             `json:"category"`
	Content           string             `json:"content"`
	Status            string             `json:"status,omitempty"`
	Indicators        []IndicatorRequest `json:"performanceIndicators"`
	CreateNewVersion  bool               `json:"createNewVersion,omitempty"`
	ChangeDescription string             `json:"changeDescription,omitempty"`
}

// Draft converts the request into a domain policy payload.
func (r *PolicyRequest) Draft() policy.Draft {
	inds := make([]policy.Indicator, len(r.Indicators))
	for i, in := range r.Indicators {
		inds[i] = policy.Indicator{
			ID:            in.ID,
			Objective:     in.Objective,
			Department:    in.Department,
			ResponsibleID: in.ResponsibleID,
			Goal:          in.Goal,
			ActualValue:   in.ActualValue,
		}
	}
	return policy.Draft{
		Title:      r.Title,
		Category:   r.Category,
		Content:    r.Content,
		Status:     policy.Status(r.Status),
		Indicators: inds,
	}
}

// Options returns the versioning options for a save by authorID.
func (r *PolicyRequest) Options(authorID string) policy.SaveOptions {
	return policy.SaveOptions{
		CreateNewVersion:  r.CreateNewVersion,
		ChangeDescription: r.ChangeDescription,
		AuthorID:          authorID,
	}
}

// Validate applies the domain policy rules.
func (r *PolicyRequest) Validate() error {
	d := r.Draft()
	return d.Validate()
}

// MeetingRequest represents the JSON body for scheduling or editing a meeting.
// When OrganizerID is empty the acting user organizes the meeting.
type MeetingRequest struct {
	PolicyID    string   `json:"policyId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	AttendeeIDs []string `json:"attendees"`
	OrganizerID string   `json:"organizerId,omitempty"`
}

// Draft converts the request into a domain meeting payload.
func (r *MeetingRequest) Draft() meeting.Draft {
	return meeting.Draft{
		PolicyID:    r.PolicyID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		AttendeeIDs: r.AttendeeIDs,
		OrganizerID: r.OrganizerID,
	}
}

// Validate applies the domain meeting rules.
func (r *MeetingRequest) Validate() error {
	d := r.Draft()
	return d.Validate()
}

func validateStatus(valid bool, status string) error {
	if valid {
		return nil
	}
	return &domain.ValidationError{Fields: map[string]string{"status": fmt.Sprintf("invalid: %q", status)}}
}
