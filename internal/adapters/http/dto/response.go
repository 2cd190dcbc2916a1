// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/auditforce/internal/domain/actionplan"
	"github.com/jsamuelsen11/auditforce/internal/domain/audit"
	"github.com/jsamuelsen11/auditforce/internal/domain/grid"
	"github.com/jsamuelsen11/auditforce/internal/domain/meeting"
	"github.com/jsamuelsen11/auditforce/internal/domain/notification"
	"github.com/jsamuelsen11/auditforce/internal/domain/policy"
	"github.com/jsamuelsen11/auditforce/internal/domain/user"
	"github.com/jsamuelsen11/auditforce/internal/ports"
)

// ListResponse wraps a collection with its size.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// toList maps every element with fn into a ListResponse. Items is never nil.
func toList[E, T any](in []E, fn func(*E) T) ListResponse[T] {
	items := make([]T, len(in))
	for i := range in {
		items[i] = fn(&in[i])
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}

// UserResponse represents a user in HTTP responses. The password hash is
// never exposed.
type UserResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AvatarURL   string `json:"avatarUrl"`
	Status      string `json:"status"`
	HasPassword bool   `json:"hasPassword"`
}

// ToUserResponse converts a domain User to an HTTP response DTO.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role.String(),
		AvatarURL:   u.AvatarURL,
		Status:      u.Status.String(),
		HasPassword: u.HasPassword(),
	}
}

// ToUserListResponse converts users to a list response.
func ToUserListResponse(users []user.User) ListResponse[UserResponse] {
	return toList(users, ToUserResponse)
}

// RequirementResponse is one checklist item of a grid.
type RequirementResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Guidance    string `json:"guidance,omitempty"`
}

// GridResponse represents a grid in HTTP responses.
type GridResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Scope        string                `json:"scope"`
	Description  string                `json:"description"`
	Requirements []RequirementResponse `json:"requirements"`
}

// ToGridResponse converts a domain Grid to an HTTP response DTO.
func ToGridResponse(g *grid.Grid) GridResponse {
	reqs := make([]RequirementResponse, len(g.Requirements))
	for i, r := range g.Requirements {
		reqs[i] = RequirementResponse{ID: r.ID, Title: r.Title, Description: r.Description, Guidance: r.Guidance}
	}
	return GridResponse{
		ID:           g.ID,
		Title:        g.Title,
		Scope:        g.Scope,
		Description:  g.Description,
		Requirements: reqs,
	}
}

// ToGridListResponse converts grids to a list response.
func ToGridListResponse(grids []grid.Grid) ListResponse[GridResponse] {
	return toList(grids, ToGridResponse)
}

// AttachmentResponse represents a piece of evidence attached to a finding.
type AttachmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// ToAttachmentResponse converts a domain Attachment to an HTTP response DTO.
func ToAttachmentResponse(a *audit.Attachment) AttachmentResponse {
	return AttachmentResponse{ID: a.ID, Name: a.Name, URL: a.URL, Size: a.Size}
}

// FindingResponse represents a finding in HTTP responses.
type FindingResponse struct {
	ID            string               `json:"id"`
	RequirementID string               `json:"requirementId"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Status        string               `json:"status"`
	Attachments   []AttachmentResponse `json:"attachments"`
}

// ToFindingResponse converts a domain Finding to an HTTP response DTO.
func ToFindingResponse(f *audit.Finding) FindingResponse {
	atts := make([]AttachmentResponse, len(f.Attachments))
	for i := range f.Attachments {
		atts[i] = ToAttachmentResponse(&f.Attachments[i])
	}
	return FindingResponse{
		ID:            f.ID,
		RequirementID: f.RequirementID,
		Title:         f.Title,
		Description:   f.Description,
		Status:        f.Status.String(),
		Attachments:   atts,
	}
}

// AuditResponse represents an audit with its findings in HTTP responses.
type AuditResponse struct {
	ID        string            `json:"id"`
	Code      string            `json:"code"`
	Title     string            `json:"title"`
	Scope     string            `json:"scope"`
	AuditorID string            `json:"auditorId"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Status    string            `json:"status"`
	GridID    string            `json:"gridId"`
	Findings  []FindingResponse `json:"findings"`
}

// ToAuditResponse converts a domain Audit to an HTTP response DTO.
func ToAuditResponse(a *audit.Audit) AuditResponse {
	findings := make([]FindingResponse, len(a.Findings))
	for i := range a.Findings {
		findings[i] = ToFindingResponse(&a.Findings[i])
	}
	return AuditResponse{
		ID:        a.ID,
		Code:      a.Code,
		Title:     a.Title,
		Scope:     a.Scope,
		AuditorID: a.AuditorID,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		Status:    a.Status.String(),
		GridID:    a.GridID,
		Findings:  findings,
	}
}

// ToAuditListResponse converts audits to a list response.
func ToAuditListResponse(audits []audit.Audit) ListResponse[AuditResponse] {
	return toList(audits, ToAuditResponse)
}

// AuditReportResponse represents the printable report of an audit.
type AuditReportResponse struct {
	Audit       AuditResponse        `json:"audit"`
	Grid        *GridResponse        `json:"grid,omitempty"`
	Auditor     *UserResponse        `json:"auditor,omitempty"`
	ActionPlans []ActionPlanResponse `json:"actionPlans"`
	Summary     map[string]int       `json:"summary"`
}

// ToAuditReportResponse converts an audit report to an HTTP response DTO.
func ToAuditReportResponse(r *ports.AuditReport) AuditReportResponse {
	resp := AuditReportResponse{
		Audit:       ToAuditResponse(&r.Audit),
		ActionPlans: toList(r.ActionPlans, ToActionPlanResponse).Items,
		Summary:     make(map[string]int, len(r.Summary)),
	}
	if r.Grid != nil {
		g := ToGridResponse(r.Grid)
		resp.Grid = &g
	}
	if r.Auditor != nil {
		u := ToUserResponse(r.Auditor)
		resp.Auditor = &u
	}
	for status, n := range r.Summary {
		resp.Summary[status.String()] = n
	}
	return resp
}

// FollowUpResponse represents one follow-up of an action plan.
type FollowUpResponse struct {
	ID        string `json:"id"`
	AuthorID  string `json:"authorId"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ToFollowUpResponse converts a domain FollowUp to an HTTP response DTO.
func ToFollowUpResponse(f *actionplan.FollowUp) FollowUpResponse {
	return FollowUpResponse{
		ID:        f.ID,
		AuthorID:  f.AuthorID,
		Content:   f.Content,
		Timestamp: f.Timestamp.Format(time.RFC3339),
	}
}

// ActionPlanResponse represents a 5W2H action plan in HTTP responses.
type ActionPlanResponse struct {
	ID                     string             `json:"id"`
	FindingID              string             `json:"findingId,omitempty"`
	PerformanceIndicatorID string             `json:"performanceIndicatorId,omitempty"`
	What                   string             `json:"what"`
	Why                    string             `json:"why"`
	Where                  string             `json:"where"`
	When                   string             `json:"when"`
	Who                    string             `json:"who"`
	How                    string             `json:"how"`
	HowMuch                *float64           `json:"howMuch,omitempty"`
	Status                 string             `json:"status"`
	FollowUps              []FollowUpResponse `json:"followUps"`
}

// ToActionPlanResponse converts a domain ActionPlan to an HTTP response DTO.
func ToActionPlanResponse(p *actionplan.ActionPlan) ActionPlanResponse {
	return ActionPlanResponse{
		ID:                     p.ID,
		FindingID:              p.FindingID,
		PerformanceIndicatorID: p.PerformanceIndicatorID,
		What:                   p.What,
		Why:                    p.Why,
		Where:                  p.Where,
		When:                   p.When,
		Who:                    p.Who,
		How:                    p.How,
		HowMuch:                p.HowMuch,
		Status:                 p.Status.String(),
		FollowUps:              toList(p.FollowUps, ToFollowUpResponse).Items,
	}
}

// ToActionPlanListResponse converts action plans to a list response.
func ToActionPlanListResponse(plans []actionplan.ActionPlan) ListResponse[ActionPlanResponse] {
	return toList(plans, ToActionPlanResponse)
}

// IndicatorResponse represents a performance indicator of a policy.
type IndicatorResponse struct {
	ID            string  `json:"id"`
	Objective     string  `json:"objective"`
	Department    string  `json:"department"`
	ResponsibleID string  `json:"responsibleId"`
	Goal          float64 `json:"goal"`
	ActualValue   float64 `json:"actualValue"`
	BelowGoal     bool    `json:"belowGoal"`
}

// ChangeEntryResponse is one entry of a policy change history.
type ChangeEntryResponse struct {
	Version     string `json:"version"`
	UpdatedAt   string `json:"updatedAt"`
	Description string `json:"description"`
	AuthorID    string `json:"authorId"`
}

// PolicyResponse represents a policy version in HTTP responses.
type PolicyResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Category      string                `json:"category"`
	Version       string                `json:"version"`
	Content       string                `json:"content"`
	Status        string                `json:"status"`
	CreatedAt     string                `json:"createdAt"`
	UpdatedAt     string                `json:"updatedAt"`
	Indicators    []IndicatorResponse   `json:"performanceIndicators"`
	ChangeHistory []ChangeEntryResponse `json:"changeHistory"`
}

// ToPolicyResponse converts a domain Policy to an HTTP response DTO.
func ToPolicyResponse(p *policy.Policy) PolicyResponse {
	inds := make([]IndicatorResponse, len(p.Indicators))
	for i := range p.Indicators {
		in := &p.Indicators[i]
		inds[i] = IndicatorResponse{
			ID:            in.ID,
			Objective:     in.Objective,
			Department:    in.Department,
			ResponsibleID: in.ResponsibleID,
			Goal:          in.Goal,
			ActualValue:   in.ActualValue,
			BelowGoal:     in.BelowGoal(),
		}
	}
	history := make([]ChangeEntryResponse, len(p.ChangeHistory))
	for i, e := range p.ChangeHistory {
		history[i] = ChangeEntryResponse{
			Version:     e.Version,
			UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
			Description: e.Description,
			AuthorID:    e.AuthorID,
		}
	}
	return PolicyResponse{
		ID:            p.ID,
		Title:         p.Title,
		Category:      p.Category,
		Version:       p.Version,
		Content:       p.Content,
		Status:        p.Status.String(),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
		Indicators:    inds,
		ChangeHistory: history,
	}
}

// ToPolicyListResponse converts policies to a list response.
func ToPolicyListResponse(policies []policy.Policy) ListResponse[PolicyResponse] {
	return toList(policies, ToPolicyResponse)
}

// MeetingResponse represents a meeting in HTTP responses.
type MeetingResponse struct {
	ID          string   `json:"id"`
	PolicyID    string   `json:"policyId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	AttendeeIDs []string `json:"attendees"`
	OrganizerID string   `json:"organizerId"`
}

// ToMeetingResponse converts a domain Meeting to an HTTP response DTO.
func ToMeetingResponse(m *meeting.Meeting) MeetingResponse {
	attendees := m.AttendeeIDs
	if attendees == nil {
		attendees = []string{}
	}
	return MeetingResponse{
		ID:          m.ID,
		PolicyID:    m.PolicyID,
		Title:       m.Title,
		Description: m.Description,
		Date:        m.Date,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		AttendeeIDs: attendees,
		OrganizerID: m.OrganizerID,
	}
}

// ToMeetingListResponse converts meetings to a list response.
func ToMeetingListResponse(meetings []meeting.Meeting) ListResponse[MeetingResponse] {
	return toList(meetings, ToMeetingResponse)
}

// NotificationResponse represents an in-app notification.
type NotificationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Read      bool   `json:"read"`
}

// NotificationListResponse lists a user's notifications with the unread count.
type NotificationListResponse struct {
	ListResponse[NotificationResponse]
	Unread int `json:"unread"`
}

// ToNotificationListResponse converts notifications to a list response.
func ToNotificationListResponse(ns []notification.Notification) NotificationListResponse {
	return NotificationListResponse{
		ListResponse: toList(ns, func(n *notification.Notification) NotificationResponse {
			return NotificationResponse{
				ID:        n.ID,
				UserID:    n.UserID,
				Message:   n.Message,
				Timestamp: n.Timestamp.Format(time.RFC3339),
				Read:      n.Read,
			}
		}),
		Unread: notification.CountUnread(ns),
	}
}

// CountResponse reports how many records an operation changed.
type CountResponse struct {
	Updated int `json:"updated"`
}
