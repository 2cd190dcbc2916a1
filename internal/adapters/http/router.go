// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/auditforce/internal/adapters/http/middleware"
)

// Handlers groups the inbound handlers mounted by NewRouter.
type Handlers struct {
	Users         *handlers.UserHandler
	Grids         *handlers.GridHandler
	Audits        *handlers.AuditHandler
	ActionPlans   *handlers.ActionPlanHandler
	Policies      *handlers.PolicyHandler
	Meetings      *handlers.MeetingHandler
	Notifications *handlers.NotificationHandler
	Health        *handlers.HealthHandler
}

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is composed with middleware.Chain and applied globally, the
// first one outermost.
func NewRouter(h Handlers, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	if len(middlewares) > 0 {
		r.Use(middleware.Chain(middlewares...))
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", h.Health.Liveness)
	r.Get("/health/ready", h.Health.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		// Users and sessions.
		r.Get("/users", h.Users.ListUsers)
		r.Post("/users", h.Users.CreateUser)
		r.Get("/users/{id}", h.Users.GetUser)
		r.Put("/users/{id}", h.Users.UpdateUser)
		r.Post("/users/{id}/avatar", h.Users.UploadAvatar)
		r.Post("/users/{id}/logout", h.Users.Logout)
		r.Post("/sessions/login", h.Users.Login)

		// Notifications.
		r.Get("/users/{id}/notifications", h.Notifications.ListNotifications)
		r.Post("/users/{id}/notifications/read-all", h.Notifications.MarkAllRead)
		r.Post("/notifications/{id}/read", h.Notifications.MarkRead)

		// Grids.
		r.Get("/grids", h.Grids.ListGrids)
		r.Post("/grids", h.Grids.CreateGrid)
		r.Get("/grids/{id}", h.Grids.GetGrid)
		r.Put("/grids/{id}", h.Grids.UpdateGrid)
		r.Delete("/grids/{id}", h.Grids.DeleteGrid)

		// Audits and findings.
		r.Get("/audits", h.Audits.ListAudits)
		r.Post("/audits", h.Audits.CreateAudit)
		r.Get("/audits/{id}", h.Audits.GetAudit)
		r.Patch("/audits/{id}/status", h.Audits.UpdateAuditStatus)
		r.Get("/audits/{id}/report", h.Audits.GetAuditReport)
		r.Patch("/findings/{id}/status", h.Audits.UpdateFindingStatus)
		r.Patch("/findings/{id}/description", h.Audits.UpdateFindingDescription)
		r.Post("/findings/{id}/attachments", h.Audits.AddAttachment)
		r.Delete("/findings/{id}/attachments/{attachmentId}", h.Audits.DeleteAttachment)

		// Action plans.
		r.Get("/action-plans", h.ActionPlans.ListActionPlans)
		r.Post("/action-plans", h.ActionPlans.CreateActionPlan)
		r.Get("/action-plans/{id}", h.ActionPlans.GetActionPlan)
		r.Put("/action-plans/{id}", h.ActionPlans.UpdateActionPlan)
		r.Patch("/action-plans/{id}/status", h.ActionPlans.UpdateActionPlanStatus)
		r.Post("/action-plans/{id}/follow-ups", h.ActionPlans.AddFollowUp)

		// Policies.
		r.Get("/policies", h.Policies.ListPolicies)
		r.Post("/policies", h.Policies.CreatePolicy)
		r.Get("/policies/{id}", h.Policies.GetPolicy)
		r.Put("/policies/{id}", h.Policies.UpdatePolicy)
		r.Delete("/policies/{id}", h.Policies.DeletePolicy)
		r.Get("/policies/{id}/history", h.Policies.ListPolicyHistory)

		// Meetings.
		r.Get("/meetings", h.Meetings.ListMeetings)
		r.Post("/meetings", h.Meetings.CreateMeeting)
		r.Get("/meetings/{id}", h.Meetings.GetMeeting)
		r.Put("/meetings/{id}", h.Meetings.UpdateMeeting)
		r.Delete("/meetings/{id}", h.Meetings.DeleteMeeting)
	})

	return r
}
