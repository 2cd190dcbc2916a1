package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/dto"
	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/actionplan"
	"github.com/jsamuelsen11/auditforce/internal/ports"
)

// ActionPlanHandler handles HTTP requests for 5W2H action plans and their
// follow-ups.
type ActionPlanHandler struct {
	svc ports.ActionPlanService
}

// NewActionPlanHandler creates a new ActionPlanHandler with the given service port.
func NewActionPlanHandler(svc ports.ActionPlanService) *ActionPlanHandler {
	return &ActionPlanHandler{svc: svc}
}

// ListActionPlans handles GET /api/v1/action-plans. The findingId,
// performanceIndicatorId, who and status query parameters narrow the list.
func (h *ActionPlanHandler) ListActionPlans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := actionplan.Filter{
		FindingID:              q.Get("findingId"),
		PerformanceIndicatorID: q.Get("performanceIndicatorId"),
		Who:                    q.Get("who"),
		Status:                 actionplan.Status(q.Get("status")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"status": "invalid filter value"},
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.ToActionPlanListResponse(h.svc.ListActionPlans(r.Context(), filter)))
}

// GetActionPlan handles GET /api/v1/action-plans/{id}.
func (h *ActionPlanHandler) GetActionPlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	p, err := h.svc.GetActionPlan(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToActionPlanResponse(p))
}

// CreateActionPlan handles POST /api/v1/action-plans.
func (h *ActionPlanHandler) CreateActionPlan(w http.ResponseWriter, r *http.Request) {
	var req dto.ActionPlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.SaveActionPlan(r.Context(), domain.Create(req.Draft()))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToActionPlanResponse(created))
}

// UpdateActionPlan handles PUT /api/v1/action-plans/{id}.
func (h *ActionPlanHandler) UpdateActionPlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.ActionPlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.SaveActionPlan(r.Context(), domain.Update(id, req.Draft()))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToActionPlanResponse(updated))
}

// UpdateActionPlanStatus handles PATCH /api/v1/action-plans/{id}/status.
func (h *ActionPlanHandler) UpdateActionPlanStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.ActionPlanStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateActionPlanStatus(r.Context(), id, actionplan.Status(req.Status))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToActionPlanResponse(updated))
}

// AddFollowUp handles POST /api/v1/action-plans/{id}/follow-ups. The acting
// user is recorded as the author.
func (h *ActionPlanHandler) AddFollowUp(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	author, err := requireActor(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.FollowUpRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	fu, err := h.svc.AddFollowUp(r.Context(), id, req.Content, author)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToFollowUpResponse(fu))
}
