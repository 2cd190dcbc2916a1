package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/dto"
	"github.com/jsamuelsen11/auditforce/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/ports"
)

// PolicyHandler handles HTTP requests for versioned policies. The acting
// user authors every version written through it.
type PolicyHandler struct {
	svc ports.PolicyService
}

// NewPolicyHandler creates a new PolicyHandler with the given service port.
func NewPolicyHandler(svc ports.PolicyService) *PolicyHandler {
	return &PolicyHandler{svc: svc}
}

// ListPolicies handles GET /api/v1/policies. Only live heads are listed.
func (h *PolicyHandler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.ToPolicyListResponse(h.svc.ListPolicies(r.Context())))
}

// GetPolicy handles GET /api/v1/policies/{id}.
func (h *PolicyHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	p, err := h.svc.GetPolicy(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPolicyResponse(p))
}

// ListPolicyHistory handles GET /api/v1/policies/{id}/history and returns
// the archived versions of the policy.
func (h *PolicyHandler) ListPolicyHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if _, err := h.svc.GetPolicy(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPolicyListResponse(h.svc.ListPolicyHistory(r.Context(), id)))
}

// CreatePolicy handles POST /api/v1/policies. Without an X-User-ID header
// the request is answered with 422.
func (h *PolicyHandler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req dto.PolicyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	opts := req.Options(middleware.ActorFromContext(r.Context()))
	created, err := h.svc.SavePolicy(r.Context(), domain.Create(req.Draft()), opts)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToPolicyResponse(created))
}

// UpdatePolicy handles PUT /api/v1/policies/{id}. With createNewVersion the
// current head is archived and the response carries the new version.
func (h *PolicyHandler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.PolicyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	opts := req.Options(middleware.ActorFromContext(r.Context()))
	updated, err := h.svc.SavePolicy(r.Context(), domain.Update(id, req.Draft()), opts)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPolicyResponse(updated))
}

// DeletePolicy handles DELETE /api/v1/policies/{id}.
func (h *PolicyHandler) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeletePolicy(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
