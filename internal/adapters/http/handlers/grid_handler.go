package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/dto"
	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/ports"
)

// GridHandler handles HTTP requests for audit grids.
type GridHandler struct {
	svc ports.GridService
}

// NewGridHandler creates a new GridHandler with the given service port.
func NewGridHandler(svc ports.GridService) *GridHandler {
	return &GridHandler{svc: svc}
}

// ListGrids handles GET /api/v1/grids.
func (h *GridHandler) ListGrids(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.ToGridListResponse(h.svc.ListGrids(r.Context())))
}

// GetGrid handles GET /api/v1/grids/{id}.
func (h *GridHandler) GetGrid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	g, err := h.svc.GetGrid(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToGridResponse(g))
}

// CreateGrid handles POST /api/v1/grids.
func (h *GridHandler) CreateGrid(w http.ResponseWriter, r *http.Request) {
	var req dto.GridRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.SaveGrid(r.Context(), domain.Create(req.Draft()))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToGridResponse(created))
}

// UpdateGrid handles PUT /api/v1/grids/{id}. Audits already created from the
// grid keep their findings.
func (h *GridHandler) UpdateGrid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.GridRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.SaveGrid(r.Context(), domain.Update(id, req.Draft()))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToGridResponse(updated))
}

// DeleteGrid handles DELETE /api/v1/grids/{id}. A grid still used by an
// audit is answered with 409 Conflict.
func (h *GridHandler) DeleteGrid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteGrid(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
