package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/dto"
	"github.com/jsamuelsen11/auditforce/internal/domain/audit"
	"github.com/jsamuelsen11/auditforce/internal/ports"
)

// AuditHandler handles HTTP requests for audits, their findings and the
// files attached to findings.
type AuditHandler struct {
	svc ports.AuditService
}

// NewAuditHandler creates a new AuditHandler with the given service port.
func NewAuditHandler(svc ports.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// ListAudits handles GET /api/v1/audits.
func (h *AuditHandler) ListAudits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.ToAuditListResponse(h.svc.ListAudits(r.Context())))
}

// GetAudit handles GET /api/v1/audits/{id}.
func (h *AuditHandler) GetAudit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	a, err := h.svc.GetAudit(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAuditResponse(a))
}

// CreateAudit handles POST /api/v1/audits.
func (h *AuditHandler) CreateAudit(w http.ResponseWriter, r *http.Request) {
	var req dto.AuditRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.AddAudit(r.Context(), req.Draft())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToAuditResponse(created))
}

// UpdateAuditStatus handles PATCH /api/v1/audits/{id}/status.
func (h *AuditHandler) UpdateAuditStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.AuditStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateAuditStatus(r.Context(), id, audit.Status(req.Status))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAuditResponse(updated))
}

// GetAuditReport handles GET /api/v1/audits/{id}/report.
func (h *AuditHandler) GetAuditReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	report, err := h.svc.AuditReport(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAuditReportResponse(report))
}

// UpdateFindingStatus handles PATCH /api/v1/findings/{id}/status.
func (h *AuditHandler) UpdateFindingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.FindingStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	f, err := h.svc.UpdateFindingStatus(r.Context(), id, audit.FindingStatus(req.Status))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToFindingResponse(f))
}

// UpdateFindingDescription handles PATCH /api/v1/findings/{id}/description.
func (h *AuditHandler) UpdateFindingDescription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.FindingDescriptionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	f, err := h.svc.UpdateFindingDescription(r.Context(), id, req.Description)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToFindingResponse(f))
}

// AddAttachment handles POST /api/v1/findings/{id}/attachments.
func (h *AuditHandler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.FileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	att, err := h.svc.AddAttachment(r.Context(), id, req.File())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToAttachmentResponse(att))
}

// DeleteAttachment handles DELETE /api/v1/findings/{id}/attachments/{attachmentId}.
func (h *AuditHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	findingID, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	attachmentID, err := pathID(r, "attachmentId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteAttachment(r.Context(), findingID, attachmentID); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
