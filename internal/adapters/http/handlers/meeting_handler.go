package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/dto"
	"github.com/jsamuelsen11/auditforce/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/meeting"
	"github.com/jsamuelsen11/auditforce/internal/ports"
)

// MeetingHandler handles HTTP requests for policy review meetings.
type MeetingHandler struct {
	svc ports.MeetingService
}

// NewMeetingHandler creates a new MeetingHandler with the given service port.
func NewMeetingHandler(svc ports.MeetingService) *MeetingHandler {
	return &MeetingHandler{svc: svc}
}

// ListMeetings handles GET /api/v1/meetings. The date, policyId and userId
// query parameters narrow the list.
func (h *MeetingHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := meeting.Filter{
		Date:     q.Get("date"),
		PolicyID: q.Get("policyId"),
		UserID:   q.Get("userId"),
	}

	writeJSON(w, http.StatusOK, dto.ToMeetingListResponse(h.svc.ListMeetings(r.Context(), filter)))
}

// GetMeeting handles GET /api/v1/meetings/{id}.
func (h *MeetingHandler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	m, err := h.svc.GetMeeting(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMeetingResponse(m))
}

// CreateMeeting handles POST /api/v1/meetings. The acting user organizes the
// meeting unless the body names an organizer.
func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMeeting(w, r)
	if !ok {
		return
	}

	created, err := h.svc.SaveMeeting(r.Context(), domain.Create(req.Draft()))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToMeetingResponse(created))
}

// UpdateMeeting handles PUT /api/v1/meetings/{id}.
func (h *MeetingHandler) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	req, ok := decodeMeeting(w, r)
	if !ok {
		return
	}

	updated, err := h.svc.SaveMeeting(r.Context(), domain.Update(id, req.Draft()))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMeetingResponse(updated))
}

// DeleteMeeting handles DELETE /api/v1/meetings/{id}.
func (h *MeetingHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteMeeting(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeMeeting decodes and validates a MeetingRequest, defaulting the
// organizer to the acting user.
func decodeMeeting(w http.ResponseWriter, r *http.Request) (*dto.MeetingRequest, bool) {
	var req dto.MeetingRequest
	if !decodeAndValidate(w, r, &req) {
		return nil, false
	}
	if req.OrganizerID == "" {
		req.OrganizerID = middleware.ActorFromContext(r.Context())
	}
	return &req, true
}
