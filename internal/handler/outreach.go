package handler

import (
	"net/http"

	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/dangerclosesec/fieldwork/internal/service"
)

// OutreachHandler serves outreach records and the meetings scheduled from
// them.
type OutreachHandler struct {
	outreach *service.OutreachService
	meetings *service.MeetingService
}

func NewOutreachHandler(outreach *service.OutreachService, meetings *service.MeetingService) *OutreachHandler {
	return &OutreachHandler{outreach: outreach, meetings: meetings}
}

// ListOutreach lists a trip's outreach, optionally filtered by ?response=.
func (h *OutreachHandler) ListOutreach(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	records, err := h.outreach.ListOutreach(r.Context(), id, queryEnum[model.OutreachResponse](r, "response"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

func (h *OutreachHandler) OutreachSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	summary, err := h.outreach.GetOutreachSummary(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}

func (h *OutreachHandler) CreateOutreach(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOutreachInput
	if !decodeJSON(w, r, &input) {
		return
	}
	outreach, err := h.outreach.CreateOutreach(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, outreach)
}

func (h *OutreachHandler) GetOutreach(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	outreach, err := h.outreach.GetOutreach(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, outreach)
}

func (h *OutreachHandler) UpdateOutreach(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateOutreachInput
	if !decodeJSON(w, r, &input) {
		return
	}
	outreach, err := h.outreach.UpdateOutreach(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, outreach)
}

func (h *OutreachHandler) UpdateOutreachResponse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateOutreachResponseInput
	if !decodeJSON(w, r, &input) {
		return
	}
	updated, err := h.outreach.UpdateOutreachResponse(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, IDResponse{BaseResponse: BaseResponse{Ok: true}, ID: updated})
}

func (h *OutreachHandler) DeleteOutreach(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.outreach.DeleteOutreach(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMeetings accepts optional trip_id and status filters. A trip_id makes
// the status filter moot.
func (h *OutreachHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	tripID, err := queryUUID(r, "trip_id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	meetings, err := h.meetings.ListMeetings(r.Context(), repository.MeetingFilter{
		TripID: tripID,
		Status: queryEnum[model.EngagementStatus](r, "status"),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, meetings)
}

func (h *OutreachHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var input service.CreateMeetingInput
	if !decodeJSON(w, r, &input) {
		return
	}
	meeting, err := h.meetings.CreateMeeting(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, meeting)
}

func (h *OutreachHandler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	meeting, err := h.meetings.GetMeeting(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, meeting)
}

func (h *OutreachHandler) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateMeetingInput
	if !decodeJSON(w, r, &input) {
		return
	}
	meeting, err := h.meetings.UpdateMeeting(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, meeting)
}

func (h *OutreachHandler) UpdateMeetingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateStatusInput
	if !decodeJSON(w, r, &input) {
		return
	}
	updated, err := h.meetings.UpdateMeetingStatus(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, IDResponse{BaseResponse: BaseResponse{Ok: true}, ID: updated})
}

func (h *OutreachHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.meetings.DeleteMeeting(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SyncMeetings creates any meeting missing for the trip's scheduled outreach.
func (h *OutreachHandler) SyncMeetings(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	created, err := h.meetings.SyncMeetings(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, created)
}
