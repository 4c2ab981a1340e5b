package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/dangerclosesec/fieldwork/internal/service"
)

// ActivityLogHandler handles API requests for the activity log
type ActivityLogHandler struct {
	activity *service.ActivityLogService
}

// NewActivityLogHandler creates a new activity log handler
func NewActivityLogHandler(activity *service.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{activity: activity}
}

type ActivityLogsResponse struct {
	Logs  []model.ActivityLog `json:"logs"`
	Total int64               `json:"total"`
}

// GetActivityLogs handles requests to retrieve activity logs with filtering
func (h *ActivityLogHandler) GetActivityLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := repository.QueryParams{
		Action:     query.Get("action"),
		EntityType: query.Get("entity_type"),
	}

	var err error
	if params.EntityID, err = queryUUID(r, "entity_id"); err != nil {
		handleError(w, r, err)
		return
	}
	if params.ActorID, err = queryUUID(r, "actor_id"); err != nil {
		handleError(w, r, err)
		return
	}

	if startTimeStr := query.Get("start_time"); startTimeStr != "" {
		startTime, err := time.Parse(time.RFC3339, startTimeStr)
		if err == nil {
			params.StartTime = startTime
		}
	}
	if endTimeStr := query.Get("end_time"); endTimeStr != "" {
		endTime, err := time.Parse(time.RFC3339, endTimeStr)
		if err == nil {
			params.EndTime = endTime
		}
	}

	// Pagination
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err == nil && limit > 0 {
			params.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err == nil && offset >= 0 {
			params.Offset = offset
		}
	}

	logs, total, err := h.activity.GetActivityLogs(r.Context(), params)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if logs == nil {
		logs = []model.ActivityLog{}
	}
	respondWithJSON(w, http.StatusOK, ActivityLogsResponse{Logs: logs, Total: total})
}

// GetActivityLogByID handles requests to retrieve a specific entry by ID
func (h *ActivityLogHandler) GetActivityLogByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	log, err := h.activity.GetActivityLogByID(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, log)
}
