package handler

import (
	"net/http"

	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/dangerclosesec/fieldwork/internal/service"
)

// ProjectHandler serves projects and the network groups, experts and calls
// that belong to them.
type ProjectHandler struct {
	projects *service.ProjectService
	experts  *service.ExpertService
	calls    *service.CallService
}

func NewProjectHandler(projects *service.ProjectService, experts *service.ExpertService, calls *service.CallService) *ProjectHandler {
	return &ProjectHandler{projects: projects, experts: experts, calls: calls}
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListProjects(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var input service.CreateProjectInput
	if !decodeJSON(w, r, &input) {
		return
	}
	project, err := h.projects.CreateProject(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	project, err := h.projects.GetProject(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateProjectInput
	if !decodeJSON(w, r, &input) {
		return
	}
	project, err := h.projects.UpdateProject(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.projects.DeleteProject(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) ListNetworkGroups(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	groups, err := h.projects.ListNetworkGroups(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, groups)
}

func (h *ProjectHandler) CreateNetworkGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.CreateNetworkGroupInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ProjectID = id

	group, err := h.projects.CreateNetworkGroup(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, group)
}

func (h *ProjectHandler) GetNetworkGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	group, err := h.projects.GetNetworkGroup(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, group)
}

func (h *ProjectHandler) UpdateNetworkGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateNetworkGroupInput
	if !decodeJSON(w, r, &input) {
		return
	}
	group, err := h.projects.UpdateNetworkGroup(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, group)
}

func (h *ProjectHandler) DeleteNetworkGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.projects.DeleteNetworkGroup(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) ListExperts(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	experts, err := h.experts.ListExperts(r.Context(), id, queryEnum[model.ExpertStatus](r, "status"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, experts)
}

func (h *ProjectHandler) ExpertStatusCounts(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	counts, err := h.experts.GetExpertStatusCounts(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, counts)
}

func (h *ProjectHandler) CreateExpert(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.CreateExpertInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ProjectID = id

	expert, err := h.experts.CreateExpert(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, expert)
}

func (h *ProjectHandler) GetExpert(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	expert, err := h.experts.GetExpert(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, expert)
}

func (h *ProjectHandler) UpdateExpert(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateExpertInput
	if !decodeJSON(w, r, &input) {
		return
	}
	expert, err := h.experts.UpdateExpert(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, expert)
}

func (h *ProjectHandler) UpdateExpertStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateExpertStatusInput
	if !decodeJSON(w, r, &input) {
		return
	}
	updated, err := h.experts.UpdateExpertStatus(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, IDResponse{BaseResponse: BaseResponse{Ok: true}, ID: updated})
}

func (h *ProjectHandler) DeleteExpert(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.experts.DeleteExpert(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCalls accepts optional project_id, expert_id and status filters.
func (h *ProjectHandler) ListCalls(w http.ResponseWriter, r *http.Request) {
	projectID, err := queryUUID(r, "project_id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	expertID, err := queryUUID(r, "expert_id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	calls, err := h.calls.ListCalls(r.Context(), repository.CallFilter{
		ProjectID: projectID,
		ExpertID:  expertID,
		Status:    queryEnum[model.EngagementStatus](r, "status"),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, calls)
}

func (h *ProjectHandler) CreateCall(w http.ResponseWriter, r *http.Request) {
	var input service.CreateCallInput
	if !decodeJSON(w, r, &input) {
		return
	}
	call, err := h.calls.CreateCall(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, call)
}

func (h *ProjectHandler) GetCall(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	call, err := h.calls.GetCall(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, call)
}

func (h *ProjectHandler) UpdateCall(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateCallInput
	if !decodeJSON(w, r, &input) {
		return
	}
	call, err := h.calls.UpdateCall(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, call)
}

func (h *ProjectHandler) UpdateCallStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateStatusInput
	if !decodeJSON(w, r, &input) {
		return
	}
	updated, err := h.calls.UpdateCallStatus(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, IDResponse{BaseResponse: BaseResponse{Ok: true}, ID: updated})
}

func (h *ProjectHandler) DeleteCall(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.calls.DeleteCall(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
