package handler

import (
	"net/http"

	"github.com/dangerclosesec/fieldwork/internal/service"
)

// DirectoryHandler serves organizations and their contacts.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

func (h *DirectoryHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.directory.ListOrganizations(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orgs)
}

func (h *DirectoryHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOrganizationInput
	if !decodeJSON(w, r, &input) {
		return
	}
	org, err := h.directory.CreateOrganization(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, org)
}

func (h *DirectoryHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	org, err := h.directory.GetOrganization(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, org)
}

func (h *DirectoryHandler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateOrganizationInput
	if !decodeJSON(w, r, &input) {
		return
	}
	org, err := h.directory.UpdateOrganization(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, org)
}

func (h *DirectoryHandler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.directory.DeleteOrganization(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListContacts accepts an optional organization_id filter.
func (h *DirectoryHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	orgID, err := queryUUID(r, "organization_id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	contacts, err := h.directory.ListContacts(r.Context(), orgID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, contacts)
}

func (h *DirectoryHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var input service.CreateContactInput
	if !decodeJSON(w, r, &input) {
		return
	}
	contact, err := h.directory.CreateContact(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, contact)
}

func (h *DirectoryHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	contact, err := h.directory.GetContact(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, contact)
}

func (h *DirectoryHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input service.UpdateContactInput
	if !decodeJSON(w, r, &input) {
		return
	}
	contact, err := h.directory.UpdateContact(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, contact)
}

func (h *DirectoryHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.directory.DeleteContact(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
