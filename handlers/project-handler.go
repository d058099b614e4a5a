package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MArjun666/ProjectFlow-fullstack-app/middleware"
	"github.com/MArjun666/ProjectFlow-fullstack-app/services"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

type MemberAssignmentRequest struct {
	UserID string `json:"userId"`
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	currentUser := middleware.CurrentUser(r)
	projects, err := h.Service.ListProjectsForUser(r.Context(), currentUser)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req services.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	currentUser := middleware.CurrentUser(r)
	project, err := h.Service.CreateProject(r.Context(), currentUser, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	currentUser := middleware.CurrentUser(r)
	project, err := h.Service.GetProjectByID(r.Context(), currentUser, mux.Vars(r)["projectId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req services.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	currentUser := middleware.CurrentUser(r)
	project, err := h.Service.UpdateProject(r.Context(), currentUser, mux.Vars(r)["projectId"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	currentUser := middleware.CurrentUser(r)
	if err := h.Service.DeleteProject(r.Context(), currentUser, mux.Vars(r)["projectId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAssignableUsers lists the user directory for member/assignee pickers.
func (h *ProjectHandler) GetAssignableUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetAssignableUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req MemberAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	currentUser := middleware.CurrentUser(r)
	project, err := h.Service.AddMember(r.Context(), currentUser, mux.Vars(r)["projectId"], req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	currentUser := middleware.CurrentUser(r)
	project, err := h.Service.RemoveMember(r.Context(), currentUser, vars["projectId"], vars["userId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}
