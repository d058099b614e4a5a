package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MArjun666/ProjectFlow-fullstack-app/middleware"
	"github.com/MArjun666/ProjectFlow-fullstack-app/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	Service *services.ProjectService
}

func NewTaskHandler(service *services.ProjectService) *TaskHandler {
	return &TaskHandler{Service: service}
}

type AcceptanceUpdateRequest struct {
	AcceptanceStatus string `json:"acceptanceStatus"`
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req services.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	currentUser := middleware.CurrentUser(r)
	task, err := h.Service.CreateTask(r.Context(), currentUser, mux.Vars(r)["projectId"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req services.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	vars := mux.Vars(r)
	currentUser := middleware.CurrentUser(r)
	task, err := h.Service.UpdateTask(r.Context(), currentUser, vars["projectId"], vars["taskId"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	currentUser := middleware.CurrentUser(r)
	if err := h.Service.DeleteTask(r.Context(), currentUser, vars["projectId"], vars["taskId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateTaskAcceptance handles the assignee's accept/reject decision.
func (h *TaskHandler) UpdateTaskAcceptance(w http.ResponseWriter, r *http.Request) {
	var req AcceptanceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	vars := mux.Vars(r)
	currentUser := middleware.CurrentUser(r)
	task, err := h.Service.UpdateTaskAcceptance(r.Context(), currentUser, vars["projectId"], vars["taskId"], req.AcceptanceStatus)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// GetMyTasks returns the caller's assigned tasks across all their projects.
func (h *TaskHandler) GetMyTasks(w http.ResponseWriter, r *http.Request) {
	currentUser := middleware.CurrentUser(r)
	tasks, err := h.Service.ListMyTasks(r.Context(), currentUser)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
