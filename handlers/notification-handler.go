package handlers

import (
	"net/http"

	"github.com/MArjun666/ProjectFlow-fullstack-app/middleware"
	"github.com/MArjun666/ProjectFlow-fullstack-app/services"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	currentUser := middleware.CurrentUser(r)
	list, err := h.Service.ListForUser(r.Context(), currentUser)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	currentUser := middleware.CurrentUser(r)
	if err := h.Service.MarkAsRead(r.Context(), currentUser, mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	currentUser := middleware.CurrentUser(r)
	if err := h.Service.MarkAllAsRead(r.Context(), currentUser); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
