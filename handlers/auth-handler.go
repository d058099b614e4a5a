package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MArjun666/ProjectFlow-fullstack-app/middleware"
	"github.com/MArjun666/ProjectFlow-fullstack-app/models"
	"github.com/MArjun666/ProjectFlow-fullstack-app/services"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.Service.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.Service.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	currentUser := middleware.CurrentUser(r)
	writeJSON(w, http.StatusOK, models.NewUserResponse(currentUser))
}

// Check reports the caller's authentication state with role authorities.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	currentUser := middleware.CurrentUser(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"email":       currentUser.Email,
		"role":        string(currentUser.Role),
		"authorities": currentUser.Authorities(),
	})
}
