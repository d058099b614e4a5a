package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MArjun666/ProjectFlow-fullstack-app/logging"
	"github.com/MArjun666/ProjectFlow-fullstack-app/models"
	"github.com/MArjun666/ProjectFlow-fullstack-app/repositories"
	"github.com/MArjun666/ProjectFlow-fullstack-app/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// CurrentUser returns the authenticated user stored by Authenticate, or nil.
// Every service call takes this user as an explicit actor argument; nothing
// downstream reads it ambiently.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}

// Authenticate validates the bearer token and resolves its subject to a full
// user record, which is stored in the request context.
func Authenticate(users repositories.UserRepository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logging.Logger.Warnf("Missing Authorization header for %s %s", r.Method, r.URL.Path)
				unauthorized(w, "Authorization header missing")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			userID, err := utils.ValidateToken(tokenStr)
			if err != nil {
				logging.Logger.Warnf("Invalid token for %s %s: %v", r.Method, r.URL.Path, err)
				unauthorized(w, "Invalid or expired token")
				return
			}

			objectID, err := primitive.ObjectIDFromHex(userID)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			user, err := users.FindByID(r.Context(), objectID)
			if err != nil {
				logging.Logger.Errorf("Failed to resolve token subject %s: %v", userID, err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles is the coarse route-level gate; the fine-grained membership
// checks live in the service layer.
func RequireRoles(roles ...models.UserRole) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r)
			if user == nil {
				unauthorized(w, "Authorization required")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			logging.Logger.Warnf("User %s with role %s denied access to %s %s", user.Email, user.Role, r.Method, r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"message": "Access Denied: You do not have the required role for this action."})
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
