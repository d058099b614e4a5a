package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleProjectManager UserRole = "projectManager"
	RoleTeamMember     UserRole = "teamMember"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      UserRole           `bson:"role" json:"role"`
	Avatar    string             `bson:"avatar" json:"avatar"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ParseUserRole maps a free-text role string to a UserRole. Anything
// unrecognized falls back to the least-privileged role.
func ParseUserRole(role string) UserRole {
	switch UserRole(role) {
	case RoleAdmin, RoleProjectManager, RoleTeamMember:
		return UserRole(role)
	default:
		return RoleTeamMember
	}
}

// Authorities returns the granted-authority strings for the user's role,
// e.g. "ROLE_ADMIN" or "ROLE_PROJECTMANAGER".
func (u *User) Authorities() []string {
	if u.Role == "" {
		return []string{}
	}
	return []string{"ROLE_" + strings.ToUpper(string(u.Role))}
}
