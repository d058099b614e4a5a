package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MArjun666/ProjectFlow-fullstack-app/logging"
	"github.com/MArjun666/ProjectFlow-fullstack-app/models"
	"github.com/MArjun666/ProjectFlow-fullstack-app/repositories"
	"github.com/MArjun666/ProjectFlow-fullstack-app/utils"

	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Login verifies the credentials and issues a signed token. Both an unknown
// email and a wrong password fail with the same invalid-credentials error so
// the response does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serviceErrorf(ErrInvalidCredentials, "Invalid email or password.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, serviceErrorf(ErrInvalidCredentials, "Invalid email or password.")
	}

	token, err := utils.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %v", err)
	}

	return models.NewAuthResponse(token, user), nil
}

// Register creates the user and immediately performs the login flow for the
// new credentials. An unrecognized role string silently becomes teamMember.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, serviceErrorf(ErrEmailTaken, "An account with the email '%s' already exists.", req.Email)
	}

	role := models.ParseUserRole(req.Role)
	if string(role) != req.Role {
		logging.Logger.Warnf("Registration received unrecognized role %q, defaulting to %s", req.Role, models.RoleTeamMember)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      role,
		Avatar:    req.Avatar,
		CreatedAt: time.Now(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Registered new user %s with role %s", user.Email, user.Role)
	return s.Login(ctx, LoginRequest{Email: req.Email, Password: req.Password})
}
