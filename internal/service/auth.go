package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/secondecom/eshop/internal/events"
	"github.com/secondecom/eshop/internal/hash"
	"github.com/secondecom/eshop/internal/logging"
	"github.com/secondecom/eshop/internal/models"
	"github.com/secondecom/eshop/internal/repo"
	"github.com/secondecom/eshop/internal/tokens"
	"github.com/secondecom/eshop/internal/transport"
)

type AuthService struct {
	Repo      *repo.GormRepo
	Events    events.Publisher
	JWTSecret []byte
	AccessTTL time.Duration
}

type LoginResult struct {
	User        *models.User
	AccessToken string
	AccessExp   time.Time
}

func (s *AuthService) Signup(ctx context.Context, req transport.SignupRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.Username == "" || req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("all fields are required: %w", ErrValidation)
	}

	taken, err := s.Repo.UsernameTaken(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("username already exists: %w", ErrConflict)
	}
	taken, err = s.Repo.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("email already exists: %w", ErrConflict)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("signup_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleUser,
		Enabled:      true,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("username or email already exists: %w", ErrConflict)
		}
		return nil, err
	}

	emit(ctx, s.Events, events.TopicUser, user.ID, map[string]any{
		"type": "user_registered", "userId": user.ID, "username": user.Username,
	})
	return &user, nil
}

// Login accepts a username or an email in login.
func (s *AuthService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", login)

	if strings.TrimSpace(login) == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.Repo.GetUserByEmail(ctx, login)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	if !user.Enabled {
		l.Warn("login_failed", "reason", "account disabled", "user_id", user.ID)
		return nil, ErrDisabled
	}

	token, exp, err := tokens.IssueAccessToken(user.ID, string(user.Role), s.JWTSecret, s.AccessTTL)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	emit(ctx, s.Events, events.TopicUser, user.ID, map[string]any{
		"type": "user_logged_in", "userId": user.ID,
	})
	return &LoginResult{User: user, AccessToken: token, AccessExp: exp}, nil
}

type SeedUser struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.Role
}

// Seed creates the given users unless a user with the same username exists.
func (s *AuthService) Seed(ctx context.Context, users []SeedUser) error {
	l := logging.FromContext(ctx).With("svc", "auth.seed")

	for _, su := range users {
		taken, err := s.Repo.UsernameTaken(ctx, su.Username)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		pwHash, err := hash.HashPassword(su.Password)
		if err != nil {
			return err
		}
		u := models.User{
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: pwHash,
			FirstName:    su.FirstName,
			LastName:     su.LastName,
			Role:         su.Role,
			Enabled:      true,
		}
		if err := s.Repo.CreateUser(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", su.Username, err)
		}
		l.Info("seed_user_created", "username", u.Username, "role", u.Role)
	}
	return nil
}

func DefaultSeedUsers(adminPassword, userPassword string) []SeedUser {
	return []SeedUser{
		{Username: "admin", Email: "admin@eshop.com", Password: adminPassword, FirstName: "Admin", LastName: "User", Role: models.RoleAdmin},
		{Username: "john", Email: "john@example.com", Password: userPassword, FirstName: "John", LastName: "Doe", Role: models.RoleUser},
	}
}
