package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/secondecom/eshop/internal/models"
	"github.com/secondecom/eshop/internal/repo"
	"github.com/secondecom/eshop/internal/transport"
)

type ProfileService struct {
	Repo *repo.GormRepo
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.User, error) {
	u, err := s.Repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return u, err
}

func (s *ProfileService) Update(ctx context.Context, userID uint, req transport.UpdateProfileRequest) (*models.User, error) {
	updates := map[string]any{}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			return nil, fmt.Errorf("email cannot be empty: %w", ErrValidation)
		}
		taken, err := s.Repo.EmailTaken(ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("email already exists: %w", ErrConflict)
		}
		updates["email"] = email
	}
	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, fmt.Errorf("first name cannot be empty: %w", ErrValidation)
		}
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, fmt.Errorf("last name cannot be empty: %w", ErrValidation)
		}
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}

	u, err := s.Repo.UpdateUser(ctx, userID, updates)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, fmt.Errorf("email already exists: %w", ErrConflict)
	}
	return u, err
}
