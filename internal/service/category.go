package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/secondecom/eshop/internal/models"
	"github.com/secondecom/eshop/internal/repo"
)

type CategoryService struct {
	Repo *repo.GormRepo
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}

	taken, err := s.Repo.CategoryNameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("category with this name already exists: %w", ErrConflict)
	}

	cat := models.Category{Name: name, Description: strings.TrimSpace(description)}
	if err := s.Repo.CreateCategory(ctx, &cat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("category with this name already exists: %w", ErrConflict)
		}
		return nil, err
	}
	return &cat, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("category not found: %w", ErrNotFound)
	}
	return cat, err
}
