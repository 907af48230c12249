package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/secondecom/eshop/internal/models"
	"github.com/secondecom/eshop/internal/repo"
	"github.com/secondecom/eshop/internal/transport"
	"github.com/secondecom/eshop/internal/util"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) AllProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, false)
}

func (s *CatalogService) ActiveProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, true)
}

func (s *CatalogService) ProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	return s.Repo.ProductsByCategory(ctx, categoryID)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}
	return p, err
}

func (s *CatalogService) CountProducts(ctx context.Context) (int64, error) {
	return s.Repo.CountProducts(ctx)
}

// SearchProducts pages are zero-based.
func (s *CatalogService) SearchProducts(ctx context.Context, keyword string, page, size int) (transport.Page[models.Product], error) {
	offset, limit := util.Calculate(page, size)
	if page < 0 {
		page = 0
	}

	total, items, err := s.Repo.SearchProducts(ctx, keyword, offset, limit)
	if err != nil {
		return transport.Page[models.Product]{}, err
	}
	return transport.NewPage(items, total, page, limit), nil
}
