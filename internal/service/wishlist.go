package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/secondecom/eshop/internal/models"
	"github.com/secondecom/eshop/internal/repo"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

func (s *WishlistService) List(ctx context.Context, userID uint) ([]models.Wishlist, error) {
	return s.Repo.ListWishlist(ctx, userID)
}

func (s *WishlistService) Add(ctx context.Context, userID, productID uint) (*models.Wishlist, error) {
	if _, err := s.Repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return s.Repo.AddWishlist(ctx, userID, productID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID uint) error {
	_, err := s.Repo.RemoveWishlist(ctx, userID, productID)
	return err
}
