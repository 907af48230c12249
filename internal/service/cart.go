package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/secondecom/eshop/internal/events"
	"github.com/secondecom/eshop/internal/logging"
	"github.com/secondecom/eshop/internal/models"
	"github.com/secondecom/eshop/internal/repo"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher

	creating singleflight.Group
}

// GetCart never fails for a missing cart: it returns an unsaved empty one.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.Repo.GetCartByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Cart{UserID: userID, CartItems: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add", "user_id", userID, "product_id", productID)

	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

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

	cart, err := s.ensureCart(ctx, userID)
	if err != nil {
		l.Error("cart_add_error", "reason", "cannot create cart", "error", err)
		return nil, err
	}

	item, err := s.Repo.MergeCartItem(ctx, cart.ID, productID, quantity)
	if err != nil {
		l.Error("cart_add_error", "reason", "cannot merge line", "error", err)
		return nil, err
	}
	l.Debug("cart_line_merged", "cart_id", cart.ID, "quantity", item.Quantity)

	emit(ctx, s.Events, events.TopicCart, userID, map[string]any{
		"type": "cart_item_added", "userId": userID, "cartId": cart.ID,
		"productId": productID, "quantity": quantity, "lineQuantity": item.Quantity,
	})
	return s.Repo.GetCartByUserID(ctx, userID)
}

// ensureCart collapses concurrent first adds for one user onto a single
// insert-if-absent.
func (s *CartService) ensureCart(ctx context.Context, userID uint) (*models.Cart, error) {
	v, err, _ := s.creating.Do(strconv.FormatUint(uint64(userID), 10), func() (any, error) {
		return s.Repo.EnsureCart(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Cart), nil
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("invalid quantity: %w", ErrValidation)
	}
	item, err := s.Repo.SetCartItemQuantity(ctx, itemID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart item not found: %w", ErrNotFound)
	}
	return item, err
}

// RemoveFromCart is a no-op when the cart or the line does not exist.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uint) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil || cart.ID == 0 {
		return cart, err
	}

	n, err := s.Repo.RemoveCartItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		emit(ctx, s.Events, events.TopicCart, userID, map[string]any{
			"type": "cart_item_removed", "userId": userID, "cartId": cart.ID, "productId": productID,
		})
	}
	return s.GetCart(ctx, userID)
}

// ClearCart never creates a cart.
func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	cart, err := s.Repo.GetCartByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	n, err := s.Repo.ClearCartItems(ctx, cart.ID)
	if err != nil {
		return err
	}
	emit(ctx, s.Events, events.TopicCart, userID, map[string]any{
		"type": "cart_cleared", "userId": userID, "cartId": cart.ID, "removed": n,
	})
	return nil
}

type CartProbe struct {
	UserExists     bool   `json:"userExists"`
	Username       string `json:"username,omitempty"`
	CartExists     bool   `json:"cartExists"`
	CartID         uint   `json:"cartId,omitempty"`
	CartItemsCount int    `json:"cartItemsCount"`
}

// Probe reports what exists for a user without changing anything.
func (s *CartService) Probe(ctx context.Context, userID uint) (*CartProbe, error) {
	var out CartProbe

	user, err := s.Repo.GetUserByID(ctx, userID)
	switch {
	case err == nil:
		out.UserExists = true
		out.Username = user.Username
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	cart, err := s.Repo.GetCartByUserID(ctx, userID)
	switch {
	case err == nil:
		out.CartExists = true
		out.CartID = cart.ID
		out.CartItemsCount = len(cart.CartItems)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return &out, nil
}
