package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/secondecom/eshop/internal/events"
	"github.com/secondecom/eshop/internal/models"
	"github.com/secondecom/eshop/internal/repo"
	"github.com/secondecom/eshop/internal/transport"
	"github.com/secondecom/eshop/internal/util"
)

var errEmptyCart = fmt.Errorf("cart is empty: %w", ErrValidation)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// PlaceOrder turns the user's cart into a pending order and empties the
// cart in the same transaction. No payment is attempted.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, shippingAddress string) (*models.Order, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return nil, fmt.Errorf("shipping address is required: %w", ErrValidation)
	}

	order, err := s.Repo.CheckoutCart(ctx, userID, func(cart *models.Cart) (*models.Order, error) {
		if len(cart.CartItems) == 0 {
			return nil, errEmptyCart
		}
		total := decimal.Zero
		for _, it := range cart.CartItems {
			if it.Product == nil {
				return nil, fmt.Errorf("product %d not found: %w", it.ProductID, ErrNotFound)
			}
			total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		if !total.IsPositive() {
			return nil, fmt.Errorf("order total must be positive: %w", ErrValidation)
		}
		return &models.Order{
			UserID:          userID,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			PaymentStatus:   models.PaymentStatusPending,
			ShippingAddress: shippingAddress,
		}, nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errEmptyCart
	}
	if err != nil {
		return nil, err
	}

	emit(ctx, s.Events, events.TopicOrder, userID, map[string]any{
		"type": "order_placed", "userId": userID, "orderId": order.ID, "totalAmount": order.TotalAmount.String(),
	})
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint, page, size int) (transport.Page[models.Order], error) {
	offset, limit := util.Calculate(page, size)
	if page < 0 {
		page = 0
	}
	total, items, err := s.Repo.ListOrders(ctx, userID, offset, limit)
	if err != nil {
		return transport.Page[models.Order]{}, err
	}
	return transport.NewPage(items, total, page, limit), nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, id uint) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}
	return o, err
}
