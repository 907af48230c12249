package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/secondecom/eshop/internal/models"
)

func preloadCartItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("CartItems", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("CartItems.Product")
}

// GetCartByUserID returns gorm.ErrRecordNotFound when the user has no cart.
func (r *GormRepo) GetCartByUserID(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Scopes(preloadCartItems).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// EnsureCart inserts the user's cart unless one exists and returns it.
// The unique index on carts.user_id makes concurrent callers converge on
// the same row.
func (r *GormRepo) EnsureCart(ctx context.Context, userID uint) (*models.Cart, error) {
	db := r.DB.WithContext(ctx)
	fresh := models.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Omit(clause.Associations).Create(&fresh).Error; err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// MergeCartItem adds quantity to the (cart, product) line, creating it when
// absent. Both paths increment in SQL.
func (r *GormRepo) MergeCartItem(ctx context.Context, cartID, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			line := models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
			if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
				}),
			}).Create(&line).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Cart{}).Where("id = ?", cartID).Update("updated_at", tx.NowFunc()).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) GetCartItem(ctx context.Context, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).Preload("Product").First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) SetCartItemQuantity(ctx context.Context, itemID uint, quantity int) (*models.CartItem, error) {
	res := r.DB.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetCartItem(ctx, itemID)
}

// RemoveCartItem reports how many lines were deleted; zero is not an error.
func (r *GormRepo) RemoveCartItem(ctx context.Context, cartID, productID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) ClearCartItems(ctx context.Context, cartID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
