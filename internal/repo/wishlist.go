package repo

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/secondecom/eshop/internal/models"
)

func (r *GormRepo) ListWishlist(ctx context.Context, userID uint) ([]models.Wishlist, error) {
	items := make([]models.Wishlist, 0)
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddWishlist is idempotent: an existing (user, product) row is returned.
func (r *GormRepo) AddWishlist(ctx context.Context, userID, productID uint) (*models.Wishlist, error) {
	db := r.DB.WithContext(ctx)
	row := models.Wishlist{UserID: userID, ProductID: productID}
	if err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return nil, err
	}

	var out models.Wishlist
	if err := db.Preload("Product").Where("user_id = ? AND product_id = ?", userID, productID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GormRepo) RemoveWishlist(ctx context.Context, userID, productID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Wishlist{})
	return res.RowsAffected, res.Error
}
