package repo

import (
	"context"

	"github.com/secondecom/eshop/internal/models"
)

type CategoryCount struct {
	CategoryID   uint   `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Count        int64  `json:"count"`
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) CategoryNameTaken(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	items := make([]models.Category, 0)
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Category{}).Count(&n).Error
	return n, err
}

// ProductCountsByCategory groups products by category. Products whose
// category row is gone come back with an empty name.
func (r *GormRepo) ProductCountsByCategory(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.DB.WithContext(ctx).
		Table("products").
		Select("products.category_id AS category_id, COALESCE(categories.name, '') AS category_name, COUNT(*) AS count").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Group("products.category_id, categories.name").
		Order("products.category_id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
