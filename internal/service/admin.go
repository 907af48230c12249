package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"github.com/secondecom/eshop/internal/events"
	"github.com/secondecom/eshop/internal/logging"
	"github.com/secondecom/eshop/internal/models"
	"github.com/secondecom/eshop/internal/repo"
	"github.com/secondecom/eshop/internal/storage"
	"github.com/secondecom/eshop/internal/transport"
)

const uncategorized = "Uncategorized"

// BatchResult is the outcome of a bulk operation that keeps going past
// per-item failures.
type BatchResult struct {
	Succeeded []uint          `json:"succeeded"`
	Failed    map[uint]string `json:"failed"`
}

func newBatchResult() *BatchResult {
	return &BatchResult{Succeeded: []uint{}, Failed: map[uint]string{}}
}

func (b *BatchResult) ok(id uint)              { b.Succeeded = append(b.Succeeded, id) }
func (b *BatchResult) fail(id uint, err error) { b.Failed[id] = err.Error() }

func (b *BatchResult) Count() int { return len(b.Succeeded) }

type DeleteAllResult struct {
	*BatchResult
	CategoryBreakdown map[string]int `json:"categoryBreakdown"`
}

type ProductsCount struct {
	TotalProducts   int64                `json:"totalProducts"`
	TotalCategories int64                `json:"totalCategories"`
	CategoryCount   map[string]int64     `json:"categoryCount"`
	ByCategory      []repo.CategoryCount `json:"byCategory"`
}

type ProductDebug struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	ImageURL      *string `json:"imageUrl"`
	HasImage      bool    `json:"hasImage"`
	IsPlaceholder bool    `json:"isPlaceholder"`
}

type Dashboard struct {
	TotalProducts   int64 `json:"totalProducts"`
	TotalCategories int64 `json:"totalCategories"`
	TotalUsers      int64 `json:"totalUsers"`
	TotalOrders     int64 `json:"totalOrders"`
}

type AdminService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Images *storage.ImageStore
}

func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	var err error
	if d.TotalProducts, err = s.Repo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if d.TotalCategories, err = s.Repo.CountCategories(ctx); err != nil {
		return nil, err
	}
	if d.TotalUsers, err = s.Repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if d.TotalOrders, err = s.Repo.CountOrders(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

func validateProduct(req transport.CreateProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("product name is required: %w", ErrValidation)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	if req.StockQuantity < 0 {
		return fmt.Errorf("stock quantity cannot be negative: %w", ErrValidation)
	}
	return nil
}

func (s *AdminService) categoryExists(ctx context.Context, id uint) error {
	if _, err := s.Repo.GetCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category not found: %w", ErrNotFound)
		}
		return err
	}
	return nil
}

// CreateProduct stores the optional image only after the input is valid.
func (s *AdminService) CreateProduct(ctx context.Context, req transport.CreateProductRequest, image *multipart.FileHeader) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "admin.create_product")

	if err := validateProduct(req); err != nil {
		return nil, err
	}
	if err := s.categoryExists(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	prod := models.Product{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		Brand:         strings.TrimSpace(req.Brand),
		Active:        true,
	}

	if image != nil && image.Size > 0 && s.Images != nil {
		url, err := s.Images.Save(image)
		if errors.Is(err, storage.ErrUnsupportedType) {
			return nil, fmt.Errorf("unsupported image type: %w", ErrValidation)
		}
		if err != nil {
			l.Error("create_product_error", "reason", "cannot store image", "error", err)
			return nil, err
		}
		prod.ImageURL = &url
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		if prod.ImageURL != nil {
			if rmErr := s.Images.Remove(*prod.ImageURL); rmErr != nil {
				l.Warn("image_cleanup_failed", "url", *prod.ImageURL, "error", rmErr)
			}
		}
		return nil, err
	}

	emit(ctx, s.Events, events.TopicProduct, prod.ID, map[string]any{
		"type": "product_created", "productId": prod.ID, "categoryId": prod.CategoryID,
	})
	return s.Repo.GetProduct(ctx, prod.ID)
}

func (s *AdminService) UpdateProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	updates := map[string]any{}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("product name is required: %w", ErrValidation)
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
		}
		updates["price"] = *req.Price
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("stock quantity cannot be negative: %w", ErrValidation)
		}
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.CategoryID != nil {
		if err := s.categoryExists(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Brand != nil {
		updates["brand"] = strings.TrimSpace(*req.Brand)
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	prod, err := s.Repo.UpdateProduct(ctx, id, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	emit(ctx, s.Events, events.TopicProduct, id, map[string]any{
		"type": "product_updated", "productId": id,
	})
	return prod, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return err
	}
	emit(ctx, s.Events, events.TopicProduct, id, map[string]any{
		"type": "product_deleted", "productId": id,
	})
	return nil
}

// deleteEach removes every product in the list, one transaction each.
func (s *AdminService) deleteEach(ctx context.Context, products []models.Product, onDeleted func(p models.Product)) *BatchResult {
	l := logging.FromContext(ctx).With("svc", "admin.bulk_delete")
	res := newBatchResult()

	for _, p := range products {
		if err := s.DeleteProduct(ctx, p.ID); err != nil {
			l.Warn("bulk_delete_item_failed", "product_id", p.ID, "error", err)
			res.fail(p.ID, err)
			continue
		}
		res.ok(p.ID)
		if onDeleted != nil {
			onDeleted(p)
		}
	}
	return res
}

func (s *AdminService) DeleteAllProducts(ctx context.Context) (*DeleteAllResult, error) {
	products, err := s.Repo.ListProducts(ctx, false)
	if err != nil {
		return nil, err
	}

	breakdown := map[string]int{}
	res := s.deleteEach(ctx, products, func(p models.Product) {
		name := uncategorized
		if p.Category != nil && p.Category.Name != "" {
			name = p.Category.Name
		}
		breakdown[name]++
	})
	return &DeleteAllResult{BatchResult: res, CategoryBreakdown: breakdown}, nil
}

func (s *AdminService) DeleteProductsByCategory(ctx context.Context, categoryID uint) (*BatchResult, string, error) {
	cat, err := s.Repo.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("category not found: %w", ErrNotFound)
		}
		return nil, "", err
	}

	products, err := s.Repo.ProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, "", err
	}
	return s.deleteEach(ctx, products, nil), cat.Name, nil
}

func isPlaceholderImage(url *string) bool {
	return url != nil && (strings.TrimSpace(*url) == "" || strings.Contains(*url, "placeholder"))
}

// FixProductImages clears image urls that are blank or point at a
// placeholder service, so clients fall back to their own placeholder.
func (s *AdminService) FixProductImages(ctx context.Context) (*BatchResult, error) {
	l := logging.FromContext(ctx).With("svc", "admin.fix_images")

	products, err := s.Repo.ListProducts(ctx, false)
	if err != nil {
		return nil, err
	}

	res := newBatchResult()
	for _, p := range products {
		if !isPlaceholderImage(p.ImageURL) {
			continue
		}
		if err := s.Repo.ClearProductImage(ctx, p.ID); err != nil {
			l.Warn("fix_image_failed", "product_id", p.ID, "error", err)
			res.fail(p.ID, err)
			continue
		}
		res.ok(p.ID)
	}
	return res, nil
}

func (s *AdminService) ProductsCount(ctx context.Context) (*ProductsCount, error) {
	total, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := s.Repo.CountCategories(ctx)
	if err != nil {
		return nil, err
	}
	grouped, err := s.Repo.ProductCountsByCategory(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int64, len(grouped))
	for i, g := range grouped {
		if g.CategoryName == "" {
			grouped[i].CategoryName = uncategorized
		}
		byName[grouped[i].CategoryName] += g.Count
	}
	return &ProductsCount{
		TotalProducts:   total,
		TotalCategories: cats,
		CategoryCount:   byName,
		ByCategory:      grouped,
	}, nil
}

func (s *AdminService) DebugProducts(ctx context.Context) ([]ProductDebug, error) {
	products, err := s.Repo.ListProducts(ctx, false)
	if err != nil {
		return nil, err
	}

	out := make([]ProductDebug, 0, len(products))
	for _, p := range products {
		out = append(out, ProductDebug{
			ID:            p.ID,
			Name:          p.Name,
			ImageURL:      p.ImageURL,
			HasImage:      p.ImageURL != nil && *p.ImageURL != "",
			IsPlaceholder: isPlaceholderImage(p.ImageURL),
		})
	}
	return out, nil
}
