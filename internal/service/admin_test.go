package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondecom/eshop/internal/events"
	"github.com/secondecom/eshop/internal/models"
	"github.com/secondecom/eshop/internal/transport"
)

func ptr[T any](v T) *T { return &v }

func TestCreateProduct_Validation(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.mkCategory(t, "Phones")

	tests := []struct {
		name string
		req  transport.CreateProductRequest
		err  error
	}{
		{"empty name", transport.CreateProductRequest{Price: decimal.NewFromInt(1), CategoryID: cat.ID}, ErrValidation},
		{"negative price", transport.CreateProductRequest{Name: "x", Price: decimal.NewFromInt(-1), CategoryID: cat.ID}, ErrValidation},
		{"negative stock", transport.CreateProductRequest{Name: "x", StockQuantity: -1, CategoryID: cat.ID}, ErrValidation},
		{"unknown category", transport.CreateProductRequest{Name: "x", CategoryID: 999}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.admin.CreateProduct(ctx, tt.req, nil)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	p := e.mkProduct(t, "Pixel", "799.99", cat.ID)
	assert.True(t, p.Active)
	require.NotNil(t, p.Category)
	assert.Equal(t, "Phones", p.Category.Name)
	assert.Contains(t, e.events.Topics(), events.TopicProduct)
}

func TestUpdateProduct(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.mkCategory(t, "Phones")
	other := e.mkCategory(t, "Tablets")
	p := e.mkProduct(t, "Pixel", "799.00", cat.ID)

	got, err := e.admin.UpdateProduct(ctx, p.ID, transport.UpdateProductRequest{
		Name:       ptr("Pixel Pro"),
		Price:      ptr(decimal.RequireFromString("899.00")),
		CategoryID: ptr(other.ID),
		Active:     ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pixel Pro", got.Name)
	assert.True(t, decimal.RequireFromString("899").Equal(got.Price))
	assert.Equal(t, other.ID, got.CategoryID)
	assert.False(t, got.Active)

	_, err = e.admin.UpdateProduct(ctx, 999, transport.UpdateProductRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.admin.UpdateProduct(ctx, p.ID, transport.UpdateProductRequest{StockQuantity: ptr(-3)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.admin.UpdateProduct(ctx, p.ID, transport.UpdateProductRequest{CategoryID: ptr(uint(999))})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAllProducts(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()

	res, err := e.admin.DeleteAllProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count())
	assert.Empty(t, res.CategoryBreakdown)

	phones := e.mkCategory(t, "Phones")
	laptops := e.mkCategory(t, "Laptops")
	for i := 0; i < 3; i++ {
		e.mkProduct(t, "phone", "1.00", phones.ID)
	}
	e.mkProduct(t, "laptop", "1.00", laptops.ID)

	u := e.mkUser(t, "u1")
	_, err = e.cart.AddToCart(ctx, u.ID, 1, 1)
	require.NoError(t, err)

	res, err = e.admin.DeleteAllProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Count())
	assert.Empty(t, res.Failed)
	assert.Equal(t, map[string]int{"Phones": 3, "Laptops": 1}, res.CategoryBreakdown)

	sum := 0
	for _, n := range res.CategoryBreakdown {
		sum += n
	}
	assert.Equal(t, res.Count(), sum)

	n, err := e.catalog.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestDeleteProductsByCategory(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()

	_, _, err := e.admin.DeleteProductsByCategory(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	phones := e.mkCategory(t, "Phones")
	laptops := e.mkCategory(t, "Laptops")
	e.mkProduct(t, "a", "1.00", phones.ID)
	e.mkProduct(t, "b", "1.00", phones.ID)
	keep := e.mkProduct(t, "c", "1.00", laptops.ID)

	res, name, err := e.admin.DeleteProductsByCategory(ctx, phones.ID)
	require.NoError(t, err)
	assert.Equal(t, "Phones", name)
	assert.Equal(t, 2, res.Count())

	left, err := e.catalog.AllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, keep.ID, left[0].ID)
}

func TestFixProductImagesAndDebug(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.mkCategory(t, "c")

	urls := []*string{nil, ptr(""), ptr("https://via.placeholder.com/300"), ptr("/images/products/real.png")}
	for i, u := range urls {
		p := models.Product{Name: "p", Price: decimal.NewFromInt(int64(i + 1)), CategoryID: cat.ID, ImageURL: u, Active: true}
		require.NoError(t, e.repo.CreateProduct(ctx, &p))
	}

	dbg, err := e.admin.DebugProducts(ctx)
	require.NoError(t, err)
	require.Len(t, dbg, 4)
	assert.False(t, dbg[0].HasImage)
	assert.True(t, dbg[2].IsPlaceholder)
	assert.True(t, dbg[3].HasImage)
	assert.False(t, dbg[3].IsPlaceholder)

	res, err := e.admin.FixProductImages(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{2, 3}, res.Succeeded)

	p, err := e.catalog.GetProduct(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, p.ImageURL)

	p, err = e.catalog.GetProduct(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, p.ImageURL)
}

func TestProductsCountAndDashboard(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()

	phones := e.mkCategory(t, "Phones")
	e.mkCategory(t, "Empty")
	e.mkProduct(t, "a", "1.00", phones.ID)
	e.mkProduct(t, "b", "1.00", phones.ID)

	pc, err := e.admin.ProductsCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, pc.TotalProducts)
	assert.EqualValues(t, 2, pc.TotalCategories)
	assert.Equal(t, map[string]int64{"Phones": 2}, pc.CategoryCount)

	d, err := e.admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, d.TotalProducts)
	assert.EqualValues(t, 0, d.TotalUsers)
}
