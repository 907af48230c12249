package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondecom/eshop/internal/models"
)

func countCarts(t *testing.T, e *testEnv) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.repo.DB.Model(&models.Cart{}).Count(&n).Error)
	return n
}

func TestAddToCart_MergesSameProduct(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()

	u := e.mkUser(t, "u1")
	cat := e.mkCategory(t, "Phones")
	var p *models.Product
	for i := 0; i < 5; i++ {
		p = e.mkProduct(t, "p", "10.00", cat.ID)
	}
	require.Equal(t, uint(5), p.ID)

	_, err := e.cart.AddToCart(ctx, u.ID, 5, 2)
	require.NoError(t, err)
	cart, err := e.cart.AddToCart(ctx, u.ID, 5, 3)
	require.NoError(t, err)

	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, uint(5), cart.CartItems[0].ProductID)
	assert.Equal(t, 5, cart.CartItems[0].Quantity)
	assert.EqualValues(t, 1, countCarts(t, e))
}

func TestAddToCart_Rejects(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()

	u := e.mkUser(t, "u1")
	p := e.mkProduct(t, "p", "1.00", e.mkCategory(t, "c").ID)

	tests := []struct {
		name      string
		userID    uint
		productID uint
		qty       int
		err       error
		msg       string
	}{
		{"unknown user", 999, p.ID, 1, ErrNotFound, "user not found"},
		{"unknown product", u.ID, 999, 1, ErrNotFound, "product not found"},
		{"zero quantity", u.ID, p.ID, 0, ErrValidation, "quantity must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.cart.AddToCart(ctx, tt.userID, tt.productID, tt.qty)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.msg, Message(err))
		})
	}
	assert.EqualValues(t, 0, countCarts(t, e))
}

func TestAddToCart_ConcurrentFirstAdds(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()

	u := e.mkUser(t, "u1")
	p := e.mkProduct(t, "p", "1.00", e.mkCategory(t, "c").ID)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.cart.AddToCart(ctx, u.ID, p.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cart, err := e.cart.GetCart(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 10, cart.CartItems[0].Quantity)
	assert.EqualValues(t, 1, countCarts(t, e))
}

func TestGetCart_MissingIsEmpty(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	cart, err := e.cart.GetCart(context.Background(), 77)
	require.NoError(t, err)
	assert.Zero(t, cart.ID)
	assert.NotNil(t, cart.CartItems)
	assert.Empty(t, cart.CartItems)
	assert.EqualValues(t, 0, countCarts(t, e))
}

func TestRemoveFromCart(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()

	u := e.mkUser(t, "u1")
	cat := e.mkCategory(t, "c")
	p1 := e.mkProduct(t, "p1", "1.00", cat.ID)
	p2 := e.mkProduct(t, "p2", "1.00", cat.ID)

	cart, err := e.cart.RemoveFromCart(ctx, u.ID, p1.ID)
	require.NoError(t, err)
	assert.Zero(t, cart.ID)
	assert.EqualValues(t, 0, countCarts(t, e))

	_, err = e.cart.AddToCart(ctx, u.ID, p1.ID, 1)
	require.NoError(t, err)

	cart, err = e.cart.RemoveFromCart(ctx, u.ID, p2.ID)
	require.NoError(t, err)
	assert.Len(t, cart.CartItems, 1)

	cart, err = e.cart.RemoveFromCart(ctx, u.ID, p1.ID)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)
	assert.Empty(t, cart.CartItems)
}

func TestClearCart(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, e.cart.ClearCart(ctx, 42))
	assert.EqualValues(t, 0, countCarts(t, e))

	u := e.mkUser(t, "u1")
	p := e.mkProduct(t, "p", "1.00", e.mkCategory(t, "c").ID)
	_, err := e.cart.AddToCart(ctx, u.ID, p.ID, 3)
	require.NoError(t, err)

	require.NoError(t, e.cart.ClearCart(ctx, u.ID))
	cart, err := e.cart.GetCart(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)
}

func TestUpdateItemQuantity(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()

	u := e.mkUser(t, "u1")
	p := e.mkProduct(t, "p", "1.00", e.mkCategory(t, "c").ID)
	cart, err := e.cart.AddToCart(ctx, u.ID, p.ID, 1)
	require.NoError(t, err)
	itemID := cart.CartItems[0].ID

	item, err := e.cart.UpdateItemQuantity(ctx, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	_, err = e.cart.UpdateItemQuantity(ctx, itemID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.cart.UpdateItemQuantity(ctx, 999, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProbe(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()

	probe, err := e.cart.Probe(ctx, 5)
	require.NoError(t, err)
	assert.False(t, probe.UserExists)
	assert.False(t, probe.CartExists)

	u := e.mkUser(t, "u1")
	p := e.mkProduct(t, "p", "1.00", e.mkCategory(t, "c").ID)
	_, err = e.cart.AddToCart(ctx, u.ID, p.ID, 1)
	require.NoError(t, err)

	probe, err = e.cart.Probe(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, probe.UserExists)
	assert.Equal(t, "u1", probe.Username)
	assert.True(t, probe.CartExists)
	assert.Equal(t, 1, probe.CartItemsCount)
}
