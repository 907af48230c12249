package transport

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondecom/eshop/internal/models"
)

func TestNewCartView_Empty(t *testing.T) {
	v := NewCartView(&models.Cart{UserID: 3})

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Nil(t, body["id"])
	assert.Equal(t, []any{}, body["cartItems"])
	assert.EqualValues(t, 0, body["totalItems"])
}

func TestNewCartView_Totals(t *testing.T) {
	p := &models.Product{ID: 5, Price: decimal.RequireFromString("2.50")}
	v := NewCartView(&models.Cart{ID: 1, UserID: 1, CartItems: []models.CartItem{
		{ID: 1, ProductID: 5, Product: p, Quantity: 4},
	}})

	require.NotNil(t, v.ID)
	assert.Equal(t, uint(1), *v.ID)
	assert.Equal(t, 4, v.TotalItems)
	assert.True(t, decimal.NewFromInt(10).Equal(v.TotalAmount))
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 12, 0, 10)
	assert.Equal(t, 2, p.TotalPages)
	assert.True(t, p.First)
	assert.False(t, p.Last)

	p = NewPage[int](nil, 0, 0, 10)
	assert.NotNil(t, p.Content)
	assert.True(t, p.Last)
	assert.Equal(t, 0, p.TotalPages)
}
