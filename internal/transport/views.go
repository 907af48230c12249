package transport

import (
	"github.com/shopspring/decimal"

	"github.com/secondecom/eshop/internal/models"
	"github.com/secondecom/eshop/internal/util"
)

// CartView renders a cart; an unsaved cart has a null id.
type CartView struct {
	ID          *uint             `json:"id"`
	UserID      uint              `json:"userId"`
	CartItems   []models.CartItem `json:"cartItems"`
	TotalItems  int               `json:"totalItems"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
}

func NewCartView(c *models.Cart) CartView {
	v := CartView{UserID: c.UserID, CartItems: c.CartItems, TotalAmount: decimal.Zero}
	if c.ID != 0 {
		id := c.ID
		v.ID = &id
	}
	if v.CartItems == nil {
		v.CartItems = []models.CartItem{}
	}
	for _, it := range v.CartItems {
		v.TotalItems += it.Quantity
		if it.Product != nil {
			v.TotalAmount = v.TotalAmount.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return v
}

type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func NewPage[T any](content []T, total int64, page, size int) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := util.TotalPages(total, size)
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Number:        page,
		Size:          size,
		First:         page == 0,
		Last:          page >= pages-1,
	}
}
