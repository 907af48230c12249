package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"       json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:64"   json:"username"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"  json:"email"`
	PasswordHash string    `gorm:"not null"                       json:"-"`
	FirstName    string    `gorm:"not null"                       json:"firstName"`
	LastName     string    `gorm:"not null"                       json:"lastName"`
	Role         Role      `gorm:"not null;default:USER;size:16"  json:"role"`
	Enabled      bool      `gorm:"not null"                       json:"enabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"      json:"id"`
	Name        string `gorm:"uniqueIndex;not null;size:128" json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"      json:"id"`
	Name          string          `gorm:"not null"                      json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"   json:"price"`
	StockQuantity int             `gorm:"not null;default:0"            json:"stockQuantity"`
	CategoryID    uint            `gorm:"index;not null"                json:"categoryId"`
	Category      *Category       `gorm:"foreignKey:CategoryID"         json:"category,omitempty"`
	Brand         string          `json:"brand"`
	ImageURL      *string         `json:"imageUrl"`
	Active        bool            `gorm:"not null"                      json:"active"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Cart has at most one row per user; the unique index on user_id backs
// the insert-if-absent in the repository.
type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"          json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null"              json:"userId"`
	CartItems []CartItem `gorm:"constraint:OnDelete:CASCADE"       json:"cartItems"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"                   json:"id"`
	CartID    uint     `gorm:"uniqueIndex:idx_cart_product;not null"      json:"cartId"`
	ProductID uint     `gorm:"uniqueIndex:idx_cart_product;not null"      json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID"                       json:"product,omitempty"`
	Quantity  int      `gorm:"not null;default:1;check:quantity>0"        json:"quantity"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"           json:"id"`
	UserID          uint            `gorm:"index;not null"                     json:"userId"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"        json:"totalAmount"`
	Status          OrderStatus     `gorm:"not null;default:PENDING;size:16"   json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"not null;default:PENDING;size:16"   json:"paymentStatus"`
	ShippingAddress string          `gorm:"not null"                           json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type Wishlist struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                 json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_product;not null"    json:"userId"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product;not null"    json:"productId"`
	Product   *Product  `gorm:"foreignKey:ProductID"                     json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Wishlist) TableName() string {
	return "wishlist_items"
}

// All lists every table in migration order.
func All() []any {
	return []any{&User{}, &Category{}, &Product{}, &Cart{}, &CartItem{}, &Order{}, &Wishlist{}}
}
