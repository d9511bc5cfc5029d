package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Platform user roles.
const (
	RoleUser            = "USER"
	RoleAdmin           = "ADMIN"
	RoleShopOwner       = "SHOP_OWNER"
	RoleDeliveryPartner = "DELIVERY_PARTNER"
)

// Roles lists every assignable role, in the order forms present them.
var Roles = []string{RoleUser, RoleAdmin, RoleShopOwner, RoleDeliveryPartner}

// Order lifecycle statuses.
const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderPacked    = "PACKED"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// OrderStatuses lists every order status, in lifecycle order.
var OrderStatuses = []string{
	OrderPending, OrderConfirmed, OrderPacked,
	OrderShipped, OrderDelivered, OrderCancelled,
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Shop statuses.
const (
	ShopOpen   = "OPEN"
	ShopClosed = "CLOSED"
)

// UserProfile is the signed-in operator's identity, persisted alongside the
// session token.
type UserProfile struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type User struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	MobileNumber string `json:"mobile_number"`
	Role         string `json:"role"`
	IsActive     int    `json:"is_active"`
}

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

type Product struct {
	ID           int64           `json:"id"`
	UUID         string          `json:"uuid"`
	Name         string          `json:"name"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Brand        string          `json:"brand"`
	Description  string          `json:"description"`
	Size         string          `json:"size"`
	MRP          decimal.Decimal `json:"mrp"`
	ActualPrice  decimal.Decimal `json:"actual_price"`
	ImageURL     string          `json:"image_url"`
}

type Shop struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

// InventoryItem is a (product, shop-or-global) stock row as returned by the
// inventory listing, joined with product and shop names. A nil ShopID denotes
// global, platform-wide stock.
type InventoryItem struct {
	InventoryID   *int64           `json:"inventory_id"`
	ProductID     int64            `json:"product_id"`
	ShopID        *int64           `json:"shop_id"`
	ProductName   string           `json:"product_name"`
	ShopName      string           `json:"shop_name,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity"`
}

// Global reports whether the row is platform-wide stock rather than
// shop-scoped.
func (i InventoryItem) Global() bool {
	return i.ShopID == nil
}

// OrderItem is an immutable line-item snapshot; price is the price at the
// time the order was placed.
type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type Order struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customer_name"`
	MobileNumber  string          `json:"mobile_number"`
	Items         []OrderItem     `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	DeliveryType  string          `json:"delivery_type"`
	Address       string          `json:"address"`
	CreatedAt     time.Time       `json:"created_at"`
}

// StatusCount is one bucket of the server-computed status histogram.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DashboardStats holds the server-computed aggregates for the dashboard.
// The console performs no aggregation of its own.
type DashboardStats struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	ItemRevenue      decimal.Decimal `json:"itemRevenue"`
	DeliveryRevenue  decimal.Decimal `json:"deliveryRevenue"`
	HandlingRevenue  decimal.Decimal `json:"handlingRevenue"`
	TotalOrders      int             `json:"totalOrders"`
	DeliveredOrders  int             `json:"deliveredOrders"`
	IncompleteOrders int             `json:"incompleteOrders"`
	RecentOrders     []Order         `json:"recentOrders"`
	StatusBreakdown  []StatusCount   `json:"statusBreakdown"`
}
