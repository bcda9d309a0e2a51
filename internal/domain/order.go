package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Address is copied by value into an order at commit time, never
// referenced live.
type Address struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Company    *string `json:"company,omitempty"`
	Address1   string  `json:"address1"`
	Address2   *string `json:"address2,omitempty"`
	City       string  `json:"city"`
	State      *string `json:"state,omitempty"`
	PostalCode string  `json:"postalCode"`
	Country    string  `json:"country"`
	Phone      *string `json:"phone,omitempty"`
}

type Order struct {
	ID              uuid.UUID
	UserID          string
	OrderNumber     string
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	Subtotal        Money
	ShippingCost    Money
	TaxAmount       Money
	Total           Money
	ShippingAddress Address
	BillingAddress  Address
	Notes           *string
	Items           []OrderItem

	CreatedAt time.Time
}

// OrderItem is an immutable purchase snapshot. Name and price are frozen
// at order time so the order stays an audit record even after the product
// is edited or deleted.
type OrderItem struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	ProductID        uuid.UUID
	VariantID        *uuid.UUID
	ProductName      string
	VariantName      *string
	Price            Money
	Quantity         int32
	SellerID         uuid.UUID
	CommissionRate   decimal.Decimal
	CommissionAmount Money
}

// SellerOrder is one order narrowed to a single seller's lines.
type SellerOrder struct {
	Order          Order
	SellerItems    []OrderItem
	SellerSubtotal Money
}

// SellerStats aggregates a seller's share across all orders.
type SellerStats struct {
	ActiveProductCount int64
	GrossRevenue       Money
	CommissionPaid     Money
	NetRevenue         Money
	DistinctOrderCount int64
}
