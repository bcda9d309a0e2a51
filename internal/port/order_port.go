package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/marketplace/internal/domain"
)

type OrderRepository interface {
	// CreateOrder inserts the order and all its items. ErrDuplicateOrderNumber
	// surfaces a collision on the generated order number.
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)

	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	// OrdersWithSellerItems returns every order containing at least one of
	// the seller's lines, newest first, with all lines attached.
	OrdersWithSellerItems(ctx context.Context, sellerID uuid.UUID) ([]domain.Order, error)
}
