package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/marketplace/internal/domain"
)

type CartPricer interface {
	PricedItems(ctx context.Context, userID string) ([]domain.PricedCartItem, error)
}

type CartConsolidator interface {
	Merge(ctx context.Context, userID string, local []domain.LocalCartItem) ([]domain.PricedCartItem, error)
}

type CheckoutRequest struct {
	ShippingAddress domain.Address
	BillingAddress  *domain.Address
	UseSameAddress  bool
	Notes           *string
}

type CheckoutCoordinator interface {
	Checkout(ctx context.Context, userID string, req CheckoutRequest) (domain.Order, error)
}

type SellerAggregator interface {
	OrdersForSeller(ctx context.Context, sellerID uuid.UUID) ([]domain.SellerOrder, error)
	Stats(ctx context.Context, sellerID uuid.UUID) (domain.SellerStats, error)
}
