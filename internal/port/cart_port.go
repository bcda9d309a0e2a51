package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/marketplace/internal/domain"
)

type CartRepository interface {
	// EnsureCart returns the owner's cart, creating it if absent. Safe to
	// call concurrently for the same owner, the race resolves to one row.
	EnsureCart(ctx context.Context, ownerID string) (domain.Cart, error)

	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)

	// FindItem matches the exact (productID, variantID-or-null) identity.
	FindItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID) (*domain.CartItem, error)

	GetItem(ctx context.Context, itemID uuid.UUID) (domain.CartItem, error)

	// UpsertItem adds quantityDelta to a matching line or inserts a new
	// line, atomically.
	UpsertItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID, quantityDelta int32) error

	// SetItemQuantity with quantity 0 deletes the line.
	SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) error

	DeleteItem(ctx context.Context, itemID uuid.UUID) (bool, error)
	ClearCart(ctx context.Context, cartID uuid.UUID) error
}
