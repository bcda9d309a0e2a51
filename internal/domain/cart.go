package domain

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	ID      uuid.UUID
	OwnerID string
	Items   []CartItem
}

// CartItem is a durable cart line. VariantID nil means no variant was
// selected, which is a distinct line identity from any concrete variant.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int32

	CreatedAt time.Time
}

// LocalCartItem is a line from client-side ephemeral cart state, merged
// into the durable cart when an anonymous session signs in.
type LocalCartItem struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int32
}

// PricedCartItem is a cart line enriched with current product state.
// Price, stock ceiling and seller attribution are re-read from the catalog,
// never taken from the client.
type PricedCartItem struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	ProductSlug  string
	ProductImage *string
	VariantID    *uuid.UUID
	VariantName  *string
	UnitPrice    Money
	Quantity     int32
	StockCeiling int32
	SellerID     uuid.UUID
	SellerName   string
}

// Subtotal is the line's gross value, unit price times quantity.
func (i PricedCartItem) Subtotal() Money {
	return i.UnitPrice.Times(i.Quantity)
}

// SameIdentity reports whether two lines merge into one, i.e. share the
// (productID, variantID-or-null) pair.
func SameIdentity(productID uuid.UUID, variantID *uuid.UUID, otherProductID uuid.UUID, otherVariantID *uuid.UUID) bool {
	if productID != otherProductID {
		return false
	}
	if (variantID == nil) != (otherVariantID == nil) {
		return false
	}
	return variantID == nil || *variantID == *otherVariantID
}
