package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/marketplace/internal/domain"
)

type CatalogRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	GetVariant(ctx context.Context, variantID uuid.UUID) (domain.ProductVariant, error)
	GetSeller(ctx context.Context, sellerID uuid.UUID) (domain.Seller, error)

	// PricedItems joins the cart's lines against live products, variants
	// and sellers, sorted by product name. Unavailable products surface a
	// ProductUnavailableError.
	PricedItems(ctx context.Context, cartID uuid.UUID) ([]domain.PricedCartItem, error)

	// DecrementProductStock and DecrementVariantStock are conditional:
	// they fail without touching the row when remaining stock would go
	// negative, reporting whether the decrement was applied.
	DecrementProductStock(ctx context.Context, productID uuid.UUID, quantity int32) (bool, error)
	DecrementVariantStock(ctx context.Context, variantID uuid.UUID, quantity int32) (bool, error)

	CountActiveProducts(ctx context.Context, sellerID uuid.UUID) (int64, error)
}
