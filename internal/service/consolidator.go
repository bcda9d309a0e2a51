package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/marketplace/internal/domain"
	"github.com/nikolayk812/marketplace/internal/port"
	"go.uber.org/zap"
)

// CartConsolidator merges client-side cart state into the durable cart
// when an anonymous session signs in. Quantities are summed, never
// overwritten, and no stock cap is applied here; stock is validated at
// checkout.
type CartConsolidator struct {
	carts  port.CartRepository
	pricer port.CartPricer
	logger *zap.Logger
}

func NewCartConsolidator(carts port.CartRepository, pricer port.CartPricer, logger *zap.Logger) *CartConsolidator {
	return &CartConsolidator{carts: carts, pricer: pricer, logger: logger}
}

func (c *CartConsolidator) Merge(ctx context.Context, userID string, local []domain.LocalCartItem) ([]domain.PricedCartItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty")
	}

	for _, item := range local {
		if item.Quantity <= 0 {
			return nil, domain.ValidationError{Field: "quantity", Reason: "must be positive"}
		}
	}

	// Fold duplicate identities in the incoming list up front so they
	// land as one summed upsert, not independent increments.
	folded := foldLocalItems(local)

	cart, err := c.carts.EnsureCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("carts.EnsureCart: %w", err)
	}

	for _, item := range folded {
		if err := c.carts.UpsertItem(ctx, cart.ID, item.ProductID, item.VariantID, item.Quantity); err != nil {
			return nil, fmt.Errorf("carts.UpsertItem: %w", err)
		}
	}

	merged, err := c.pricer.PricedItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("pricer.PricedItems: %w", err)
	}

	c.logger.Info("cart merged",
		zap.String("user_id", userID),
		zap.Int("incoming_lines", len(local)),
		zap.Int("merged_lines", len(merged)))

	return merged, nil
}

func foldLocalItems(local []domain.LocalCartItem) []domain.LocalCartItem {
	var folded []domain.LocalCartItem

	for _, item := range local {
		merged := false
		for i := range folded {
			if domain.SameIdentity(folded[i].ProductID, folded[i].VariantID, item.ProductID, item.VariantID) {
				folded[i].Quantity += item.Quantity
				merged = true
				break
			}
		}
		if !merged {
			folded = append(folded, item)
		}
	}

	return folded
}
