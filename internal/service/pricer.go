package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/marketplace/internal/domain"
	"github.com/nikolayk812/marketplace/internal/port"
)

// CartPricer turns raw cart lines into priced, stock-checked,
// seller-attributed display lines. It is the only source of truth for
// money; client-supplied prices are never consulted.
type CartPricer struct {
	carts   port.CartRepository
	catalog port.CatalogRepository
}

func NewCartPricer(carts port.CartRepository, catalog port.CatalogRepository) *CartPricer {
	return &CartPricer{carts: carts, catalog: catalog}
}

func (p *CartPricer) PricedItems(ctx context.Context, userID string) ([]domain.PricedCartItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty")
	}

	cart, err := p.carts.GetCart(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("carts.GetCart: %w", err)
	}

	items, err := p.catalog.PricedItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("catalog.PricedItems: %w", err)
	}

	return items, nil
}
