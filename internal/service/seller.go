package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/marketplace/internal/domain"
	"github.com/nikolayk812/marketplace/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// SellerAggregator splits multi-seller orders into per-seller views so a
// seller never sees, or gets credited for, another seller's lines.
type SellerAggregator struct {
	orders  port.OrderRepository
	catalog port.CatalogRepository
}

func NewSellerAggregator(orders port.OrderRepository, catalog port.CatalogRepository) *SellerAggregator {
	return &SellerAggregator{orders: orders, catalog: catalog}
}

func (a *SellerAggregator) OrdersForSeller(ctx context.Context, sellerID uuid.UUID) ([]domain.SellerOrder, error) {
	orders, err := a.orders.OrdersWithSellerItems(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("orders.OrdersWithSellerItems: %w", err)
	}

	var result []domain.SellerOrder
	for _, order := range orders {
		var (
			sellerItems []domain.OrderItem
			subtotal    = domain.NewMoney(decimal.Zero, order.Subtotal.Currency)
		)

		for _, item := range order.Items {
			if item.SellerID != sellerID {
				continue
			}
			sellerItems = append(sellerItems, item)
			subtotal = subtotal.Add(item.Price.Times(item.Quantity))
		}
		if len(sellerItems) == 0 {
			continue
		}

		result = append(result, domain.SellerOrder{
			Order:          order,
			SellerItems:    sellerItems,
			SellerSubtotal: subtotal,
		})
	}

	return result, nil
}

func (a *SellerAggregator) Stats(ctx context.Context, sellerID uuid.UUID) (domain.SellerStats, error) {
	activeProducts, err := a.catalog.CountActiveProducts(ctx, sellerID)
	if err != nil {
		return domain.SellerStats{}, fmt.Errorf("catalog.CountActiveProducts: %w", err)
	}

	sellerOrders, err := a.OrdersForSeller(ctx, sellerID)
	if err != nil {
		return domain.SellerStats{}, err
	}

	unit := currency.EUR
	if len(sellerOrders) > 0 {
		unit = sellerOrders[0].Order.Subtotal.Currency
	}

	gross := domain.NewMoney(decimal.Zero, unit)
	commission := domain.NewMoney(decimal.Zero, unit)
	for _, so := range sellerOrders {
		gross = gross.Add(so.SellerSubtotal)
		for _, item := range so.SellerItems {
			commission = commission.Add(item.CommissionAmount)
		}
	}

	return domain.SellerStats{
		ActiveProductCount: activeProducts,
		GrossRevenue:       gross,
		CommissionPaid:     commission,
		NetRevenue:         domain.NewMoney(gross.Amount.Sub(commission.Amount), unit),
		// orders are already distinct parent orders, not line counts
		DistinctOrderCount: int64(len(sellerOrders)),
	}, nil
}
