package server_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/marketplace/internal/domain"
	"github.com/nikolayk812/marketplace/internal/port"
)

// Function-field mocks: a test sets only the methods it expects the
// handler to reach, anything else panics loudly.

type mockCarts struct {
	ensureCart      func(ownerID string) (domain.Cart, error)
	getCart         func(ownerID string) (domain.Cart, error)
	getItem         func(itemID uuid.UUID) (domain.CartItem, error)
	upsertItem      func(cartID, productID uuid.UUID, variantID *uuid.UUID, quantityDelta int32) error
	setItemQuantity func(itemID uuid.UUID, quantity int32) error
	deleteItem      func(itemID uuid.UUID) (bool, error)
}

func (m *mockCarts) EnsureCart(_ context.Context, ownerID string) (domain.Cart, error) {
	return m.ensureCart(ownerID)
}

func (m *mockCarts) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	return m.getCart(ownerID)
}

func (m *mockCarts) FindItem(context.Context, uuid.UUID, uuid.UUID, *uuid.UUID) (*domain.CartItem, error) {
	panic("unexpected FindItem")
}

func (m *mockCarts) GetItem(_ context.Context, itemID uuid.UUID) (domain.CartItem, error) {
	return m.getItem(itemID)
}

func (m *mockCarts) UpsertItem(_ context.Context, cartID, productID uuid.UUID, variantID *uuid.UUID, quantityDelta int32) error {
	return m.upsertItem(cartID, productID, variantID, quantityDelta)
}

func (m *mockCarts) SetItemQuantity(_ context.Context, itemID uuid.UUID, quantity int32) error {
	return m.setItemQuantity(itemID, quantity)
}

func (m *mockCarts) DeleteItem(_ context.Context, itemID uuid.UUID) (bool, error) {
	return m.deleteItem(itemID)
}

func (m *mockCarts) ClearCart(context.Context, uuid.UUID) error {
	panic("unexpected ClearCart")
}

type mockPricer struct {
	items []domain.PricedCartItem
	err   error
}

func (m *mockPricer) PricedItems(context.Context, string) ([]domain.PricedCartItem, error) {
	return m.items, m.err
}

type mockConsolidator struct {
	gotLocal []domain.LocalCartItem
	merged   []domain.PricedCartItem
	err      error
}

func (m *mockConsolidator) Merge(_ context.Context, _ string, local []domain.LocalCartItem) ([]domain.PricedCartItem, error) {
	m.gotLocal = local
	return m.merged, m.err
}

type mockCheckout struct {
	gotReq port.CheckoutRequest
	order  domain.Order
	err    error
}

func (m *mockCheckout) Checkout(_ context.Context, _ string, req port.CheckoutRequest) (domain.Order, error) {
	m.gotReq = req
	return m.order, m.err
}

type mockSellers struct {
	orders []domain.SellerOrder
	stats  domain.SellerStats
	err    error
}

func (m *mockSellers) OrdersForSeller(context.Context, uuid.UUID) ([]domain.SellerOrder, error) {
	return m.orders, m.err
}

func (m *mockSellers) Stats(context.Context, uuid.UUID) (domain.SellerStats, error) {
	return m.stats, m.err
}
