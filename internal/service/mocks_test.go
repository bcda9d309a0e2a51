package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/marketplace/internal/domain"
	"github.com/nikolayk812/marketplace/internal/port"
)

// memCartRepo implements port.CartRepository in memory for unit tests.
type memCartRepo struct {
	carts       map[string]*domain.Cart // ownerID -> cart
	upsertCalls int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]*domain.Cart{}}
}

func (m *memCartRepo) EnsureCart(_ context.Context, ownerID string) (domain.Cart, error) {
	if cart, ok := m.carts[ownerID]; ok {
		return *cart, nil
	}
	cart := &domain.Cart{ID: uuid.New(), OwnerID: ownerID}
	m.carts[ownerID] = cart
	return *cart, nil
}

func (m *memCartRepo) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	cart, ok := m.carts[ownerID]
	if !ok {
		return domain.Cart{}, domain.ErrCartNotFound
	}
	return *cart, nil
}

func (m *memCartRepo) FindItem(_ context.Context, cartID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID) (*domain.CartItem, error) {
	for _, cart := range m.carts {
		if cart.ID != cartID {
			continue
		}
		for i := range cart.Items {
			item := cart.Items[i]
			if domain.SameIdentity(item.ProductID, item.VariantID, productID, variantID) {
				return &item, nil
			}
		}
	}
	return nil, nil
}

func (m *memCartRepo) GetItem(_ context.Context, itemID uuid.UUID) (domain.CartItem, error) {
	for _, cart := range m.carts {
		for _, item := range cart.Items {
			if item.ID == itemID {
				return item, nil
			}
		}
	}
	return domain.CartItem{}, domain.ErrCartItemNotFound
}

func (m *memCartRepo) UpsertItem(_ context.Context, cartID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID, quantityDelta int32) error {
	m.upsertCalls++

	for _, cart := range m.carts {
		if cart.ID != cartID {
			continue
		}
		for i := range cart.Items {
			if domain.SameIdentity(cart.Items[i].ProductID, cart.Items[i].VariantID, productID, variantID) {
				cart.Items[i].Quantity += quantityDelta
				return nil
			}
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ID:        uuid.New(),
			CartID:    cartID,
			ProductID: productID,
			VariantID: variantID,
			Quantity:  quantityDelta,
			CreatedAt: time.Now(),
		})
		return nil
	}
	return domain.ErrCartNotFound
}

func (m *memCartRepo) SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) error {
	if quantity < 0 {
		return domain.ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if quantity == 0 {
		_, err := m.DeleteItem(ctx, itemID)
		return err
	}
	for _, cart := range m.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items[i].Quantity = quantity
				return nil
			}
		}
	}
	return domain.ErrCartItemNotFound
}

func (m *memCartRepo) DeleteItem(_ context.Context, itemID uuid.UUID) (bool, error) {
	for _, cart := range m.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *memCartRepo) ClearCart(_ context.Context, cartID uuid.UUID) error {
	for _, cart := range m.carts {
		if cart.ID == cartID {
			cart.Items = nil
		}
	}
	return nil
}

func (m *memCartRepo) items(ownerID string) []domain.CartItem {
	if cart, ok := m.carts[ownerID]; ok {
		return cart.Items
	}
	return nil
}

// stubPricer implements port.CartPricer with canned lines.
type stubPricer struct {
	items []domain.PricedCartItem
	err   error
}

func (s *stubPricer) PricedItems(context.Context, string) ([]domain.PricedCartItem, error) {
	return s.items, s.err
}

// mockCatalog implements port.CatalogRepository over stock maps with the
// same conditional-decrement semantics as the real store.
type mockCatalog struct {
	productStock map[uuid.UUID]int32
	variantStock map[uuid.UUID]int32
	activeCount  int64
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		productStock: map[uuid.UUID]int32{},
		variantStock: map[uuid.UUID]int32{},
	}
}

func (m *mockCatalog) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	return domain.Product{}, domain.ProductUnavailableError{ProductID: productID}
}

func (m *mockCatalog) GetVariant(context.Context, uuid.UUID) (domain.ProductVariant, error) {
	return domain.ProductVariant{}, nil
}

func (m *mockCatalog) GetSeller(context.Context, uuid.UUID) (domain.Seller, error) {
	return domain.Seller{}, nil
}

func (m *mockCatalog) PricedItems(context.Context, uuid.UUID) ([]domain.PricedCartItem, error) {
	return nil, nil
}

func (m *mockCatalog) DecrementProductStock(_ context.Context, productID uuid.UUID, quantity int32) (bool, error) {
	if m.productStock[productID] < quantity {
		return false, nil
	}
	m.productStock[productID] -= quantity
	return true, nil
}

func (m *mockCatalog) DecrementVariantStock(_ context.Context, variantID uuid.UUID, quantity int32) (bool, error) {
	if m.variantStock[variantID] < quantity {
		return false, nil
	}
	m.variantStock[variantID] -= quantity
	return true, nil
}

func (m *mockCatalog) CountActiveProducts(context.Context, uuid.UUID) (int64, error) {
	return m.activeCount, nil
}

// mockOrders implements port.OrderRepository, optionally failing the first
// N creations with ErrDuplicateOrderNumber.
type mockOrders struct {
	created        []domain.Order
	sellerOrders   []domain.Order
	duplicateFails int
	createErr      error
}

func (m *mockOrders) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	if m.createErr != nil {
		return domain.Order{}, m.createErr
	}
	if m.duplicateFails > 0 {
		m.duplicateFails--
		return domain.Order{}, domain.ErrDuplicateOrderNumber
	}

	order.ID = uuid.New()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	m.created = append(m.created, order)
	return order, nil
}

func (m *mockOrders) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	for _, order := range m.created {
		if order.ID == orderID {
			return order, nil
		}
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

func (m *mockOrders) OrdersWithSellerItems(context.Context, uuid.UUID) ([]domain.Order, error) {
	return m.sellerOrders, nil
}

// mockTxRunner hands the same mock stores to every InTx call. It does not
// undo mock state on error, rollback coverage lives in the integration
// tests against a real database.
type mockTxRunner struct {
	stores     port.Stores
	calls      int
	rolledBack bool
}

func (m *mockTxRunner) InTx(_ context.Context, fn func(s port.Stores) error) error {
	m.calls++
	if err := fn(m.stores); err != nil {
		m.rolledBack = true
		return err
	}
	return nil
}
