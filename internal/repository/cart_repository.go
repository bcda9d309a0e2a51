package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/marketplace/internal/domain"
	"github.com/nikolayk812/marketplace/internal/port"
)

type cartRepository struct {
	q querier
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{q: pool}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{q: tx}
}

func (r *cartRepository) EnsureCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	// Upsert on the user_id unique constraint so concurrent calls for the
	// same owner resolve to exactly one row.
	var cartID uuid.UUID
	err := r.q.QueryRow(ctx, `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id`, ownerID).Scan(&cartID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("insert cart: %w", err)
	}

	items, err := r.cartItems(ctx, cartID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cartItems: %w", err)
	}

	return domain.Cart{ID: cartID, OwnerID: ownerID, Items: items}, nil
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	var cartID uuid.UUID
	err := r.q.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1`, ownerID).Scan(&cartID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Cart{}, domain.ErrCartNotFound
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("select cart: %w", err)
	}

	items, err := r.cartItems(ctx, cartID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cartItems: %w", err)
	}

	return domain.Cart{ID: cartID, OwnerID: ownerID, Items: items}, nil
}

func (r *cartRepository) FindItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID) (*domain.CartItem, error) {
	// IS NOT DISTINCT FROM keeps the null-variant identity exact: a null
	// variant matches only other null-variant lines.
	row := r.q.QueryRow(ctx, `
		SELECT id, cart_id, product_id, variant_id, quantity, created_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2 AND variant_id IS NOT DISTINCT FROM $3`,
		cartID, productID, variantID)

	item, err := scanCartItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanCartItem: %w", err)
	}

	return &item, nil
}

func (r *cartRepository) GetItem(ctx context.Context, itemID uuid.UUID) (domain.CartItem, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, cart_id, product_id, variant_id, quantity, created_at
		FROM cart_items
		WHERE id = $1`, itemID)

	item, err := scanCartItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, domain.ErrCartItemNotFound
	}
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("scanCartItem: %w", err)
	}

	return item, nil
}

func (r *cartRepository) UpsertItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID, quantityDelta int32) error {
	if quantityDelta <= 0 {
		return domain.ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	// Single atomic increment-or-insert, racing upserts for the same line
	// identity serialize on the unique constraint instead of duplicating.
	_, err := r.q.Exec(ctx, `
		INSERT INTO cart_items (cart_id, product_id, variant_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id, variant_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartID, productID, variantID, quantityDelta)
	if err != nil {
		return fmt.Errorf("upsert cart_item: %w", err)
	}

	return nil
}

func (r *cartRepository) SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) error {
	if quantity < 0 {
		return domain.ValidationError{Field: "quantity", Reason: "must not be negative"}
	}

	if quantity == 0 {
		deleted, err := r.DeleteItem(ctx, itemID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrCartItemNotFound
		}
		return nil
	}

	tag, err := r.q.Exec(ctx, `UPDATE cart_items SET quantity = $2 WHERE id = $1`, itemID, quantity)
	if err != nil {
		return fmt.Errorf("update cart_item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return false, fmt.Errorf("delete cart_item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("delete cart_items: %w", err)
	}

	return nil
}

func (r *cartRepository) cartItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, cart_id, product_id, variant_id, quantity, created_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at`, cartID)
	if err != nil {
		return nil, fmt.Errorf("select cart_items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanCartItem: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func scanCartItem(row pgx.Row) (domain.CartItem, error) {
	var item domain.CartItem
	err := row.Scan(&item.ID, &item.CartID, &item.ProductID, &item.VariantID, &item.Quantity, &item.CreatedAt)
	if err != nil {
		return domain.CartItem{}, err
	}

	return item, nil
}
