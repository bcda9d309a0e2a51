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
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type catalogRepository struct {
	q querier
}

func NewCatalog(pool *pgxpool.Pool) port.CatalogRepository {
	return &catalogRepository{q: pool}
}

func NewCatalogWithTx(tx pgx.Tx) port.CatalogRepository {
	return &catalogRepository{q: tx}
}

func (r *catalogRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, seller_id, name, slug, image, price, currency, stock, status, created_at
		FROM products
		WHERE id = $1`, productID)

	var (
		p            domain.Product
		priceAmount  decimal.Decimal
		currencyCode string
	)
	err := row.Scan(&p.ID, &p.SellerID, &p.Name, &p.Slug, &p.Image,
		&priceAmount, &currencyCode, &p.Stock, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ProductUnavailableError{ProductID: productID}
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}
	p.Price = domain.NewMoney(priceAmount, unit)

	return p, nil
}

func (r *catalogRepository) GetVariant(ctx context.Context, variantID uuid.UUID) (domain.ProductVariant, error) {
	row := r.q.QueryRow(ctx, `
		SELECT v.id, v.product_id, v.name, v.sku, v.price, p.currency, v.stock
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		WHERE v.id = $1`, variantID)

	var (
		v            domain.ProductVariant
		priceAmount  *decimal.Decimal
		currencyCode string
	)
	err := row.Scan(&v.ID, &v.ProductID, &v.Name, &v.SKU, &priceAmount, &currencyCode, &v.Stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ProductVariant{}, fmt.Errorf("variant [%s] not found", variantID)
	}
	if err != nil {
		return domain.ProductVariant{}, fmt.Errorf("select variant: %w", err)
	}

	if priceAmount != nil {
		unit, err := currency.ParseISO(currencyCode)
		if err != nil {
			return domain.ProductVariant{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
		}
		price := domain.NewMoney(*priceAmount, unit)
		v.Price = &price
	}

	return v, nil
}

func (r *catalogRepository) GetSeller(ctx context.Context, sellerID uuid.UUID) (domain.Seller, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, store_name, slug, created_at
		FROM sellers
		WHERE id = $1`, sellerID)

	var s domain.Seller
	err := row.Scan(&s.ID, &s.StoreName, &s.Slug, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Seller{}, fmt.Errorf("seller [%s] not found", sellerID)
	}
	if err != nil {
		return domain.Seller{}, fmt.Errorf("select seller: %w", err)
	}

	return s, nil
}

// PricedItems is the single place raw cart lines become trustworthy priced
// lines. Price, stock ceiling and seller attribution are re-read from the
// live catalog; a LEFT JOIN keeps lines whose product vanished so they can
// be rejected instead of silently dropped.
func (r *catalogRepository) PricedItems(ctx context.Context, cartID uuid.UUID) ([]domain.PricedCartItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ci.id, ci.product_id, ci.variant_id, ci.quantity,
		       p.name, p.slug, p.image, p.price, p.currency, p.stock, p.status, p.seller_id,
		       v.name, v.price, v.stock,
		       s.store_name
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		LEFT JOIN product_variants v ON v.id = ci.variant_id
		LEFT JOIN sellers s ON s.id = p.seller_id
		WHERE ci.cart_id = $1
		ORDER BY p.name, ci.created_at`, cartID)
	if err != nil {
		return nil, fmt.Errorf("select priced items: %w", err)
	}
	defer rows.Close()

	var items []domain.PricedCartItem
	for rows.Next() {
		item, err := scanPricedItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func scanPricedItem(row pgx.Row) (domain.PricedCartItem, error) {
	var (
		item domain.PricedCartItem

		productName  *string
		productSlug  *string
		productImage *string
		productPrice *decimal.Decimal
		currencyCode *string
		productStock *int32
		status       *string
		sellerID     *uuid.UUID

		variantName  *string
		variantPrice *decimal.Decimal
		variantStock *int32

		sellerName *string
	)

	err := row.Scan(&item.ID, &item.ProductID, &item.VariantID, &item.Quantity,
		&productName, &productSlug, &productImage, &productPrice, &currencyCode, &productStock, &status, &sellerID,
		&variantName, &variantPrice, &variantStock,
		&sellerName)
	if err != nil {
		return domain.PricedCartItem{}, fmt.Errorf("scan priced item: %w", err)
	}

	if productName == nil || status == nil || domain.ProductStatus(*status) != domain.ProductStatusActive {
		return domain.PricedCartItem{}, domain.ProductUnavailableError{ProductID: item.ProductID}
	}
	if item.VariantID != nil && variantName == nil {
		// line references a variant which no longer exists
		return domain.PricedCartItem{}, domain.ProductUnavailableError{ProductID: item.ProductID}
	}

	unit, err := currency.ParseISO(*currencyCode)
	if err != nil {
		return domain.PricedCartItem{}, fmt.Errorf("currency[%s] is not valid: %w", *currencyCode, err)
	}

	item.ProductName = *productName
	item.ProductSlug = *productSlug
	item.ProductImage = productImage
	item.VariantName = variantName
	item.SellerID = *sellerID
	if sellerName != nil {
		item.SellerName = *sellerName
	}

	// variant price override falls back to the product price,
	// variant stock replaces product stock entirely when a variant is selected
	switch {
	case item.VariantID != nil && variantPrice != nil:
		item.UnitPrice = domain.NewMoney(*variantPrice, unit)
	default:
		item.UnitPrice = domain.NewMoney(*productPrice, unit)
	}
	if item.VariantID != nil {
		item.StockCeiling = *variantStock
	} else {
		item.StockCeiling = *productStock
	}

	return item, nil
}

func (r *catalogRepository) DecrementProductStock(ctx context.Context, productID uuid.UUID, quantity int32) (bool, error) {
	// Conditional decrement, the WHERE clause is the enforcement point
	// against overselling under concurrent checkouts.
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET stock = stock - $2
		WHERE id = $1 AND stock >= $2`, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("decrement product stock: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *catalogRepository) DecrementVariantStock(ctx context.Context, variantID uuid.UUID, quantity int32) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE product_variants SET stock = stock - $2
		WHERE id = $1 AND stock >= $2`, variantID, quantity)
	if err != nil {
		return false, fmt.Errorf("decrement variant stock: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *catalogRepository) CountActiveProducts(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `
		SELECT count(*) FROM products
		WHERE seller_id = $1 AND status = $2`, sellerID, domain.ProductStatusActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active products: %w", err)
	}

	return count, nil
}
