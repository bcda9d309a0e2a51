package repository_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/marketplace/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixtures struct {
	pool *pgxpool.Pool
}

func (f fixtures) seller(t *testing.T) domain.Seller {
	t.Helper()
	ctx := t.Context()

	s := domain.Seller{
		StoreName: gofakeit.Company(),
		Slug:      gofakeit.UUID(),
	}
	err := f.pool.QueryRow(ctx, `
		INSERT INTO sellers (store_name, slug) VALUES ($1, $2)
		RETURNING id`, s.StoreName, s.Slug).Scan(&s.ID)
	require.NoError(t, err)

	return s
}

func (f fixtures) product(t *testing.T, sellerID uuid.UUID, price decimal.Decimal, stock int32, status domain.ProductStatus) uuid.UUID {
	t.Helper()
	ctx := t.Context()

	var id uuid.UUID
	err := f.pool.QueryRow(ctx, `
		INSERT INTO products (seller_id, name, slug, price, currency, stock, status)
		VALUES ($1, $2, $3, $4, 'EUR', $5, $6)
		RETURNING id`,
		sellerID, gofakeit.ProductName(), gofakeit.UUID(), price, stock, status).Scan(&id)
	require.NoError(t, err)

	return id
}

func (f fixtures) namedProduct(t *testing.T, sellerID uuid.UUID, name string, price decimal.Decimal, stock int32) uuid.UUID {
	t.Helper()
	ctx := t.Context()

	var id uuid.UUID
	err := f.pool.QueryRow(ctx, `
		INSERT INTO products (seller_id, name, slug, price, currency, stock, status)
		VALUES ($1, $2, $3, $4, 'EUR', $5, $6)
		RETURNING id`,
		sellerID, name, gofakeit.UUID(), price, stock, domain.ProductStatusActive).Scan(&id)
	require.NoError(t, err)

	return id
}

func (f fixtures) variant(t *testing.T, productID uuid.UUID, price *decimal.Decimal, stock int32) uuid.UUID {
	t.Helper()
	ctx := t.Context()

	var id uuid.UUID
	err := f.pool.QueryRow(ctx, `
		INSERT INTO product_variants (product_id, name, sku, price, stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		productID, gofakeit.AdjectiveDescriptive(), gofakeit.UUID(), price, stock).Scan(&id)
	require.NoError(t, err)

	return id
}

func (f fixtures) productStock(t *testing.T, productID uuid.UUID) int32 {
	t.Helper()

	var stock int32
	err := f.pool.QueryRow(t.Context(), `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	require.NoError(t, err)

	return stock
}

func (f fixtures) variantStock(t *testing.T, variantID uuid.UUID) int32 {
	t.Helper()

	var stock int32
	err := f.pool.QueryRow(t.Context(), `SELECT stock FROM product_variants WHERE id = $1`, variantID).Scan(&stock)
	require.NoError(t, err)

	return stock
}

func (f fixtures) truncateAll(ctx context.Context) error {
	_, err := f.pool.Exec(ctx, `
		TRUNCATE TABLE order_items, orders, cart_items, carts,
		               product_variants, products, sellers CASCADE`)
	return err
}

func randomAddress() domain.Address {
	return domain.Address{
		FirstName:  gofakeit.FirstName(),
		LastName:   gofakeit.LastName(),
		Address1:   gofakeit.Street(),
		City:       gofakeit.City(),
		PostalCode: gofakeit.Zip(),
		Country:    gofakeit.CountryAbr(),
	}
}
