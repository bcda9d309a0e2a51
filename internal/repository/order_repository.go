package repository

import (
	"context"
	"encoding/json"
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

type orderRepository struct {
	q querier
}

func NewOrders(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{q: pool}
}

func NewOrdersWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{q: tx}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	shippingJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return domain.Order{}, fmt.Errorf("marshal shipping address: %w", err)
	}
	billingJSON, err := json.Marshal(order.BillingAddress)
	if err != nil {
		return domain.Order{}, fmt.Errorf("marshal billing address: %w", err)
	}

	row := r.q.QueryRow(ctx, `
		INSERT INTO orders (user_id, order_number, status, payment_status, currency,
		                    subtotal, shipping_cost, tax_amount, total,
		                    shipping_address, billing_address, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`,
		order.UserID, order.OrderNumber, order.Status, order.PaymentStatus,
		order.Subtotal.Currency.String(),
		order.Subtotal.Amount, order.ShippingCost.Amount, order.TaxAmount.Amount, order.Total.Amount,
		shippingJSON, billingJSON, order.Notes)

	err = row.Scan(&order.ID, &order.CreatedAt)
	if isUniqueViolation(err) {
		return domain.Order{}, domain.ErrDuplicateOrderNumber
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		err := r.q.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, variant_id, product_name, variant_name,
			                         price, quantity, seller_id, commission_rate, commission_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
			item.OrderID, item.ProductID, item.VariantID, item.ProductName, item.VariantName,
			item.Price.Amount, item.Quantity, item.SellerID,
			item.CommissionRate, item.CommissionAmount.Amount).Scan(&item.ID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order_item: %w", err)
		}
	}

	return order, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, user_id, order_number, status, payment_status, currency,
		       subtotal, shipping_cost, tax_amount, total,
		       shipping_address, billing_address, notes, created_at
		FROM orders
		WHERE id = $1`, orderID)

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	items, err := r.orderItems(ctx, `WHERE order_id = $1`, order.Subtotal.Currency, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) OrdersWithSellerItems(ctx context.Context, sellerID uuid.UUID) ([]domain.Order, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, order_number, status, payment_status, currency,
		       subtotal, shipping_cost, tax_amount, total,
		       shipping_address, billing_address, notes, created_at
		FROM orders
		WHERE id IN (SELECT DISTINCT order_id FROM order_items WHERE seller_id = $1)
		ORDER BY created_at DESC`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("select seller orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.orderItems(ctx, `WHERE order_id = $1`, orders[i].Subtotal.Currency, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *orderRepository) orderItems(ctx context.Context, where string, unit currency.Unit, args ...any) ([]domain.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, variant_id, product_name, variant_name,
		       price, quantity, seller_id, commission_rate, commission_amount
		FROM order_items `+where+`
		ORDER BY product_name`, args...)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item             domain.OrderItem
			priceAmount      decimal.Decimal
			commissionAmount decimal.Decimal
		)
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.VariantID,
			&item.ProductName, &item.VariantName, &priceAmount, &item.Quantity,
			&item.SellerID, &item.CommissionRate, &commissionAmount)
		if err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}

		item.Price = domain.NewMoney(priceAmount, unit)
		item.CommissionAmount = domain.NewMoney(commissionAmount, unit)
		items = append(items, item)
	}

	return items, rows.Err()
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		order        domain.Order
		currencyCode string
		subtotal     decimal.Decimal
		shippingCost decimal.Decimal
		taxAmount    decimal.Decimal
		total        decimal.Decimal
		shippingJSON []byte
		billingJSON  []byte
	)

	err := row.Scan(&order.ID, &order.UserID, &order.OrderNumber, &order.Status, &order.PaymentStatus,
		&currencyCode, &subtotal, &shippingCost, &taxAmount, &total,
		&shippingJSON, &billingJSON, &order.Notes, &order.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	order.Subtotal = domain.NewMoney(subtotal, unit)
	order.ShippingCost = domain.NewMoney(shippingCost, unit)
	order.TaxAmount = domain.NewMoney(taxAmount, unit)
	order.Total = domain.NewMoney(total, unit)

	if err := json.Unmarshal(shippingJSON, &order.ShippingAddress); err != nil {
		return domain.Order{}, fmt.Errorf("unmarshal shipping address: %w", err)
	}
	if err := json.Unmarshal(billingJSON, &order.BillingAddress); err != nil {
		return domain.Order{}, fmt.Errorf("unmarshal billing address: %w", err)
	}

	return order, nil
}
