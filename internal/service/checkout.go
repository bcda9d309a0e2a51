package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/marketplace/internal/domain"
	"github.com/nikolayk812/marketplace/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxNotesLen = 500

// CheckoutConfig carries the marketplace pricing rules. Tax is recorded as
// metadata only, prices are tax-inclusive by convention.
type CheckoutConfig struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	CommissionRate        decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultCheckoutConfig() CheckoutConfig {
	return CheckoutConfig{
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShippingFee:       decimal.RequireFromString("5.90"),
		CommissionRate:        decimal.RequireFromString("0.10"),
		TaxRate:               decimal.RequireFromString("0.20"),
	}
}

// CheckoutCoordinator re-derives priced lines, validates stock, computes
// totals and commits order + order lines + stock decrements + cart clear
// as one transaction.
type CheckoutCoordinator struct {
	pricer port.CartPricer
	tx     port.TxRunner
	cfg    CheckoutConfig
	logger *zap.Logger
}

func NewCheckoutCoordinator(pricer port.CartPricer, tx port.TxRunner, cfg CheckoutConfig, logger *zap.Logger) *CheckoutCoordinator {
	return &CheckoutCoordinator{
		pricer: pricer,
		tx:     tx,
		cfg:    cfg,
		logger: logger,
	}
}

func (c *CheckoutCoordinator) Checkout(ctx context.Context, userID string, req port.CheckoutRequest) (domain.Order, error) {
	if userID == "" {
		return domain.Order{}, fmt.Errorf("userID is empty")
	}
	if err := validateCheckoutRequest(req); err != nil {
		return domain.Order{}, err
	}

	items, err := c.pricer.PricedItems(ctx, userID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("pricer.PricedItems: %w", err)
	}
	if len(items) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	// Fail-fast stock pre-check. The conditional decrement inside the
	// transaction is the enforcement point, this only spares the buyer a
	// doomed transaction.
	for _, item := range items {
		if item.Quantity > item.StockCeiling {
			return domain.Order{}, domain.InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
			}
		}
	}

	order := c.buildOrder(userID, req, items)

	created, err := c.commit(ctx, userID, order, items)
	if errors.Is(err, domain.ErrDuplicateOrderNumber) {
		// collision on the generated number, regenerate and retry once
		order.OrderNumber = generateOrderNumber(time.Now())
		created, err = c.commit(ctx, userID, order, items)
	}
	if err != nil {
		var stockErr domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			return domain.Order{}, stockErr
		}
		var unavailableErr domain.ProductUnavailableError
		if errors.As(err, &unavailableErr) {
			return domain.Order{}, unavailableErr
		}

		c.logger.Error("checkout commit failed", zap.String("user_id", userID), zap.Error(err))
		return domain.Order{}, errors.Join(domain.ErrCheckoutFailed, err)
	}

	c.logger.Info("order created",
		zap.String("user_id", userID),
		zap.String("order_number", created.OrderNumber),
		zap.String("total", created.Total.Amount.String()),
		zap.Int("lines", len(created.Items)))

	return created, nil
}

func (c *CheckoutCoordinator) buildOrder(userID string, req port.CheckoutRequest, items []domain.PricedCartItem) domain.Order {
	unit := items[0].UnitPrice.Currency

	subtotal := domain.NewMoney(decimal.Zero, unit)
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}

	shipping := domain.NewMoney(c.cfg.FlatShippingFee, unit)
	if subtotal.Amount.GreaterThanOrEqual(c.cfg.FreeShippingThreshold) {
		shipping = domain.NewMoney(decimal.Zero, unit)
	}

	billing := req.ShippingAddress
	if !req.UseSameAddress && req.BillingAddress != nil {
		billing = *req.BillingAddress
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:        item.ProductID,
			VariantID:        item.VariantID,
			ProductName:      item.ProductName,
			VariantName:      item.VariantName,
			Price:            item.UnitPrice,
			Quantity:         item.Quantity,
			SellerID:         item.SellerID,
			CommissionRate:   c.cfg.CommissionRate,
			CommissionAmount: item.Subtotal().Rate(c.cfg.CommissionRate),
		})
	}

	return domain.Order{
		UserID:          userID,
		OrderNumber:     generateOrderNumber(time.Now()),
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		Subtotal:        subtotal,
		ShippingCost:    shipping,
		TaxAmount:       subtotal.Rate(c.cfg.TaxRate),
		Total:           subtotal.Add(shipping),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  billing,
		Notes:           req.Notes,
		Items:           orderItems,
	}
}

func (c *CheckoutCoordinator) commit(ctx context.Context, userID string, order domain.Order, items []domain.PricedCartItem) (domain.Order, error) {
	var created domain.Order

	err := c.tx.InTx(ctx, func(s port.Stores) error {
		cart, err := s.Carts.GetCart(ctx, userID)
		if err != nil {
			return fmt.Errorf("carts.GetCart: %w", err)
		}

		created, err = s.Orders.CreateOrder(ctx, order)
		if err != nil {
			return err
		}

		// A line decrements exactly one counter: the variant's when a
		// variant is referenced, else the product's.
		for _, item := range items {
			var applied bool
			if item.VariantID != nil {
				applied, err = s.Catalog.DecrementVariantStock(ctx, *item.VariantID, item.Quantity)
			} else {
				applied, err = s.Catalog.DecrementProductStock(ctx, item.ProductID, item.Quantity)
			}
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !applied {
				// stock changed since the pre-check, abort the whole transaction
				return domain.InsufficientStockError{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
				}
			}
		}

		if err := s.Carts.ClearCart(ctx, cart.ID); err != nil {
			return fmt.Errorf("carts.ClearCart: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return created, nil
}

func validateCheckoutRequest(req port.CheckoutRequest) error {
	if err := validateAddress("shippingAddress", req.ShippingAddress); err != nil {
		return err
	}
	if !req.UseSameAddress {
		if req.BillingAddress == nil {
			return domain.ValidationError{Field: "billingAddress", Reason: "required unless useSameAddress is set"}
		}
		if err := validateAddress("billingAddress", *req.BillingAddress); err != nil {
			return err
		}
	}
	if req.Notes != nil && len(*req.Notes) > maxNotesLen {
		return domain.ValidationError{Field: "notes", Reason: fmt.Sprintf("must not exceed %d characters", maxNotesLen)}
	}

	return nil
}

func validateAddress(field string, addr domain.Address) error {
	switch {
	case strings.TrimSpace(addr.FirstName) == "":
		return domain.ValidationError{Field: field + ".firstName", Reason: "is required"}
	case strings.TrimSpace(addr.LastName) == "":
		return domain.ValidationError{Field: field + ".lastName", Reason: "is required"}
	case strings.TrimSpace(addr.Address1) == "":
		return domain.ValidationError{Field: field + ".address1", Reason: "is required"}
	case strings.TrimSpace(addr.City) == "":
		return domain.ValidationError{Field: field + ".city", Reason: "is required"}
	case strings.TrimSpace(addr.PostalCode) == "":
		return domain.ValidationError{Field: field + ".postalCode", Reason: "is required"}
	case strings.TrimSpace(addr.Country) == "":
		return domain.ValidationError{Field: field + ".country", Reason: "is required"}
	}

	return nil
}

func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
