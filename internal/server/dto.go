package server

import (
	"github.com/nikolayk812/marketplace/internal/domain"
)

type PricedItemDTO struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductSlug  string  `json:"productSlug"`
	ProductImage *string `json:"productImage,omitempty"`
	VariantID    *string `json:"variantId,omitempty"`
	VariantName  *string `json:"variantName,omitempty"`
	UnitPrice    string  `json:"unitPrice"`
	Currency     string  `json:"currency"`
	Quantity     int32   `json:"quantity"`
	StockCeiling int32   `json:"stockCeiling"`
	SellerID     string  `json:"sellerId"`
	SellerName   string  `json:"sellerName"`
}

type CartResponseDTO struct {
	Items []PricedItemDTO `json:"items"`
}

type OrderItemDTO struct {
	ID               string  `json:"id"`
	ProductID        string  `json:"productId"`
	VariantID        *string `json:"variantId,omitempty"`
	ProductName      string  `json:"productName"`
	VariantName      *string `json:"variantName,omitempty"`
	Price            string  `json:"price"`
	Quantity         int32   `json:"quantity"`
	SellerID         string  `json:"sellerId"`
	CommissionRate   string  `json:"commissionRate"`
	CommissionAmount string  `json:"commissionAmount"`
}

type OrderDTO struct {
	ID            string         `json:"id"`
	OrderNumber   string         `json:"orderNumber"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	Currency      string         `json:"currency"`
	Subtotal      string         `json:"subtotal"`
	ShippingCost  string         `json:"shippingCost"`
	TaxAmount     string         `json:"taxAmount"`
	Total         string         `json:"total"`
	Items         []OrderItemDTO `json:"items,omitempty"`
	CreatedAt     string         `json:"createdAt"`
}

type SellerOrderDTO struct {
	Order          OrderDTO       `json:"order"`
	SellerItems    []OrderItemDTO `json:"sellerItems"`
	SellerSubtotal string         `json:"sellerSubtotal"`
}

type SellerStatsDTO struct {
	ActiveProductCount int64  `json:"activeProductCount"`
	GrossRevenue       string `json:"grossRevenue"`
	CommissionPaid     string `json:"commissionPaid"`
	NetRevenue         string `json:"netRevenue"`
	DistinctOrderCount int64  `json:"distinctOrderCount"`
}

func toPricedItemDTO(item domain.PricedCartItem) PricedItemDTO {
	dto := PricedItemDTO{
		ID:           item.ID.String(),
		ProductID:    item.ProductID.String(),
		ProductName:  item.ProductName,
		ProductSlug:  item.ProductSlug,
		ProductImage: item.ProductImage,
		VariantName:  item.VariantName,
		UnitPrice:    item.UnitPrice.Amount.String(),
		Currency:     item.UnitPrice.Currency.String(),
		Quantity:     item.Quantity,
		StockCeiling: item.StockCeiling,
		SellerID:     item.SellerID.String(),
		SellerName:   item.SellerName,
	}
	if item.VariantID != nil {
		s := item.VariantID.String()
		dto.VariantID = &s
	}

	return dto
}

func toCartResponseDTO(items []domain.PricedCartItem) CartResponseDTO {
	dtos := make([]PricedItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toPricedItemDTO(item))
	}

	return CartResponseDTO{Items: dtos}
}

func toOrderItemDTO(item domain.OrderItem) OrderItemDTO {
	dto := OrderItemDTO{
		ID:               item.ID.String(),
		ProductID:        item.ProductID.String(),
		ProductName:      item.ProductName,
		VariantName:      item.VariantName,
		Price:            item.Price.Amount.String(),
		Quantity:         item.Quantity,
		SellerID:         item.SellerID.String(),
		CommissionRate:   item.CommissionRate.String(),
		CommissionAmount: item.CommissionAmount.Amount.String(),
	}
	if item.VariantID != nil {
		s := item.VariantID.String()
		dto.VariantID = &s
	}

	return dto
}

func toOrderDTO(order domain.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, toOrderItemDTO(item))
	}

	return OrderDTO{
		ID:            order.ID.String(),
		OrderNumber:   order.OrderNumber,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		Currency:      order.Subtotal.Currency.String(),
		Subtotal:      order.Subtotal.Amount.String(),
		ShippingCost:  order.ShippingCost.Amount.String(),
		TaxAmount:     order.TaxAmount.Amount.String(),
		Total:         order.Total.Amount.String(),
		Items:         items,
		CreatedAt:     order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
