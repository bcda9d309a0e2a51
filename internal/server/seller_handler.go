package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/marketplace/internal/port"
	"go.uber.org/zap"
)

type SellerHandler struct {
	aggregator port.SellerAggregator
	timeout    time.Duration
	logger     *zap.Logger
}

func NewSellerHandler(aggregator port.SellerAggregator, timeout time.Duration, logger *zap.Logger) *SellerHandler {
	return &SellerHandler{
		aggregator: aggregator,
		timeout:    timeout,
		logger:     logger,
	}
}

func (h *SellerHandler) Orders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sellerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_seller_id", "seller id must be a UUID")
		return
	}

	sellerOrders, err := h.aggregator.OrdersForSeller(ctx, sellerID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	dtos := make([]SellerOrderDTO, 0, len(sellerOrders))
	for _, so := range sellerOrders {
		items := make([]OrderItemDTO, 0, len(so.SellerItems))
		for _, item := range so.SellerItems {
			items = append(items, toOrderItemDTO(item))
		}

		order := toOrderDTO(so.Order)
		order.Items = nil // seller views expose only the seller's own lines

		dtos = append(dtos, SellerOrderDTO{
			Order:          order,
			SellerItems:    items,
			SellerSubtotal: so.SellerSubtotal.Amount.String(),
		})
	}

	respondJSON(w, http.StatusOK, dtos)
}

func (h *SellerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sellerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_seller_id", "seller id must be a UUID")
		return
	}

	stats, err := h.aggregator.Stats(ctx, sellerID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, SellerStatsDTO{
		ActiveProductCount: stats.ActiveProductCount,
		GrossRevenue:       stats.GrossRevenue.Amount.String(),
		CommissionPaid:     stats.CommissionPaid.Amount.String(),
		NetRevenue:         stats.NetRevenue.Amount.String(),
		DistinctOrderCount: stats.DistinctOrderCount,
	})
}
