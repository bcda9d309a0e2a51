package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/marketplace/internal/domain"
	"github.com/nikolayk812/marketplace/internal/port"
	"go.uber.org/zap"
)

type CartHandler struct {
	carts        port.CartRepository
	pricer       port.CartPricer
	consolidator port.CartConsolidator
	timeout      time.Duration
	logger       *zap.Logger
}

func NewCartHandler(carts port.CartRepository, pricer port.CartPricer, consolidator port.CartConsolidator, timeout time.Duration, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:        carts,
		pricer:       pricer,
		consolidator: consolidator,
		timeout:      timeout,
		logger:       logger,
	}
}

type AddItemRequestDTO struct {
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId,omitempty"`
	Quantity  int32   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int32 `json:"quantity"`
}

type MergeRequestDTO struct {
	Items []AddItemRequestDTO `json:"items"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	items, err := h.pricer.PricedItems(ctx, userID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponseDTO(items))
}

func (h *CartHandler) MergeCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req MergeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	local := make([]domain.LocalCartItem, 0, len(req.Items))
	for _, dto := range req.Items {
		item, err := localItemFromDTO(dto)
		if err != nil {
			respondDomainError(w, h.logger, err)
			return
		}
		local = append(local, item)
	}

	merged, err := h.consolidator.Merge(ctx, userID, local)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponseDTO(merged))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	item, err := localItemFromDTO(req)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	cart, err := h.carts.EnsureCart(ctx, userID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	if err := h.carts.UpsertItem(ctx, cart.ID, item.ProductID, item.VariantID, item.Quantity); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	items, err := h.pricer.PricedItems(ctx, userID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCartResponseDTO(items))
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id must be a UUID")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.authorizeItem(ctx, userID, itemID); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	if err := h.carts.SetItemQuantity(ctx, itemID, req.Quantity); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id must be a UUID")
		return
	}

	if err := h.authorizeItem(ctx, userID, itemID); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	deleted, err := h.carts.DeleteItem(ctx, itemID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "not_found", "cart item not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// authorizeItem is the ownership check the repository itself does not do.
func (h *CartHandler) authorizeItem(ctx context.Context, userID string, itemID uuid.UUID) error {
	item, err := h.carts.GetItem(ctx, itemID)
	if err != nil {
		return err
	}

	cart, err := h.carts.GetCart(ctx, userID)
	if err != nil {
		return err
	}
	if item.CartID != cart.ID {
		return domain.ErrForbidden
	}

	return nil
}

func localItemFromDTO(dto AddItemRequestDTO) (domain.LocalCartItem, error) {
	productID, err := uuid.Parse(dto.ProductID)
	if err != nil {
		return domain.LocalCartItem{}, domain.ValidationError{Field: "productId", Reason: "must be a UUID"}
	}

	var variantID *uuid.UUID
	if dto.VariantID != nil && *dto.VariantID != "" {
		id, err := uuid.Parse(*dto.VariantID)
		if err != nil {
			return domain.LocalCartItem{}, domain.ValidationError{Field: "variantId", Reason: "must be a UUID"}
		}
		variantID = &id
	}

	if dto.Quantity <= 0 {
		return domain.LocalCartItem{}, domain.ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	return domain.LocalCartItem{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  dto.Quantity,
	}, nil
}
