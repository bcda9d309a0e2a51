package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nikolayk812/marketplace/internal/domain"
	"github.com/nikolayk812/marketplace/internal/port"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	coordinator port.CheckoutCoordinator
	timeout     time.Duration
	logger      *zap.Logger
}

func NewCheckoutHandler(coordinator port.CheckoutCoordinator, timeout time.Duration, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		coordinator: coordinator,
		timeout:     timeout,
		logger:      logger,
	}
}

type CheckoutRequestDTO struct {
	ShippingAddress domain.Address  `json:"shippingAddress"`
	BillingAddress  *domain.Address `json:"billingAddress,omitempty"`
	UseSameAddress  bool            `json:"useSameAddress"`
	Notes           *string         `json:"notes,omitempty"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.coordinator.Checkout(ctx, userID, port.CheckoutRequest{
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		UseSameAddress:  req.UseSameAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, toOrderDTO(order))
}
