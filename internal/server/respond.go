package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nikolayk812/marketplace/internal/domain"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ProductID string `json:"productId,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondDomainError maps the error taxonomy onto HTTP statuses.
func respondDomainError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var validationErr domain.ValidationError
	var stockErr domain.InsufficientStockError
	var unavailableErr domain.ProductUnavailableError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, "validation_failed", validationErr.Error())
	case errors.As(err, &stockErr):
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error:     stockErr.Error(),
			Code:      "insufficient_stock",
			ProductID: stockErr.ProductID.String(),
		})
	case errors.As(err, &unavailableErr):
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error:     unavailableErr.Error(),
			Code:      "product_unavailable",
			ProductID: unavailableErr.ProductID.String(),
		})
	case errors.Is(err, domain.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, domain.ErrCartNotFound), errors.Is(err, domain.ErrCartItemNotFound), errors.Is(err, domain.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domain.ErrCheckoutFailed):
		// cart is guaranteed untouched, safe for the client to retry
		respondError(w, http.StatusBadGateway, "checkout_failed", domain.ErrCheckoutFailed.Error())
	default:
		logger.Error("internal error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
