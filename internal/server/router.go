package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/marketplace/internal/port"
	"go.uber.org/zap"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Services groups everything the router needs.
type Services struct {
	Carts        port.CartRepository
	Pricer       port.CartPricer
	Consolidator port.CartConsolidator
	Checkout     port.CheckoutCoordinator
	Sellers      port.SellerAggregator
}

func NewRouter(svc Services, timeout time.Duration, logger *zap.Logger) http.Handler {
	cartHandler := NewCartHandler(svc.Carts, svc.Pricer, svc.Consolidator, timeout, logger)
	checkoutHandler := NewCheckoutHandler(svc.Checkout, timeout, logger)
	sellerHandler := NewSellerHandler(svc.Sellers, timeout, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(userIDMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/merge", cartHandler.MergeCart)
			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{id}", cartHandler.UpdateItem)
			r.Delete("/items/{id}", cartHandler.DeleteItem)
		})

		r.Post("/checkout", checkoutHandler.Checkout)

		r.Route("/sellers/{id}", func(r chi.Router) {
			r.Get("/orders", sellerHandler.Orders)
			r.Get("/stats", sellerHandler.Stats)
		})
	})

	return r
}

// userIDMiddleware trusts the X-User-ID header set by the authenticating
// front layer; session issuance is outside this service.
func userIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := r.Header.Get("X-User-ID"); userID != "" {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
		}
		next.ServeHTTP(w, r)
	})
}

func userIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return userID
	}
	return ""
}
