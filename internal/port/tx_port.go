package port

import "context"

// Stores bundles transaction-scoped repositories handed to an InTx callback.
type Stores struct {
	Carts   CartRepository
	Catalog CatalogRepository
	Orders  OrderRepository
}

// TxRunner executes fn against repositories bound to a single transaction.
// An error from fn rolls everything back as one unit.
type TxRunner interface {
	InTx(ctx context.Context, fn func(s Stores) error) error
}
