package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

type Seller struct {
	ID        uuid.UUID
	StoreName string
	Slug      string
	CreatedAt time.Time
}

type Product struct {
	ID       uuid.UUID
	SellerID uuid.UUID
	Name     string
	Slug     string
	Image    *string
	Price    Money
	Stock    int32
	Status   ProductStatus

	CreatedAt time.Time
}

// ProductVariant overrides the product price when Price is non-nil and
// always carries its own stock counter, independent of the product's.
// A variant has no seller of its own, it inherits the product's.
type ProductVariant struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	SKU       string
	Price     *Money
	Stock     int32
}
