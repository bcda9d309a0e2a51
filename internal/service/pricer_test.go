package service_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/marketplace/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricedItems_NoCartYet(t *testing.T) {
	pricer := service.NewCartPricer(newMemCartRepo(), newMockCatalog())

	items, err := pricer.PricedItems(t.Context(), gofakeit.UUID())
	require.NoError(t, err, "a user without a cart prices to an empty list")
	assert.Empty(t, items)
}

func TestPricedItems_EmptyUserID(t *testing.T) {
	pricer := service.NewCartPricer(newMemCartRepo(), newMockCatalog())

	_, err := pricer.PricedItems(t.Context(), "")
	require.Error(t, err)
}
