package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartTotal(t *testing.T) {
	lines := []CartLine{
		{Price: decimal.RequireFromString("4.99"), Quantity: 2},
		{Price: decimal.RequireFromString("7.50"), Quantity: 1},
	}

	assert.Equal(t, "9.98", lines[0].Subtotal().String())
	assert.True(t, decimal.RequireFromString("17.48").Equal(CartTotal(lines)))
	assert.True(t, CartTotal(nil).IsZero())
}

func TestPurchaseItemSubtotal(t *testing.T) {
	item := PurchaseItem{Quantity: 3, PriceAtPurchase: decimal.RequireFromString("0.10")}
	assert.Equal(t, "0.3", item.Subtotal().String())
}
