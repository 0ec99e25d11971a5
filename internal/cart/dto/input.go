package dto

import (
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

type AddItemInput struct {
	ProductID int64
	Quantity  int
}

// UpdateItemInput sets an item's quantity. Zero or less removes the item.
type UpdateItemInput struct {
	ItemID   int64
	Quantity int
}

type Cart struct {
	Lines []model.CartLine
	Total decimal.Decimal
}
