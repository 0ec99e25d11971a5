package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is immutable once written. TotalPrice always equals the sum of
// its items' Quantity * PriceAtPurchase.
type Purchase struct {
	ID         int64           `db:"id"`
	UserID     int64           `db:"user_id"`
	UniqueCode string          `db:"unique_code"`
	TotalPrice decimal.Decimal `db:"total_price"`
	CreatedAt  time.Time       `db:"created_at"`
	Items      []PurchaseItem  `db:"-"`
}

type PurchaseItem struct {
	ID              int64           `db:"id"`
	PurchaseID      int64           `db:"purchase_id"`
	ProductID       *int64          `db:"product_id"` // Null once the product is deleted
	ProductName     string          `db:"product_name"`
	Quantity        int             `db:"quantity"`
	PriceAtPurchase decimal.Decimal `db:"price_at_purchase"`
}

func (i PurchaseItem) Subtotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PurchaseSummary is a purchase header with its line count, as listed in
// order history.
type PurchaseSummary struct {
	ID         int64           `db:"id"`
	UniqueCode string          `db:"unique_code"`
	TotalPrice decimal.Decimal `db:"total_price"`
	CreatedAt  time.Time       `db:"created_at"`
	ItemCount  int             `db:"item_count"`
}
