package model

import "github.com/shopspring/decimal"

type CartItem struct {
	BaseModel
	UserID    int64 `db:"user_id"`
	ProductID int64 `db:"product_id"`
	Quantity  int   `db:"quantity"`
}

// CartLine is a cart row joined with the product's current catalog data.
type CartLine struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	ProductID   int64           `db:"product_id"`
	ProductName string          `db:"product_name"`
	Price       decimal.Decimal `db:"price"`
	ImageURL    *string         `db:"image_url"`
	Quantity    int             `db:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotal sums the subtotals of lines.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
