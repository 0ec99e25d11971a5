package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name         string          `db:"name"`
	Price        decimal.Decimal `db:"price"`
	ImageURL     *string         `db:"image_url"` // Nullable
	DepartmentID int64           `db:"department_id"`
}
