package dto

import "github.com/shopspring/decimal"

// ProductFilters narrows ListProducts. A nil DepartmentID lists everything.
type ProductFilters struct {
	DepartmentID *int64
}

type CreateProductInput struct {
	Name         string
	Price        *decimal.Decimal
	DepartmentID *int64
	ImageURL     *string
}

// UpdateProductInput carries a partial update: nil fields are left as they
// are. An empty ImageURL clears the image.
type UpdateProductInput struct {
	ID           int64
	Name         *string
	Price        *decimal.Decimal
	DepartmentID *int64
	ImageURL     *string
}
