package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/pkg/database"
)

type Repository interface {
	Create(ctx context.Context, q database.DBTX, product *model.Product) error
	FindByID(ctx context.Context, q database.DBTX, id int64) (*model.Product, error)
	FindAll(ctx context.Context, q database.DBTX, filters *dto.ProductFilters) ([]model.Product, error)
	Update(ctx context.Context, q database.DBTX, product *model.Product) error
	Delete(ctx context.Context, q database.DBTX, id int64) error

	DepartmentExists(ctx context.Context, q database.DBTX, departmentID int64) (bool, error)
}
