package department

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database"
)

type Repository interface {
	Create(ctx context.Context, q database.DBTX, department *model.Department) error
	FindByID(ctx context.Context, q database.DBTX, id int64) (*model.Department, error)
	FindByName(ctx context.Context, q database.DBTX, name string) (*model.Department, error)
	FindAll(ctx context.Context, q database.DBTX) ([]model.Department, error)
	Update(ctx context.Context, q database.DBTX, department *model.Department) error
	Delete(ctx context.Context, q database.DBTX, id int64) error

	CountProducts(ctx context.Context, q database.DBTX, id int64) (int, error)
}
