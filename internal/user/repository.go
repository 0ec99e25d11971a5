package user

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database"
)

type Repository interface {
	Create(ctx context.Context, q database.DBTX, user *model.User) error
	FindByID(ctx context.Context, q database.DBTX, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, q database.DBTX, email string) (*model.User, error)
	UpdateCredentials(ctx context.Context, q database.DBTX, id int64, passwordHash string, isAdmin bool) error
}
