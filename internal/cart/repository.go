package cart

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database"
)

type Repository interface {
	// FindLines returns the user's cart joined with current product data,
	// ordered by cart item id.
	FindLines(ctx context.Context, q database.DBTX, userID int64) ([]model.CartLine, error)
	FindByID(ctx context.Context, q database.DBTX, id int64) (*model.CartItem, error)
	// Upsert inserts the item or adds its quantity to the existing row for
	// the same user and product. item is updated with the stored row.
	Upsert(ctx context.Context, q database.DBTX, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, q database.DBTX, id int64, quantity int, at time.Time) error
	Delete(ctx context.Context, q database.DBTX, id int64) error
	DeleteByUser(ctx context.Context, q database.DBTX, userID int64) (int64, error)

	ProductExists(ctx context.Context, q database.DBTX, productID int64) (bool, error)
}
