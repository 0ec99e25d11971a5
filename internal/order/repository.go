package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database"
)

type Repository interface {
	// FindCartLines returns the user's cart rows priced at the current
	// catalog price.
	FindCartLines(ctx context.Context, q database.DBTX, userID int64) ([]model.CartLine, error)
	DeleteCartItems(ctx context.Context, q database.DBTX, userID int64, ids []int64) error

	CreatePurchase(ctx context.Context, q database.DBTX, purchase *model.Purchase) error
	CreateItem(ctx context.Context, q database.DBTX, item *model.PurchaseItem) error

	ListSummaries(ctx context.Context, q database.DBTX, userID int64) ([]model.PurchaseSummary, error)
	FindByCode(ctx context.Context, q database.DBTX, code string) (*model.Purchase, error)
	FindItems(ctx context.Context, q database.DBTX, purchaseID int64) ([]model.PurchaseItem, error)
}

// Publisher announces committed purchases to other services.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, purchase *model.Purchase) error
}
