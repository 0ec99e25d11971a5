package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type UseCase interface {
	Checkout(ctx context.Context, identity auth.Identity) (*model.Purchase, error)
	ListOrders(ctx context.Context, identity auth.Identity) ([]model.PurchaseSummary, error)
	GetOrder(ctx context.Context, identity auth.Identity, code string) (*model.Purchase, error)
}
