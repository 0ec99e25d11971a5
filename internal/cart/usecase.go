package cart

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type UseCase interface {
	GetCart(ctx context.Context, identity auth.Identity) (*dto.Cart, error)
	AddToCart(ctx context.Context, identity auth.Identity, input *dto.AddItemInput) (*model.CartItem, error)
	UpdateCartItem(ctx context.Context, identity auth.Identity, input *dto.UpdateItemInput) error
	RemoveCartItem(ctx context.Context, identity auth.Identity, itemID int64) error
	ClearCart(ctx context.Context, identity auth.Identity) error
}
