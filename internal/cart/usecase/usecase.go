package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
)

type cartUseCase struct {
	repo   cart.Repository
	tm     database.TxManager
	logger logger.ZapLogger
}

func NewCartUseCase(repo cart.Repository, tm database.TxManager, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		repo:   repo,
		tm:     tm,
		logger: log,
	}
}

func (uc *cartUseCase) GetCart(ctx context.Context, identity auth.Identity) (*dto.Cart, error) {
	lines, err := uc.repo.FindLines(ctx, uc.tm.Conn(), identity.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.Cart{Lines: lines, Total: model.CartTotal(lines)}, nil
}

func (uc *cartUseCase) AddToCart(ctx context.Context, identity auth.Identity, input *dto.AddItemInput) (*model.CartItem, error) {
	if input.ProductID <= 0 {
		return nil, apperror.New(apperror.BadRequest, "product_id is required")
	}
	if input.Quantity < 1 {
		return nil, apperror.New(apperror.BadRequest, "quantity must be at least 1")
	}

	now := time.Now().UTC()
	item := &model.CartItem{
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
		UserID:    identity.UserID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	}

	err := uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		ok, err := uc.repo.ProductExists(ctx, tx, input.ProductID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.New(apperror.NotFound, "product not found")
		}
		return uc.repo.Upsert(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("cart item added",
		zap.Int64("user_id", identity.UserID),
		zap.Int64("product_id", item.ProductID),
		zap.Int("quantity", item.Quantity),
	)
	return item, nil
}

// ownedItem loads itemID and checks it belongs to the caller.
func (uc *cartUseCase) ownedItem(ctx context.Context, q database.DBTX, identity auth.Identity, itemID int64) (*model.CartItem, error) {
	item, err := uc.repo.FindByID(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.New(apperror.NotFound, "cart item not found")
	}
	if item.UserID != identity.UserID {
		return nil, apperror.New(apperror.Forbidden, "cart item belongs to another user")
	}
	return item, nil
}

func (uc *cartUseCase) UpdateCartItem(ctx context.Context, identity auth.Identity, input *dto.UpdateItemInput) error {
	return uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		item, err := uc.ownedItem(ctx, tx, identity, input.ItemID)
		if err != nil {
			return err
		}
		if input.Quantity <= 0 {
			return uc.repo.Delete(ctx, tx, item.ID)
		}
		return uc.repo.UpdateQuantity(ctx, tx, item.ID, input.Quantity, time.Now().UTC())
	})
}

func (uc *cartUseCase) RemoveCartItem(ctx context.Context, identity auth.Identity, itemID int64) error {
	return uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		item, err := uc.ownedItem(ctx, tx, identity, itemID)
		if err != nil {
			return err
		}
		return uc.repo.Delete(ctx, tx, item.ID)
	})
}

func (uc *cartUseCase) ClearCart(ctx context.Context, identity auth.Identity) error {
	removed, err := uc.repo.DeleteByUser(ctx, uc.tm.Conn(), identity.UserID)
	if err != nil {
		return err
	}
	uc.logger.Debug("cart cleared", zap.Int64("user_id", identity.UserID), zap.Int64("removed", removed))
	return nil
}
