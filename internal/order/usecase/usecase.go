package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

type orderUseCase struct {
	repo      order.Repository
	tm        database.TxManager
	publisher order.Publisher
	logger    logger.ZapLogger
	now       func() time.Time
}

// NewOrderUseCase wires checkout and order history. publisher may be nil, in
// which case no events are emitted.
func NewOrderUseCase(repo order.Repository, tm database.TxManager, publisher order.Publisher, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		tm:        tm,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// Checkout turns the caller's cart into a purchase priced at current catalog
// prices and empties the cart, all in one transaction.
func (uc *orderUseCase) Checkout(ctx context.Context, identity auth.Identity) (*model.Purchase, error) {
	purchase := &model.Purchase{
		UserID:     identity.UserID,
		UniqueCode: uuid.NewString(),
		CreatedAt:  uc.now().UTC(),
	}

	err := uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		lines, err := uc.repo.FindCartLines(ctx, tx, identity.UserID)
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(lines) == 0 {
			return apperror.New(apperror.BadRequest, "cart is empty")
		}

		purchase.TotalPrice = model.CartTotal(lines)
		if err := uc.repo.CreatePurchase(ctx, tx, purchase); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}

		ids := make([]int64, 0, len(lines))
		purchase.Items = make([]model.PurchaseItem, 0, len(lines))
		for _, line := range lines {
			productID := line.ProductID
			item := model.PurchaseItem{
				PurchaseID:      purchase.ID,
				ProductID:       &productID,
				ProductName:     line.ProductName,
				Quantity:        line.Quantity,
				PriceAtPurchase: line.Price,
			}
			if err := uc.repo.CreateItem(ctx, tx, &item); err != nil {
				return fmt.Errorf("create purchase item: %w", err)
			}
			purchase.Items = append(purchase.Items, item)
			ids = append(ids, line.ID)
		}

		if err := uc.repo.DeleteCartItems(ctx, tx, identity.UserID, ids); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("checkout completed",
		zap.Int64("user_id", identity.UserID),
		zap.String("order_code", purchase.UniqueCode),
		zap.String("total_price", purchase.TotalPrice.StringFixed(2)),
		zap.Int("items", len(purchase.Items)),
	)

	if uc.publisher != nil {
		go uc.publishCreated(purchase)
	}
	return purchase, nil
}

func (uc *orderUseCase) publishCreated(purchase *model.Purchase) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := uc.publisher.PublishOrderCreated(ctx, purchase); err != nil {
		uc.logger.Error("failed to publish OrderCreated",
			zap.String("order_code", purchase.UniqueCode),
			zap.Error(err),
		)
	}
}

func (uc *orderUseCase) ListOrders(ctx context.Context, identity auth.Identity) ([]model.PurchaseSummary, error) {
	return uc.repo.ListSummaries(ctx, uc.tm.Conn(), identity.UserID)
}

func (uc *orderUseCase) GetOrder(ctx context.Context, identity auth.Identity, code string) (*model.Purchase, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.New(apperror.BadRequest, "order code is required")
	}

	purchase, err := uc.repo.FindByCode(ctx, uc.tm.Conn(), code)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.New(apperror.NotFound, "order not found")
	}
	if purchase.UserID != identity.UserID {
		return nil, apperror.New(apperror.Forbidden, "order belongs to another user")
	}

	purchase.Items, err = uc.repo.FindItems(ctx, uc.tm.Conn(), purchase.ID)
	if err != nil {
		return nil, err
	}
	return purchase, nil
}
