package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct{}

func NewSQLRepository() *SQLRepository {
	return &SQLRepository{}
}

func (r *SQLRepository) FindCartLines(ctx context.Context, q database.DBTX, userID int64) ([]model.CartLine, error) {
	query := `
        SELECT ci.id, ci.user_id, ci.product_id, p.name AS product_name,
               p.price, p.image_url, ci.quantity
        FROM cart_items ci
        JOIN products p ON p.id = ci.product_id
        WHERE ci.user_id = ?
        ORDER BY ci.id ASC
    `
	lines := []model.CartLine{}
	err := sqlx.SelectContext(ctx, q, &lines, q.Rebind(query), userID)
	return lines, err
}

func (r *SQLRepository) DeleteCartItems(ctx context.Context, q database.DBTX, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM cart_items WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, q.Rebind(query), args...)
	return err
}

func (r *SQLRepository) CreatePurchase(ctx context.Context, q database.DBTX, p *model.Purchase) error {
	query := `
        INSERT INTO purchases (user_id, unique_code, total_price, created_at)
        VALUES (?, ?, ?, ?)
        RETURNING id
    `
	return sqlx.GetContext(ctx, q, &p.ID, q.Rebind(query), p.UserID, p.UniqueCode, p.TotalPrice, p.CreatedAt)
}

func (r *SQLRepository) CreateItem(ctx context.Context, q database.DBTX, item *model.PurchaseItem) error {
	query := `
        INSERT INTO purchase_items (purchase_id, product_id, product_name, quantity, price_at_purchase)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id
    `
	return sqlx.GetContext(ctx, q, &item.ID, q.Rebind(query),
		item.PurchaseID, item.ProductID, item.ProductName, item.Quantity, item.PriceAtPurchase)
}

func (r *SQLRepository) ListSummaries(ctx context.Context, q database.DBTX, userID int64) ([]model.PurchaseSummary, error) {
	query := `
        SELECT p.id, p.unique_code, p.total_price, p.created_at,
               COUNT(pi.id) AS item_count
        FROM purchases p
        LEFT JOIN purchase_items pi ON pi.purchase_id = p.id
        WHERE p.user_id = ?
        GROUP BY p.id, p.unique_code, p.total_price, p.created_at
        ORDER BY p.created_at DESC, p.id DESC
    `
	summaries := []model.PurchaseSummary{}
	err := sqlx.SelectContext(ctx, q, &summaries, q.Rebind(query), userID)
	return summaries, err
}

func (r *SQLRepository) FindByCode(ctx context.Context, q database.DBTX, code string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := sqlx.GetContext(ctx, q, &purchase, q.Rebind(`SELECT * FROM purchases WHERE unique_code = ? LIMIT 1`), code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *SQLRepository) FindItems(ctx context.Context, q database.DBTX, purchaseID int64) ([]model.PurchaseItem, error) {
	items := []model.PurchaseItem{}
	err := sqlx.SelectContext(ctx, q, &items,
		q.Rebind(`SELECT * FROM purchase_items WHERE purchase_id = ? ORDER BY id ASC`), purchaseID)
	return items, err
}
