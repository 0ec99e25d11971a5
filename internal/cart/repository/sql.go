package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct{}

func NewSQLRepository() *SQLRepository {
	return &SQLRepository{}
}

func (r *SQLRepository) FindLines(ctx context.Context, q database.DBTX, userID int64) ([]model.CartLine, error) {
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

func (r *SQLRepository) FindByID(ctx context.Context, q database.DBTX, id int64) (*model.CartItem, error) {
	var item model.CartItem
	err := sqlx.GetContext(ctx, q, &item, q.Rebind(`SELECT * FROM cart_items WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQLRepository) Upsert(ctx context.Context, q database.DBTX, item *model.CartItem) error {
	query := `
        INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (user_id, product_id)
        DO UPDATE SET quantity = cart_items.quantity + excluded.quantity,
                      updated_at = excluded.updated_at
        RETURNING id, quantity
    `
	row := q.QueryRowxContext(ctx, q.Rebind(query),
		item.UserID, item.ProductID, item.Quantity, item.CreatedAt, item.UpdatedAt)
	return row.Scan(&item.ID, &item.Quantity)
}

func (r *SQLRepository) UpdateQuantity(ctx context.Context, q database.DBTX, id int64, quantity int, at time.Time) error {
	_, err := q.ExecContext(ctx,
		q.Rebind(`UPDATE cart_items SET quantity = ?, updated_at = ? WHERE id = ?`),
		quantity, at, id)
	return err
}

func (r *SQLRepository) Delete(ctx context.Context, q database.DBTX, id int64) error {
	_, err := q.ExecContext(ctx, q.Rebind("DELETE FROM cart_items WHERE id = ?"), id)
	return err
}

func (r *SQLRepository) DeleteByUser(ctx context.Context, q database.DBTX, userID int64) (int64, error) {
	res, err := q.ExecContext(ctx, q.Rebind("DELETE FROM cart_items WHERE user_id = ?"), userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLRepository) ProductExists(ctx context.Context, q database.DBTX, productID int64) (bool, error) {
	var count int
	err := sqlx.GetContext(ctx, q, &count, q.Rebind(`SELECT count(*) FROM products WHERE id = ?`), productID)
	return count > 0, err
}
