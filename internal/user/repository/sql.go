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

func (r *SQLRepository) Create(ctx context.Context, q database.DBTX, u *model.User) error {
	query := `
        INSERT INTO users (email, password_hash, is_admin, created_at)
        VALUES (?, ?, ?, ?)
        RETURNING id
    `
	return sqlx.GetContext(ctx, q, &u.ID, q.Rebind(query), u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt)
}

func (r *SQLRepository) FindByID(ctx context.Context, q database.DBTX, id int64) (*model.User, error) {
	return r.findOne(ctx, q, `SELECT * FROM users WHERE id = ? LIMIT 1`, id)
}

func (r *SQLRepository) FindByEmail(ctx context.Context, q database.DBTX, email string) (*model.User, error) {
	return r.findOne(ctx, q, `SELECT * FROM users WHERE email = ? LIMIT 1`, email)
}

func (r *SQLRepository) findOne(ctx context.Context, q database.DBTX, query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := sqlx.GetContext(ctx, q, &user, q.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *SQLRepository) UpdateCredentials(ctx context.Context, q database.DBTX, id int64, passwordHash string, isAdmin bool) error {
	_, err := q.ExecContext(ctx, q.Rebind(`UPDATE users SET password_hash = ?, is_admin = ? WHERE id = ?`), passwordHash, isAdmin, id)
	return err
}
