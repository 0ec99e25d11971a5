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

func (r *SQLRepository) Create(ctx context.Context, q database.DBTX, d *model.Department) error {
	query := `
        INSERT INTO departments (name, created_at, updated_at)
        VALUES (?, ?, ?)
        RETURNING id
    `
	return sqlx.GetContext(ctx, q, &d.ID, q.Rebind(query), d.Name, d.CreatedAt, d.UpdatedAt)
}

func (r *SQLRepository) FindByID(ctx context.Context, q database.DBTX, id int64) (*model.Department, error) {
	return r.findOne(ctx, q, `SELECT * FROM departments WHERE id = ? LIMIT 1`, id)
}

func (r *SQLRepository) FindByName(ctx context.Context, q database.DBTX, name string) (*model.Department, error) {
	return r.findOne(ctx, q, `SELECT * FROM departments WHERE name = ? LIMIT 1`, name)
}

func (r *SQLRepository) findOne(ctx context.Context, q database.DBTX, query string, arg interface{}) (*model.Department, error) {
	var department model.Department
	err := sqlx.GetContext(ctx, q, &department, q.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, q database.DBTX) ([]model.Department, error) {
	departments := []model.Department{}
	err := sqlx.SelectContext(ctx, q, &departments, `SELECT * FROM departments ORDER BY id ASC`)
	return departments, err
}

func (r *SQLRepository) Update(ctx context.Context, q database.DBTX, d *model.Department) error {
	query := `
        UPDATE departments
        SET name = :name,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, q, query, d)
	return err
}

func (r *SQLRepository) Delete(ctx context.Context, q database.DBTX, id int64) error {
	_, err := q.ExecContext(ctx, q.Rebind("DELETE FROM departments WHERE id = ?"), id)
	return err
}

func (r *SQLRepository) CountProducts(ctx context.Context, q database.DBTX, id int64) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, q, &count, q.Rebind(`SELECT count(*) FROM products WHERE department_id = ?`), id)
	return count, err
}
