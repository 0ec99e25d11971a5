package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct{}

func NewSQLRepository() *SQLRepository {
	return &SQLRepository{}
}

func (r *SQLRepository) Create(ctx context.Context, q database.DBTX, p *model.Product) error {
	query := `
        INSERT INTO products (name, price, image_url, department_id, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        RETURNING id
    `
	return sqlx.GetContext(ctx, q, &p.ID, q.Rebind(query),
		p.Name, p.Price, p.ImageURL, p.DepartmentID, p.CreatedAt, p.UpdatedAt)
}

func (r *SQLRepository) FindByID(ctx context.Context, q database.DBTX, id int64) (*model.Product, error) {
	var product model.Product
	err := sqlx.GetContext(ctx, q, &product, q.Rebind(`SELECT * FROM products WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, q database.DBTX, f *dto.ProductFilters) ([]model.Product, error) {
	conditions := []string{}
	args := []interface{}{}

	if f != nil && f.DepartmentID != nil {
		conditions = append(conditions, "department_id = ?")
		args = append(args, *f.DepartmentID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	products := []model.Product{}
	query := "SELECT * FROM products" + whereClause + " ORDER BY id ASC"
	err := sqlx.SelectContext(ctx, q, &products, q.Rebind(query), args...)
	return products, err
}

func (r *SQLRepository) Update(ctx context.Context, q database.DBTX, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            price = :price,
            image_url = :image_url,
            department_id = :department_id,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, q, query, p)
	return err
}

// Delete removes the product. Cart rows go with it and purchase items keep
// their snapshot with a null product_id, both through foreign key actions.
func (r *SQLRepository) Delete(ctx context.Context, q database.DBTX, id int64) error {
	_, err := q.ExecContext(ctx, q.Rebind("DELETE FROM products WHERE id = ?"), id)
	return err
}

func (r *SQLRepository) DepartmentExists(ctx context.Context, q database.DBTX, departmentID int64) (bool, error) {
	var count int
	err := sqlx.GetContext(ctx, q, &count, q.Rebind(`SELECT count(*) FROM departments WHERE id = ?`), departmentID)
	return count > 0, err
}
