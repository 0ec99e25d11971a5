// Package dbtest opens throwaway migrated databases for package tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewSQLite returns a private in-memory SQLite database with the full schema
// applied. It is closed when the test ends.
func NewSQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := database.NewSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.MigrateUp(db))
	return db
}

func insert(t testing.TB, db *sqlx.DB, query string, args ...interface{}) int64 {
	t.Helper()
	res, err := db.Exec(query, args...)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// SeedUser inserts a non-admin user with a placeholder password hash.
func SeedUser(t testing.TB, db *sqlx.DB, email string) int64 {
	return insert(t, db, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, "x")
}

func SeedDepartment(t testing.TB, db *sqlx.DB, name string) int64 {
	return insert(t, db, `INSERT INTO departments (name) VALUES (?)`, name)
}

// SeedProduct inserts a product priced at price, a decimal string such as
// "4.99".
func SeedProduct(t testing.TB, db *sqlx.DB, departmentID int64, name, price string) int64 {
	return insert(t, db, `INSERT INTO products (name, price, department_id) VALUES (?, ?, ?)`, name, price, departmentID)
}
