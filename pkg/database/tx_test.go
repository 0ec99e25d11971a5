package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/database/dbtest"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countDepartments(t *testing.T, q database.DBTX) int {
	t.Helper()
	var n int
	require.NoError(t, sqlx.GetContext(context.Background(), q, &n, "SELECT count(*) FROM departments"))
	return n
}

func insertDepartment(ctx context.Context, q database.DBTX, name string) error {
	_, err := q.ExecContext(ctx, q.Rebind("INSERT INTO departments (name) VALUES (?)"), name)
	return err
}

func TestWithTxCommits(t *testing.T) {
	tm := database.NewTxManager(dbtest.NewSQLite(t))
	ctx := context.Background()

	err := tm.WithTx(ctx, func(tx database.DBTX) error {
		return insertDepartment(ctx, tx, "Bakery")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countDepartments(t, tm.Conn()))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	tm := database.NewTxManager(dbtest.NewSQLite(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := tm.WithTx(ctx, func(tx database.DBTX) error {
		require.NoError(t, insertDepartment(ctx, tx, "Bakery"))
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countDepartments(t, tm.Conn()))
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	tm := database.NewTxManager(dbtest.NewSQLite(t))
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = tm.WithTx(ctx, func(tx database.DBTX) error {
			require.NoError(t, insertDepartment(ctx, tx, "Bakery"))
			panic("boom")
		})
	})
	assert.Equal(t, 0, countDepartments(t, tm.Conn()))
}

func TestUniqueViolationIsClassified(t *testing.T) {
	db := dbtest.NewSQLite(t)
	ctx := context.Background()

	require.NoError(t, insertDepartment(ctx, db, "Dairy"))
	err := insertDepartment(ctx, db, "Dairy")
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
	assert.False(t, database.IsForeignKeyViolation(err))
}

func TestForeignKeyViolationIsClassified(t *testing.T) {
	db := dbtest.NewSQLite(t)

	_, err := db.Exec("INSERT INTO products (name, price, department_id) VALUES ('Milk', 1.20, 999)")
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err))
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := dbtest.NewSQLite(t)
	require.NoError(t, database.MigrateUp(db))
}

func TestMigrateDownDropsSchema(t *testing.T) {
	db := dbtest.NewSQLite(t)
	require.NoError(t, database.MigrateDown(db))

	var n int
	require.NoError(t, db.Get(&n, `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'purchases'`))
	assert.Zero(t, n)

	require.NoError(t, database.MigrateUp(db))
	require.NoError(t, db.Get(&n, `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'purchases'`))
	assert.Equal(t, 1, n)
}
