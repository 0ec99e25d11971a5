package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	return cmd.Execute()
}

func useSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storefront.db")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("LOGGER_LEVEL", "error")
	return path
}

func TestCreateAdminPromotesExistingUser(t *testing.T) {
	path := useSQLite(t)

	require.NoError(t, execute(t, "migrate", "up"))
	require.NoError(t, execute(t, "create-admin", "--email", "Boss@Example.com", "--password", "first"))
	require.NoError(t, execute(t, "create-admin", "--email", "boss@example.com", "--password", "second"))

	db, err := database.NewSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	var rows []struct {
		Email   string `db:"email"`
		IsAdmin bool   `db:"is_admin"`
	}
	require.NoError(t, db.Select(&rows, `SELECT email, is_admin FROM users`))
	require.Len(t, rows, 1)
	assert.Equal(t, "boss@example.com", rows[0].Email)
	assert.True(t, rows[0].IsAdmin)
}

func TestCreateAdminRequiresFlags(t *testing.T) {
	useSQLite(t)
	assert.Error(t, execute(t, "create-admin", "--email", "boss@example.com"))
}

func TestMigrateDown(t *testing.T) {
	useSQLite(t)
	require.NoError(t, execute(t, "migrate", "up"))
	require.NoError(t, execute(t, "migrate", "down"))
}

func TestUnsupportedDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("LOGGER_LEVEL", "error")
	err := execute(t, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}
