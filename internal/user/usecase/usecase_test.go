package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/user"
	"github.com/fekuna/omnipos-storefront/internal/user/dto"
	"github.com/fekuna/omnipos-storefront/internal/user/repository"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/database/dbtest"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	uc     user.UseCase
	tokens *auth.JWTMaker
	db     *sqlx.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.NewSQLite(t)
	tokens, err := auth.NewJWTMaker("test-secret-0123456789", 7*24*time.Hour)
	require.NoError(t, err)

	uc := NewUserUseCase(
		repository.NewSQLRepository(),
		database.NewTxManager(db),
		auth.NewBcryptHasher(bcrypt.MinCost),
		tokens,
		logger.NewNop(),
	)
	return &fixture{uc: uc, tokens: tokens, db: db}
}

func (f *fixture) countUsers(t *testing.T) int {
	var n int
	require.NoError(t, f.db.Get(&n, "SELECT count(*) FROM users"))
	return n
}

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creds := &dto.CredentialsInput{Email: "ann@example.com", Password: "pa55word"}

	u, err := f.uc.Register(ctx, creds)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.False(t, u.IsAdmin)
	assert.NotEqual(t, creds.Password, u.PasswordHash)

	res, err := f.uc.Login(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", res.Email)
	assert.False(t, res.IsAdmin)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), res.ExpiresAt, time.Minute)

	claims, err := f.tokens.VerifyToken(res.AccessToken)
	require.NoError(t, err)
	identity, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: u.ID, IsAdmin: false}, identity)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, &dto.CredentialsInput{Email: "bob@example.com", Password: "one"})
	require.NoError(t, err)

	_, err = f.uc.Register(ctx, &dto.CredentialsInput{Email: " BOB@example.com ", Password: "two"})
	assert.True(t, apperror.Is(err, apperror.Conflict))
	assert.Equal(t, 1, f.countUsers(t))
}

func TestRegisterRequiresFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Register(context.Background(), &dto.CredentialsInput{Email: "x@example.com"})
	assert.True(t, apperror.Is(err, apperror.BadRequest))
	assert.Equal(t, 0, f.countUsers(t))
}

func TestRegisterRejectsOversizedCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, &dto.CredentialsInput{Email: "long@example.com", Password: strings.Repeat("a", 80)})
	assert.True(t, apperror.Is(err, apperror.BadRequest), "got %v", err)

	_, err = f.uc.Register(ctx, &dto.CredentialsInput{Email: strings.Repeat("e", 120) + "@example.com", Password: "pw"})
	assert.True(t, apperror.Is(err, apperror.BadRequest), "got %v", err)

	_, err = f.uc.CreateAdmin(ctx, &dto.CredentialsInput{Email: "ops@example.com", Password: strings.Repeat("a", 73)})
	assert.True(t, apperror.Is(err, apperror.BadRequest), "got %v", err)
	assert.Equal(t, 0, f.countUsers(t))

	_, err = f.uc.Register(ctx, &dto.CredentialsInput{Email: "edge@example.com", Password: strings.Repeat("a", 72)})
	assert.NoError(t, err)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Register(ctx, &dto.CredentialsInput{Email: "cy@example.com", Password: "right"})
	require.NoError(t, err)

	_, err = f.uc.Login(ctx, &dto.CredentialsInput{Email: "cy@example.com", Password: "wrong"})
	assert.True(t, apperror.Is(err, apperror.Unauthorized))

	_, err = f.uc.Login(ctx, &dto.CredentialsInput{Email: "nobody@example.com", Password: "right"})
	assert.True(t, apperror.Is(err, apperror.Unauthorized))
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.uc.Register(ctx, &dto.CredentialsInput{Email: "dee@example.com", Password: "pw"})
	require.NoError(t, err)

	got, err := f.uc.Me(ctx, auth.Identity{UserID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, "dee@example.com", got.Email)

	_, err = f.uc.Me(ctx, auth.Identity{UserID: u.ID + 100})
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestCreateAdminPromotesExistingUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.uc.Register(ctx, &dto.CredentialsInput{Email: "root@example.com", Password: "old"})
	require.NoError(t, err)

	admin, err := f.uc.CreateAdmin(ctx, &dto.CredentialsInput{Email: "root@example.com", Password: "new"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, admin.ID)
	assert.True(t, admin.IsAdmin)

	res, err := f.uc.Login(ctx, &dto.CredentialsInput{Email: "root@example.com", Password: "new"})
	require.NoError(t, err)
	assert.True(t, res.IsAdmin)
	assert.Equal(t, 1, f.countUsers(t))
}

func TestCreateAdminNewAccount(t *testing.T) {
	f := newFixture(t)

	admin, err := f.uc.CreateAdmin(context.Background(), &dto.CredentialsInput{Email: "ops@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotZero(t, admin.ID)
	assert.True(t, admin.IsAdmin)
}
