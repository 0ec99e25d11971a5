package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/database/dbtest"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	t      *testing.T
	db     *sqlx.DB
	router *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := dbtest.NewSQLite(t)
	tokens, err := auth.NewJWTMaker("integration-secret-key", time.Hour)
	require.NoError(t, err)

	log := logger.NewNop()
	handlers := NewHandlers(Deps{
		Tx:     database.NewTxManager(db),
		Hasher: auth.NewBcryptHasher(bcrypt.MinCost),
		Tokens: tokens,
		Logger: log,
	})
	return &testApp{t: t, db: db, router: NewRouter(handlers, tokens, RouterConfig{}, log)}
}

func (a *testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// signup registers email and returns a token. Admins are promoted directly in
// the database before logging in.
func (a *testApp) signup(email string, admin bool) string {
	a.t.Helper()
	creds := map[string]string{"email": email, "password": "secret-pass"}
	w := a.do(http.MethodPost, "/auth/register", "", creds)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	if admin {
		_, err := a.db.Exec(`UPDATE users SET is_admin = ? WHERE email = ?`, true, email)
		require.NoError(a.t, err)
	}

	w = a.do(http.MethodPost, "/auth/login", "", creds)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[map[string]interface{}](a.t, w)["access_token"].(string)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w := app.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, w)["status"])
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.signup("ann@example.com", false)

	w := app.do(http.MethodPost, "/auth/register", "", map[string]string{"email": "ann@example.com", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, "/auth/register", "", map[string]string{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ann@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "not-an-email", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ann@example.com", "password": strings.Repeat("a", 80)})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodPost, "/auth/register", "", map[string]string{"email": "long@example.com", "password": strings.Repeat("a", 80)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password must be at most 72 bytes", decode[map[string]string](t, w)["message"])

	w = app.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]interface{}](t, w)
	assert.Equal(t, "ann@example.com", me["email"])
	assert.Equal(t, false, me["is_admin"])

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/auth/me", "garbage", nil).Code)
}

func TestAdminGate(t *testing.T) {
	app := newTestApp(t)
	shopper := app.signup("shopper@example.com", false)

	body := map[string]string{"name": "Bakery"}
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodPost, "/admin/departments", "", body).Code)
	assert.Equal(t, http.StatusForbidden, app.do(http.MethodPost, "/admin/departments", shopper, body).Code)
}

func TestCatalogEndpoints(t *testing.T) {
	app := newTestApp(t)
	admin := app.signup("admin@example.com", true)

	w := app.do(http.MethodPost, "/admin/departments", admin, map[string]string{"name": "Bakery"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	deptID := int64(decode[map[string]interface{}](t, w)["id"].(float64))

	w = app.do(http.MethodPost, "/admin/departments", admin, map[string]string{"name": "Bakery"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, "/admin/products", admin, map[string]interface{}{
		"name": "Bread", "price": 2.5, "department_id": deptID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product := decode[map[string]interface{}](t, w)
	assert.Equal(t, 2.5, product["price"])
	assert.Nil(t, product["image_url"])

	w = app.do(http.MethodPost, "/admin/products", admin, map[string]interface{}{
		"name": "Cake", "price": -1, "department_id": deptID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodGet, "/products?department_id=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodGet, "/products?department_id=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, w), 1)

	w = app.do(http.MethodGet, "/departments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, w), 1)

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/products/999", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodGet, "/products/abc", "", nil).Code)

	w = app.do(http.MethodPut, "/admin/products/1", admin, map[string]interface{}{"price": "3.75"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 3.75, decode[map[string]interface{}](t, w)["price"])

	w = app.do(http.MethodPut, "/admin/products/1", admin, map[string]interface{}{"image_url": "bread.png"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "bread.png", decode[map[string]interface{}](t, w)["image_url"])

	w = app.do(http.MethodPut, "/admin/products/1", admin, map[string]interface{}{"name": "Rye"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "bread.png", decode[map[string]interface{}](t, w)["image_url"])

	w = app.do(http.MethodPut, "/admin/products/1", admin, map[string]interface{}{"image_url": nil})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Nil(t, decode[map[string]interface{}](t, w)["image_url"])

	w = app.do(http.MethodPost, "/admin/departments", admin, map[string]string{"name": strings.Repeat("d", 51)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = app.do(http.MethodPut, "/admin/products/1", admin, map[string]interface{}{"price": "100000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodDelete, "/admin/departments/1", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cannot delete department with products", decode[map[string]string](t, w)["message"])

	assert.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/admin/products/1", admin, nil).Code)
	assert.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/admin/departments/1", admin, nil).Code)
}

func TestShoppingFlow(t *testing.T) {
	app := newTestApp(t)
	admin := app.signup("admin@example.com", true)
	alice := app.signup("alice@example.com", false)
	bob := app.signup("bob@example.com", false)

	w := app.do(http.MethodPost, "/admin/departments", admin, map[string]string{"name": "Grocery"})
	require.Equal(t, http.StatusCreated, w.Code)
	for _, p := range []map[string]interface{}{
		{"name": "Bread", "price": "4.99", "department_id": 1},
		{"name": "Cheese", "price": "7.50", "department_id": 1},
	} {
		require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/admin/products", admin, p).Code)
	}

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/cart", "", nil).Code)

	w = app.do(http.MethodGet, "/cart", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = app.do(http.MethodPost, "/cart", alice, map[string]interface{}{"product_id": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/cart", alice, map[string]interface{}{"product_id": 1}).Code)
	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/cart", alice, map[string]interface{}{"product_id": 2, "quantity": 1}).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/cart", alice, map[string]interface{}{"product_id": 2, "quantity": 0}).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodPost, "/cart", alice, map[string]interface{}{"product_id": 99}).Code)

	w = app.do(http.MethodGet, "/cart", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	lines := decode[[]struct {
		ID       int64   `json:"id"`
		Quantity int     `json:"quantity"`
		Subtotal float64 `json:"subtotal"`
	}](t, w)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 9.98, lines[0].Subtotal)
	assert.Equal(t, 7.5, lines[1].Subtotal)

	itemPath := "/cart/" + jsonInt(lines[0].ID)
	assert.Equal(t, http.StatusForbidden, app.do(http.MethodPut, itemPath, bob, map[string]int{"quantity": 5}).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPut, "/cart/abc", alice, map[string]int{"quantity": 5}).Code)

	w = app.do(http.MethodPost, "/orders/checkout", alice, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	checkout := decode[map[string]interface{}](t, w)
	assert.Equal(t, "Checkout successful", checkout["message"])
	assert.Equal(t, 17.48, checkout["total_price"])
	code := checkout["order_code"].(string)

	w = app.do(http.MethodPost, "/orders/checkout", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cart is empty", decode[map[string]string](t, w)["message"])

	w = app.do(http.MethodGet, "/orders", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode[[]map[string]interface{}](t, w)
	require.Len(t, orders, 1)
	assert.Equal(t, code, orders[0]["unique_code"])
	assert.Equal(t, float64(2), orders[0]["item_count"])

	w = app.do(http.MethodGet, "/orders/"+code, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[map[string]interface{}](t, w)
	assert.Len(t, detail["items"], 2)

	assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/orders/"+code, bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/orders/does-not-exist", alice, nil).Code)

	assert.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/cart", alice, nil).Code)
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
