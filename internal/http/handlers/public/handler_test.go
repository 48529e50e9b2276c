package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mini-ozon/internal/config"
	handlershared "github.com/mini-ozon/internal/http/handlers/shared"
	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPublicHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handlershared.RegisterValidators()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), models.NewGormConfig(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, models.MigrateDB(db))

	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "public-test", ExpireHours: 1}}
	container, err := provider.NewContainerWithDB(cfg, db, nil)
	require.NoError(t, err)
	return New(container), db
}

func serve(h gin.HandlerFunc, method, route, path string, userID uint, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
		h(c)
	})
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, db *gorm.DB) (*models.User, *models.Product) {
	t.Helper()
	user := &models.User{Username: "buyer", PasswordHash: "x", Role: "buyer", Status: "active"}
	require.NoError(t, db.Create(user).Error)
	category := &models.Category{Name: "Books"}
	require.NoError(t, db.Create(category).Error)
	product := &models.Product{Name: "Go in Action", Price: models.NewMoneyFromDecimal(decimal.RequireFromString("12.50")), CategoryID: category.ID}
	require.NoError(t, db.Create(product).Error)
	return user, product
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	user, product := seedProduct(t, db)

	w := serve(h.AddToCart, http.MethodPost, "/cart/add", "/cart/add", user.ID, fmt.Sprintf(`{"product_id":%d}`, product.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Message  string `json:"message"`
			Quantity int    `json:"quantity"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.Quantity)
	require.Equal(t, "Product added to cart", resp.Data.Message)
}

func TestUpdateCartItemOwnership(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	user, product := seedProduct(t, db)
	other := &models.User{Username: "other", PasswordHash: "x", Role: "buyer", Status: "active"}
	require.NoError(t, db.Create(other).Error)

	_, err := h.CartService.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)
	view, err := h.CartService.View(user.ID)
	require.NoError(t, err)
	itemID := view.Items[0].ID
	path := fmt.Sprintf("/cart/item/%d/update", itemID)

	w := serve(h.UpdateCartItem, http.MethodPatch, "/cart/item/:id/update", path, other.ID, `{"quantity":3}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h.UpdateCartItem, http.MethodPatch, "/cart/item/:id/update", path, user.ID, `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(h.UpdateCartItem, http.MethodPatch, "/cart/item/:id/update", path, user.ID, `{"quantity":3}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), `"quantity":3`)

	w = serve(h.RemoveCartItem, http.MethodDelete, "/cart/item/:id", fmt.Sprintf("/cart/item/%d", itemID), user.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"deleted":true`)
}

func TestCreateProductValidation(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	_, product := seedProduct(t, db)

	cases := []struct {
		name string
		body string
		code int
	}{
		{name: "too many decimals", body: fmt.Sprintf(`{"name":"A","price":"1.234","category":%d}`, product.CategoryID), code: http.StatusBadRequest},
		{name: "negative", body: fmt.Sprintf(`{"name":"A","price":-1,"category":%d}`, product.CategoryID), code: http.StatusBadRequest},
		{name: "missing category", body: `{"name":"A","price":"1.00","category":777}`, code: http.StatusBadRequest},
		{name: "numeric price", body: fmt.Sprintf(`{"name":"A","price":9.99,"category":%d}`, product.CategoryID), code: http.StatusCreated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(h.CreateProduct, http.MethodPost, "/products", "/products", 0, tc.body)
			require.Equal(t, tc.code, w.Code, w.Body.String())
		})
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	h, _ := setupPublicHandlerTest(t)
	w := serve(h.GetCategory, http.MethodGet, "/categories/:id", "/categories/42", 0, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	w = serve(h.GetCategory, http.MethodGet, "/categories/:id", "/categories/abc", 0, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	user, _ := seedProduct(t, db)
	w := serve(h.CreateOrder, http.MethodPost, "/orders/create", "/orders/create", user.ID, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "empty")
}
