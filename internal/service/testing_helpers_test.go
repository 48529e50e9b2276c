package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mini-ozon/internal/config"
	"github.com/mini-ozon/internal/constants"
	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceEnv struct {
	db         *gorm.DB
	categories *CategoryService
	products   *ProductService
	carts      *CartService
	orders     *OrderService
	events     *OrderEventService
	auth       *UserAuthService
	binder     *recordingBinder
	cfg        *config.Config
}

type recordingBinder struct {
	bindings map[uint]string
	err      error
}

func (b *recordingBinder) BindUserRole(userID uint, role string) error {
	if b.err != nil {
		return b.err
	}
	b.bindings[userID] = role
	return nil
}

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), models.NewGormConfig(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.MigrateDB(db))
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()
	db := openServiceTestDB(t)

	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireLower: true, RequireNumber: true},
		},
		Catalog: config.CatalogConfig{MaxTreeDepth: 32},
	}

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewOrderStatusLogRepository(db)

	binder := &recordingBinder{bindings: map[uint]string{}}
	categories := NewCategoryService(categoryRepo, productRepo, cartRepo, cfg.Catalog)
	return &serviceEnv{
		db:         db,
		categories: categories,
		products:   NewProductService(productRepo, categoryRepo, cartRepo, categories),
		carts:      NewCartService(cartRepo, productRepo),
		orders:     NewOrderService(orderRepo, cartRepo, productRepo, nil),
		events:     NewOrderEventService(orderRepo, logRepo),
		auth:       NewUserAuthService(cfg, userRepo, binder),
		binder:     binder,
		cfg:        cfg,
	}
}

func (e *serviceEnv) mustCategory(t *testing.T, name string, parentID *uint) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, ParentID: parentID}
	require.NoError(t, e.db.Create(category).Error)
	return category
}

func (e *serviceEnv) mustProduct(t *testing.T, name, price string, categoryID uint) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		Price:      models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		CategoryID: categoryID,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func (e *serviceEnv) mustUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", Role: constants.RoleBuyer, Status: constants.UserStatusActive}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func uintPtr(v uint) *uint {
	return &v
}
