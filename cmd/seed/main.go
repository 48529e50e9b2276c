package main

import (
	"context"
	"errors"

	"github.com/mini-ozon/internal/config"
	"github.com/mini-ozon/internal/constants"
	"github.com/mini-ozon/internal/logger"
	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/provider"
	"github.com/mini-ozon/internal/service"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type seedCategory struct {
	Name   string
	Parent string
}

type seedProduct struct {
	Name     string
	Price    string
	Category string
}

type seedUser struct {
	Username string
	Password string
	Role     string
}

var categories = []seedCategory{
	{Name: "Electronics"},
	{Name: "Phones", Parent: "Electronics"},
	{Name: "Laptops", Parent: "Electronics"},
	{Name: "Books"},
	{Name: "Programming", Parent: "Books"},
}

var products = []seedProduct{
	{Name: "Smartphone X", Price: "699.00", Category: "Phones"},
	{Name: "Budget Phone", Price: "149.90", Category: "Phones"},
	{Name: "Ultrabook 14", Price: "1299.99", Category: "Laptops"},
	{Name: "USB-C Charger", Price: "19.50", Category: "Electronics"},
	{Name: "The Go Programming Language", Price: "39.95", Category: "Programming"},
	{Name: "Classic Novel", Price: "9.99", Category: "Books"},
}

var users = []seedUser{
	{Username: "seller", Password: "seller12345", Role: constants.RoleSeller},
	{Username: "buyer", Password: "buyer12345", Role: constants.RoleBuyer},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Database.Debug); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	if _, err := models.EnsureAdmin(models.DB, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 种子数据不走异步队列
	container, err := provider.NewContainerWithDB(cfg, models.DB, nil)
	if err != nil {
		stdLog.Fatalf("Failed to build container: %v", err)
	}
	ctx := context.Background()

	categoryIDs := map[string]uint{}
	for _, item := range categories {
		var existing models.Category
		err := models.DB.Where("name = ?", item.Name).First(&existing).Error
		if err == nil {
			categoryIDs[item.Name] = existing.ID
			stdLog.Printf("Category already exists: %s", item.Name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			stdLog.Fatalf("Failed to load category %s: %v", item.Name, err)
		}
		input := service.CreateCategoryInput{Name: item.Name}
		if item.Parent != "" {
			parentID := categoryIDs[item.Parent]
			input.ParentID = &parentID
		}
		created, err := container.CategoryService.Create(ctx, input)
		if err != nil {
			stdLog.Fatalf("Failed to create category %s: %v", item.Name, err)
		}
		categoryIDs[item.Name] = created.ID
		stdLog.Printf("Created category: %s", item.Name)
	}

	for _, item := range products {
		var count int64
		if err := models.DB.Model(&models.Product{}).Where("name = ?", item.Name).Count(&count).Error; err != nil {
			stdLog.Fatalf("Failed to check product %s: %v", item.Name, err)
		}
		if count > 0 {
			stdLog.Printf("Product already exists: %s", item.Name)
			continue
		}
		if _, err := container.ProductService.Create(service.ProductInput{
			Name:       item.Name,
			Price:      item.Price,
			CategoryID: categoryIDs[item.Category],
		}); err != nil {
			stdLog.Fatalf("Failed to create product %s: %v", item.Name, err)
		}
		stdLog.Printf("Created product: %s", item.Name)
	}

	for _, item := range users {
		_, err := container.UserAuthService.Register(service.RegisterInput{
			Username: item.Username,
			Password: item.Password,
			Role:     item.Role,
		})
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			stdLog.Printf("User already exists: %s", item.Username)
		case err != nil:
			stdLog.Printf("Failed to create user %s: %v", item.Username, err)
		default:
			stdLog.Printf("Created user: %s (%s)", item.Username, item.Role)
		}
	}

	stdLog.Printf("Seed completed")
}
