package provider

import (
	"github.com/mini-ozon/internal/authz"
	"github.com/mini-ozon/internal/cache"
	"github.com/mini-ozon/internal/config"
	"github.com/mini-ozon/internal/logger"
	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/queue"
	"github.com/mini-ozon/internal/repository"
	"github.com/mini-ozon/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo           repository.UserRepository
	CategoryRepo       repository.CategoryRepository
	ProductRepo        repository.ProductRepository
	CartRepo           repository.CartRepository
	OrderRepo          repository.OrderRepository
	OrderStatusLogRepo repository.OrderStatusLogRepository

	// Services
	AuthzService      *authz.Service
	UserAuthService   *service.UserAuthService
	CategoryService   *service.CategoryService
	ProductService    *service.ProductService
	CartService       *service.CartService
	OrderService      *service.OrderService
	OrderEventService *service.OrderEventService
}

// NewContainer 初始化容器（使用全局数据库连接）
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c, err := NewContainerWithDB(cfg, models.DB, queueClient)
	if err != nil {
		logger.Errorw("provider_init_container_failed", "error", err)
		panic(err)
	}
	return c
}

// NewContainerWithDB 基于指定连接初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) (*Container, error) {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.OrderStatusLogRepo = repository.NewOrderStatusLogRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.AuthzService)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo, c.CartRepo, c.Config.Catalog)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.CartRepo, c.CategoryService)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.QueueClient)
	c.OrderEventService = service.NewOrderEventService(c.OrderRepo, c.OrderStatusLogRepo)
	return nil
}
