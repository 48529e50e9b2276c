package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mini-ozon/internal/authz"
	"github.com/mini-ozon/internal/cache"
	"github.com/mini-ozon/internal/config"
	"github.com/mini-ozon/internal/constants"
	adminhandlers "github.com/mini-ozon/internal/http/handlers/admin"
	publichandlers "github.com/mini-ozon/internal/http/handlers/public"
	handlershared "github.com/mini-ozon/internal/http/handlers/shared"
	"github.com/mini-ozon/internal/http/response"
	"github.com/mini-ozon/internal/logger"
	"github.com/mini-ozon/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()
	handlershared.RegisterValidators()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}
	loginFallback := NewLocalLimiter(cfg.Security.FallbackRateLimit.RequestsPerSecond, cfg.Security.FallbackRateLimit.Burst)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username"), loginFallback), publicHandler.UserLogin)
			auth.GET("/me", UserJWTAuthMiddleware(c.UserAuthService), publicHandler.GetCurrentUser)
		}

		// 公开目录接口
		apiV1.GET("/categories", publicHandler.GetCategories)
		apiV1.GET("/categories/:id", publicHandler.GetCategory)
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)

		// 需要登录且通过角色校验的接口
		authorized := apiV1.Group("")
		authorized.Use(UserJWTAuthMiddleware(c.UserAuthService), RoleRBACMiddleware(c.AuthzService))
		{
			// 购物车
			authorized.GET("/cart", publicHandler.GetCart)
			authorized.POST("/cart/add", publicHandler.AddToCart)
			authorized.PATCH("/cart/item/:id/update", publicHandler.UpdateCartItem)
			authorized.DELETE("/cart/item/:id", publicHandler.RemoveCartItem)

			// 订单
			authorized.POST("/orders/create", publicHandler.CreateOrder)
			authorized.GET("/orders/history", publicHandler.ListOrderHistory)

			// 商品维护（卖家/管理员）
			authorized.POST("/products", publicHandler.CreateProduct)
			authorized.PUT("/products/:id", publicHandler.UpdateProduct)
			authorized.DELETE("/products/:id", publicHandler.DeleteProduct)

			admin := authorized.Group("/admin")
			{
				// 分类管理
				admin.GET("/categories", adminHandler.GetAdminCategories)
				admin.POST("/categories", adminHandler.CreateCategory)
				admin.PUT("/categories/:id", adminHandler.UpdateCategory)
				admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

				// 商品管理
				admin.GET("/products", adminHandler.GetAdminProducts)

				// 订单管理
				admin.GET("/orders", adminHandler.AdminListOrders)
				admin.GET("/orders/:id", adminHandler.AdminGetOrder)
				admin.PATCH("/orders/:id", adminHandler.AdminUpdateOrderStatus)
				admin.POST("/orders/:id/items", adminHandler.AdminAddOrderItem)
				admin.DELETE("/orders/:id/items/:item_id", adminHandler.AdminRemoveOrderItem)
				admin.GET("/orders/:id/logs", adminHandler.AdminListOrderStatusLogs)

				// 用户管理
				admin.GET("/users", adminHandler.GetAdminUsers)
				admin.PATCH("/users/:id/status", adminHandler.UpdateUserStatus)

				// 权限管理
				admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
				admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				admin.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				admin.GET("/authz/users/:id/policies", adminHandler.GetAuthzUserPolicies)
				admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type permissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildPermissionCatalog 列出需要角色授权的路由，供管理端配置策略
func buildPermissionCatalog(engine *gin.Engine) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/") || isPublicRoute(method, item.Path) {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func isPublicRoute(method, path string) bool {
	if strings.HasPrefix(path, "/api/v1/auth/") {
		return true
	}
	if method != "GET" {
		return false
	}
	switch path {
	case "/api/v1/categories", "/api/v1/categories/:id", "/api/v1/products", "/api/v1/products/:id":
		return true
	}
	return false
}

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
