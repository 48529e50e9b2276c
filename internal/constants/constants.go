package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCanceled   = "canceled"
)

// 订单状态变更来源
const (
	OrderStatusSourceCheckout = "checkout"
	OrderStatusSourceAdmin    = "admin"
)

// 用户角色常量
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列常量
const (
	QueueDefault           = "default"
	QueueCritical          = "critical"
	TaskOrderCreated       = "order:created"
	TaskOrderStatusChanged = "order:status_changed"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ozon"
)

// 分类树默认配置
const (
	CategoryTreeMaxDepthDefault    = 32
	CategoryTreeCacheTTLDefaultSec = 300
)

// 用户名最大长度
const UsernameMaxLength = 150

// ItemQuantityMax 购物车项与订单项数量上限（int32）
const ItemQuantityMax = 2147483647

// 默认语言
const (
	LocaleRU      = "ru"
	LocaleEN      = "en"
	LocaleDefault = LocaleRU
)
