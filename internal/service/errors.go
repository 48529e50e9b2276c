package service

import "errors"

// 校验类错误
var (
	ErrInvalidQuantity         = errors.New("数量必须不小于 1")
	ErrQuantityTooLarge        = errors.New("数量超出上限")
	ErrInvalidOrderStatus      = errors.New("无效的订单状态")
	ErrOrderStatusTransition   = errors.New("订单状态不允许此变更")
	ErrCategoryNameExists      = errors.New("分类名称已存在")
	ErrCategoryCycle           = errors.New("分类不能挂到自身或其子孙下")
	ErrInvalidCategoryInput    = errors.New("分类参数无效")
	ErrInvalidProductInput     = errors.New("商品参数无效")
	ErrProductCategoryNotFound = errors.New("商品分类不存在")
	ErrUsernameExists          = errors.New("用户名已存在")
	ErrInvalidUsername         = errors.New("用户名格式无效")
	ErrInvalidRole             = errors.New("无效的角色")
	ErrWeakPassword            = errors.New("密码强度不足")
	ErrInvalidUserStatus       = errors.New("无效的用户状态")
)

// 资源不存在
var (
	ErrProductNotFound        = errors.New("商品不存在")
	ErrCategoryNotFound       = errors.New("分类不存在")
	ErrCategoryParentNotFound = errors.New("父分类不存在")
	ErrCartItemNotFound       = errors.New("购物车项不存在")
	ErrOrderNotFound          = errors.New("订单不存在")
	ErrOrderItemNotFound      = errors.New("订单项不存在")
	ErrUserNotFound           = errors.New("用户不存在")
)

// 业务状态与认证
var (
	ErrEmptyCart          = errors.New("购物车为空")
	ErrOrderClosed        = errors.New("订单已结束，不能修改订单项")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("用户已被禁用")
	ErrInvalidToken       = errors.New("无效的 token")
)
