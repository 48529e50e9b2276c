package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mini-ozon/internal/constants"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+\-]+$`)

// IsValidUsername 用户名仅允许字母、数字与 @ . + - _
func IsValidUsername(username string) bool {
	if username == "" || utf8.RuneCountInString(username) > constants.UsernameMaxLength {
		return false
	}
	return usernamePattern.MatchString(username)
}

// IsValidRole 判断角色是否合法
func IsValidRole(role string) bool {
	switch role {
	case constants.RoleBuyer, constants.RoleSeller, constants.RoleAdmin:
		return true
	default:
		return false
	}
}

// NormalizeRole 归一化角色，空值视为买家
func NormalizeRole(role string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if normalized == "" {
		return constants.RoleBuyer, nil
	}
	if !IsValidRole(normalized) {
		return "", ErrInvalidRole
	}
	return normalized, nil
}

// NormalizeSignupRole 自助注册只能得到买家或卖家，管理员由 EnsureAdmin 或种子数据创建
func NormalizeSignupRole(role string) (string, error) {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return "", err
	}
	if normalized == constants.RoleAdmin {
		return "", ErrInvalidRole
	}
	return normalized, nil
}

// checkQuantity 数量须在 [1, ItemQuantityMax] 内
func checkQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if quantity > constants.ItemQuantityMax {
		return ErrQuantityTooLarge
	}
	return nil
}

// IsValidOrderStatus 判断订单状态是否合法
func IsValidOrderStatus(status string) bool {
	_, ok := orderStatusTransitions[status]
	return ok
}
