package service

import (
	"strings"

	"github.com/mini-ozon/internal/constants"
)

// orderStatusTransitions 订单状态机，终态没有出边
var orderStatusTransitions = map[string][]string{
	constants.OrderStatusPending:    {constants.OrderStatusProcessing, constants.OrderStatusCanceled},
	constants.OrderStatusProcessing: {constants.OrderStatusCompleted, constants.OrderStatusCanceled},
	constants.OrderStatusCompleted:  {},
	constants.OrderStatusCanceled:   {},
}

// CanTransitOrderStatus 判断状态是否允许变更
func CanTransitOrderStatus(from, to string) bool {
	for _, next := range orderStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus 是否为终态
func IsTerminalOrderStatus(status string) bool {
	next, ok := orderStatusTransitions[status]
	return ok && len(next) == 0
}

func normalizeOrderStatus(status string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if !IsValidOrderStatus(normalized) {
		return "", ErrInvalidOrderStatus
	}
	return normalized, nil
}
