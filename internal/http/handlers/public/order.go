package public

import (
	handlershared "github.com/mini-ozon/internal/http/handlers/shared"
	"github.com/mini-ozon/internal/http/response"
	"github.com/mini-ozon/internal/i18n"

	"github.com/gin-gonic/gin"
)

// CreateOrder 购物车结算生成订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Checkout(uid)
	if err != nil {
		respondWithMappedError(c, err, concatMappedHandlerErrors(checkoutErrorRules, cartErrorRules), response.CodeInternal, "error.order_create_failed")
		return
	}
	requestLog(c).Infow("order_created", "order_id", order.ID, "user_id", uid, "total", order.Total.String())
	response.Success(c, gin.H{
		"message":  i18n.T(i18n.ResolveLocale(c), "success.order_created"),
		"order_id": order.ID,
	})
}

// ListOrderHistory 当前用户订单历史（新订单在前）
func (h *Handler) ListOrderHistory(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	orders, total, err := h.OrderService.ListHistory(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}
