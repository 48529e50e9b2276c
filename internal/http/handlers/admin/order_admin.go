package admin

import (
	"strings"
	"time"

	"github.com/mini-ozon/internal/http/response"
	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/repository"
	"github.com/mini-ozon/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminOrderListItem 管理端订单列表返回
type AdminOrderListItem struct {
	models.Order
	Username string `json:"username,omitempty"`
}

// AdminUpdateOrderStatusRequest 管理端更新订单状态请求
type AdminUpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,order_status"`
}

// AdminAddOrderItemRequest 管理端追加订单项请求
type AdminAddOrderItemRequest struct {
	Product  uint `json:"product" binding:"required"`
	Quantity *int `json:"quantity"`
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderStatus, code: response.CodeBadRequest, key: "error.order_status_invalid"},
	{target: service.ErrOrderStatusTransition, code: response.CodeBadRequest, key: "error.order_status_transition"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderItemNotFound, code: response.CodeNotFound, key: "error.order_item_not_found"},
	{target: service.ErrOrderClosed, code: response.CodeBadRequest, key: "error.order_closed"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.invalid_quantity"},
	{target: service.ErrQuantityTooLarge, code: response.CodeBadRequest, key: "error.quantity_too_large"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: models.ErrMoneyOutOfRange, code: response.CodeBadRequest, key: "error.order_total_out_of_range"},
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := parsePagination(c)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	userID, ok := parseOptionalUintQuery(c, "user_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.TrimSpace(c.Query("status")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}
	if userID != nil {
		filter.UserID = *userID
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}

	usernames, err := h.lookupUsernames(orders)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	items := make([]AdminOrderListItem, 0, len(orders))
	for _, order := range orders {
		items = append(items, AdminOrderListItem{Order: order, Username: usernames[order.UserID]})
	}
	response.SuccessWithPage(c, items, buildPagination(page, pageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id", "error.order_not_found")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByID(orderID)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus 管理端更新订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id", "error.order_not_found")
	if !ok {
		return
	}
	var req AdminUpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.OrderService.SetStatus(orderID, req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	operatorID, _ := getOperatorID(c)
	requestLog(c).Infow("admin_order_status_updated",
		"operator_id", operatorID,
		"order_id", orderID,
		"status", order.Status,
	)
	response.Success(c, order)
}

// AdminAddOrderItem 追加订单项（按当前商品价格快照），数量缺省为 1
func (h *Handler) AdminAddOrderItem(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id", "error.order_not_found")
	if !ok {
		return
	}
	var req AdminAddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if _, err := h.OrderService.AddItem(orderID, req.Product, quantity); err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	order, err := h.OrderService.GetByID(orderID)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Created(c, order)
}

// AdminRemoveOrderItem 删除订单项并重新汇总总额
func (h *Handler) AdminRemoveOrderItem(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id", "error.order_not_found")
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id", "error.order_item_not_found")
	if !ok {
		return
	}
	order, err := h.OrderService.RemoveItem(orderID, itemID)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}

// AdminListOrderStatusLogs 订单状态变更记录
func (h *Handler) AdminListOrderStatusLogs(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id", "error.order_not_found")
	if !ok {
		return
	}
	logs, err := h.OrderEventService.ListStatusLogs(orderID)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, logs)
}

func (h *Handler) lookupUsernames(orders []models.Order) (map[uint]string, error) {
	ids := make([]uint, 0, len(orders))
	seen := make(map[uint]struct{}, len(orders))
	for _, order := range orders {
		if _, ok := seen[order.UserID]; ok {
			continue
		}
		seen[order.UserID] = struct{}{}
		ids = append(ids, order.UserID)
	}
	users, err := h.UserRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	result := make(map[uint]string, len(users))
	for _, user := range users {
		result[user.ID] = user.Username
	}
	return result, nil
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
