package admin

import (
	"strings"

	"github.com/mini-ozon/internal/http/response"
	"github.com/mini-ozon/internal/repository"
	"github.com/mini-ozon/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateUserStatusRequest 更新用户状态请求
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAdminUsers 用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := parsePagination(c)
	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("q")),
		Role:     strings.ToLower(strings.TrimSpace(c.Query("role"))),
		Status:   strings.ToLower(strings.TrimSpace(c.Query("status"))),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, users, buildPagination(page, pageSize, total))
}

// UpdateUserStatus 启用/禁用用户，禁用后已签发的 token 立即失效
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	userID, ok := parseUintParam(c, "id", "error.user_not_found")
	if !ok {
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.UserAuthService.SetUserStatus(c.Request.Context(), userID, req.Status)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrInvalidUserStatus, code: response.CodeBadRequest, key: "error.user_status_invalid"},
			{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
		}, response.CodeInternal, "error.user_update_failed")
		return
	}
	operatorID, _ := getOperatorID(c)
	requestLog(c).Infow("admin_user_status_updated",
		"operator_id", operatorID,
		"user_id", user.ID,
		"status", user.Status,
	)
	response.Success(c, user)
}
