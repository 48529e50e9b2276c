package public

import (
	"time"

	"github.com/mini-ozon/internal/http/response"
	"github.com/mini-ozon/internal/i18n"
	"github.com/mini-ozon/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Username string `json:"username" binding:"required,max=150,username"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,user_role"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.UserAuthService.Register(service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if respondPasswordPolicyError(c, err) {
			return
		}
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "error.register_failed")
		return
	}

	locale := i18n.ResolveLocale(c)
	response.Created(c, gin.H{
		"message":  i18n.T(locale, "success.user_registered"),
		"username": user.Username,
		"role":     user.Role,
	})
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.UserAuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	requestLog(c).Infow("user_login_success", "user_id", result.User.ID, "role", result.User.Role)
	response.Success(c, gin.H{
		"token":      result.Token,
		"username":   result.User.Username,
		"role":       result.User.Role,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
	})
}

// GetCurrentUser 获取当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
		}, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, user)
}
