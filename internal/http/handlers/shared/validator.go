package shared

import (
	"errors"
	"sync"

	"github.com/mini-ozon/internal/http/response"
	"github.com/mini-ozon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 在 gin 的校验引擎上注册业务校验规则
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return service.IsValidUsername(fl.Field().String())
		})
		_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
			return service.IsValidOrderStatus(fl.Field().String())
		})
		_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value == "" || service.IsValidRole(value)
		})
	})
}

// BindErrorKey 将绑定错误映射为文案 key
func BindErrorKey(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "error.bad_request"
	}
	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "username":
			return "error.username_invalid"
		case "order_status":
			return "error.order_status_invalid"
		case "user_role":
			return "error.role_invalid"
		}
		if fieldErr.Field() == "Quantity" {
			return "error.invalid_quantity"
		}
	}
	return "error.bad_request"
}

// RespondBindError 返回请求体校验失败响应
func RespondBindError(c *gin.Context, err error) {
	RespondError(c, response.CodeBadRequest, BindErrorKey(err), nil)
}
