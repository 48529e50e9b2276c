package public

import (
	"errors"

	"github.com/mini-ozon/internal/http/response"
	"github.com/mini-ozon/internal/i18n"
	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidUsername, code: response.CodeBadRequest, key: "error.username_invalid"},
	{target: service.ErrInvalidRole, code: response.CodeBadRequest, key: "error.role_invalid"},
	{target: service.ErrUsernameExists, code: response.CodeBadRequest, key: "error.username_exists"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeBadRequest, key: "error.invalid_credentials"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
}

var productWriteErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidProductInput, code: response.CodeBadRequest, key: "error.product_invalid"},
	{target: service.ErrProductCategoryNotFound, code: response.CodeBadRequest, key: "error.product_category_not_found"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.invalid_quantity"},
	{target: service.ErrQuantityTooLarge, code: response.CodeBadRequest, key: "error.quantity_too_large"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: models.ErrMoneyOutOfRange, code: response.CodeBadRequest, key: "error.order_total_out_of_range"},
}

// respondPasswordPolicyError 按密码策略返回带参数的提示
func respondPasswordPolicyError(c *gin.Context, err error) bool {
	if !errors.Is(err, service.ErrWeakPassword) {
		return false
	}
	locale := i18n.ResolveLocale(c)
	if key, args, ok := service.IsPasswordPolicyError(err); ok {
		respondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(locale, key, args...), nil)
		return true
	}
	respondError(c, response.CodeBadRequest, "error.password_weak", nil)
	return true
}
