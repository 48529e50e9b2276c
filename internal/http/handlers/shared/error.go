package shared

import (
	"github.com/mini-ozon/internal/http/response"
	"github.com/mini-ozon/internal/i18n"
	"github.com/mini-ozon/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 带 request_id 的日志实例
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c != nil {
		if id := c.GetString("request_id"); id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 按 key 输出当前语言的错误文案；err 只进日志不返回给调用方
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg 输出已格式化的错误文案
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		log := RequestLog(c).With("code", code, "message", msg, "error", err)
		if code >= response.CodeInternal {
			log.Errorw("handler_error", "path", c.FullPath())
		} else {
			log.Warnw("handler_error", "path", c.FullPath())
		}
	}
	response.Error(c, code, msg)
}
