package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/mini-ozon/internal/http/handlers/shared"
	"github.com/mini-ozon/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getOperatorID(c *gin.Context) (uint, bool) {
	return handlershared.GetUserID(c)
}

func parseUintParam(c *gin.Context, name, notFoundKey string) (uint, bool) {
	return handlershared.ParseUintParam(c, name, notFoundKey)
}

func parsePagination(c *gin.Context) (int, int) {
	return handlershared.ParsePagination(c)
}

// parseOptionalUintQuery 解析可选的数字查询参数，非法值返回 ok=false
func parseOptionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return nil, false
	}
	value := uint(parsed)
	return &value, true
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	return handlershared.BuildPagination(page, pageSize, total)
}
