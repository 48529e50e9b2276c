package public

import (
	handlershared "github.com/mini-ozon/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetUserID(c)
}

func parseUintParam(c *gin.Context, name, notFoundKey string) (uint, bool) {
	return handlershared.ParseUintParam(c, name, notFoundKey)
}
