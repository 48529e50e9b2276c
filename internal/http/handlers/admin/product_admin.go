package admin

import (
	"strings"

	"github.com/mini-ozon/internal/http/response"
	"github.com/mini-ozon/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminProducts 管理端商品列表，category 按子树过滤
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	products, total, err := h.ProductService.List(service.ListProductsInput{
		Category:     c.Query("category"),
		Search:       strings.TrimSpace(c.Query("q")),
		Page:         page,
		PageSize:     pageSize,
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	items := make([]gin.H, 0, len(products))
	for _, product := range products {
		categoryName := ""
		if product.Category != nil {
			categoryName = product.Category.Name
		}
		items = append(items, gin.H{
			"id":            product.ID,
			"name":          product.Name,
			"price":         product.Price,
			"category":      product.CategoryID,
			"category_name": categoryName,
			"created_at":    product.CreatedAt,
		})
	}
	response.SuccessWithPage(c, items, buildPagination(page, pageSize, total))
}
