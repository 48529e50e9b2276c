package public

import (
	"encoding/json"
	"strings"

	handlershared "github.com/mini-ozon/internal/http/handlers/shared"
	"github.com/mini-ozon/internal/http/response"
	"github.com/mini-ozon/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取根分类及其子树
func (h *Handler) GetCategories(c *gin.Context) {
	tree, err := h.CategoryService.Tree(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, tree)
}

// GetCategory 获取单个分类子树
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.category_not_found")
	if !ok {
		return
	}
	node, err := h.CategoryService.Subtree(id)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
		}, response.CodeInternal, "error.category_fetch_failed")
		return
	}
	response.Success(c, node)
}

// GetProducts 商品列表，category 包含所有子孙分类
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	products, total, err := h.ProductService.List(service.ListProductsInput{
		Category: c.Query("category"),
		Search:   strings.TrimSpace(c.Query("q")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, handlershared.BuildPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Name       string      `json:"name" binding:"required"`
	Price      json.Number `json:"price" binding:"required"`
	CategoryID uint        `json:"category" binding:"required"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:       r.Name,
		Price:      r.Price.String(),
		CategoryID: r.CategoryID,
	}
}

// CreateProduct 创建商品（卖家/管理员）
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "error.product_save_failed")
		return
	}
	requestLog(c).Infow("product_created", "product_id", product.ID, "category_id", product.CategoryID)
	response.Created(c, product)
}

// UpdateProduct 更新商品（卖家/管理员）
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（卖家/管理员）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "error.product_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
