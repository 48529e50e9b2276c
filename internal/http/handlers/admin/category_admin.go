package admin

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mini-ozon/internal/http/response"
	"github.com/mini-ozon/internal/repository"
	"github.com/mini-ozon/internal/service"

	"github.com/gin-gonic/gin"
)

// nullableParent 区分字段缺省与显式 null
type nullableParent struct {
	Set   bool
	Value *uint
}

// UnmarshalJSON 解析 parent 字段
func (p *nullableParent) UnmarshalJSON(data []byte) error {
	p.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		p.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	p.Value = &id
	return nil
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	Parent *uint  `json:"parent"`
}

// UpdateCategoryRequest 更新分类请求，parent 为 null 时移动到根
type UpdateCategoryRequest struct {
	Name   *string        `json:"name"`
	Parent nullableParent `json:"parent"`
}

var categoryErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCategoryInput, code: response.CodeBadRequest, key: "error.category_invalid"},
	{target: service.ErrCategoryNameExists, code: response.CodeBadRequest, key: "error.category_name_exists"},
	{target: service.ErrCategoryCycle, code: response.CodeBadRequest, key: "error.category_cycle"},
	{target: service.ErrCategoryParentNotFound, code: response.CodeNotFound, key: "error.category_parent_not_found"},
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
}

// GetAdminCategories 分类列表，支持 q 名称搜索与 parent 过滤（parent=root 只返回根分类）
func (h *Handler) GetAdminCategories(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.CategoryListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("q")),
	}
	if strings.EqualFold(strings.TrimSpace(c.Query("parent")), "root") {
		filter.RootOnly = true
	} else {
		parentID, ok := parseOptionalUintQuery(c, "parent")
		if !ok {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.ParentID = parentID
	}

	categories, total, err := h.CategoryService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, categories, buildPagination(page, pageSize, total))
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := h.CategoryService.Create(c.Request.Context(), service.CreateCategoryInput{
		Name:     req.Name,
		ParentID: req.Parent,
	})
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_save_failed")
		return
	}
	requestLog(c).Infow("admin_category_created", "category_id", category.ID, "parent_id", category.ParentID)
	response.Created(c, category)
}

// UpdateCategory 重命名或移动分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.category_not_found")
	if !ok {
		return
	}
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input := service.UpdateCategoryInput{Name: req.Name}
	if req.Parent.Set {
		if req.Parent.Value == nil {
			input.ClearParent = true
		} else {
			input.ParentID = req.Parent.Value
		}
	}

	category, err := h.CategoryService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_save_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类及其子树和商品
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.category_not_found")
	if !ok {
		return
	}
	result, err := h.CategoryService.Delete(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_delete_failed")
		return
	}
	response.Success(c, result)
}
