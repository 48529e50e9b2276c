package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mini-ozon/internal/cache"
	"github.com/mini-ozon/internal/config"
	"github.com/mini-ozon/internal/logger"
	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/repository"

	"gorm.io/gorm"
)

const categoryNameMaxLength = 100

// CategoryService 分类服务
type CategoryService struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	maxDepth    int
	cacheTTL    time.Duration
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, catalog config.CatalogConfig) *CategoryService {
	return &CategoryService{
		repo:        repo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		maxDepth:    catalog.ResolveMaxTreeDepth(),
		cacheTTL:    catalog.TreeCacheTTL(),
	}
}

// CreateCategoryInput 创建分类输入
type CreateCategoryInput struct {
	Name     string
	ParentID *uint
}

// UpdateCategoryInput 更新分类输入，ClearParent 表示移动到根
type UpdateCategoryInput struct {
	Name        *string
	ParentID    *uint
	ClearParent bool
}

// DeleteCategoryResult 级联删除统计
type DeleteCategoryResult struct {
	CategoryIDs []uint `json:"category_ids"`
	ProductIDs  []uint `json:"product_ids"`
}

func (s *CategoryService) loadIndex(repo repository.CategoryRepository) (*categoryIndex, error) {
	categories, err := repo.ListAll()
	if err != nil {
		return nil, err
	}
	return newCategoryIndex(categories), nil
}

// Tree 返回完整分类树（优先读缓存）
func (s *CategoryService) Tree(ctx context.Context) ([]CategoryNode, error) {
	var cached []CategoryNode
	hit, err := cache.GetCategoryTree(ctx, &cached)
	if err != nil {
		logger.Warnw("category_tree_cache_get_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	idx, err := s.loadIndex(s.repo)
	if err != nil {
		return nil, err
	}
	tree := idx.forest(s.maxDepth)
	if err := cache.SetCategoryTree(ctx, tree, s.cacheTTL); err != nil {
		logger.Warnw("category_tree_cache_set_failed", "error", err)
	}
	return tree, nil
}

// Subtree 返回指定分类及其子树
func (s *CategoryService) Subtree(id uint) (*CategoryNode, error) {
	idx, err := s.loadIndex(s.repo)
	if err != nil {
		return nil, err
	}
	category, ok := idx.byID[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	node := idx.serialize(category, 0, s.maxDepth, map[uint]struct{}{})
	return &node, nil
}

// ListRoots 根分类列表（按名称排序）
func (s *CategoryService) ListRoots() ([]models.Category, error) {
	roots, _, err := s.repo.List(repository.CategoryListFilter{RootOnly: true})
	return roots, err
}

// List 管理端分类列表
func (s *CategoryService) List(filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	return s.repo.List(filter)
}

// GetByID 获取分类
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetDescendantIDs 获取子孙分类 ID，分类不存在返回 ErrCategoryNotFound
func (s *CategoryService) GetDescendantIDs(id uint, includeSelf bool) ([]uint, error) {
	idx, err := s.loadIndex(s.repo)
	if err != nil {
		return nil, err
	}
	if !idx.has(id) {
		return nil, ErrCategoryNotFound
	}
	return idx.descendants(id, includeSelf), nil
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	name, err := normalizeCategoryName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(name, nil); err != nil {
		return nil, err
	}
	if input.ParentID != nil {
		parent, err := s.repo.GetByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCategoryParentNotFound
		}
	}

	category := &models.Category{Name: name, ParentID: input.ParentID}
	if err := s.repo.Create(category); err != nil {
		if repository.IsUniqueConstraintError(err) {
			return nil, ErrCategoryNameExists
		}
		return nil, err
	}
	s.invalidateTree(ctx)
	return category, nil
}

// Update 重命名或移动分类
func (s *CategoryService) Update(ctx context.Context, id uint, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if input.Name != nil {
		name, err := normalizeCategoryName(*input.Name)
		if err != nil {
			return nil, err
		}
		if err := s.ensureNameAvailable(name, &id); err != nil {
			return nil, err
		}
		category.Name = name
	}

	switch {
	case input.ClearParent:
		category.ParentID = nil
	case input.ParentID != nil:
		parentID := *input.ParentID
		if parentID == id {
			return nil, ErrCategoryCycle
		}
		idx, err := s.loadIndex(s.repo)
		if err != nil {
			return nil, err
		}
		if !idx.has(parentID) {
			return nil, ErrCategoryParentNotFound
		}
		if idx.isDescendant(id, parentID) {
			return nil, ErrCategoryCycle
		}
		category.ParentID = &parentID
	}

	if err := s.repo.Update(category); err != nil {
		if repository.IsUniqueConstraintError(err) {
			return nil, ErrCategoryNameExists
		}
		return nil, err
	}
	s.invalidateTree(ctx)
	return category, nil
}

// Delete 删除分类及其子树与商品（同一事务）
func (s *CategoryService) Delete(ctx context.Context, id uint) (*DeleteCategoryResult, error) {
	result := &DeleteCategoryResult{}
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		categoryRepo := s.repo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		idx, err := s.loadIndex(categoryRepo)
		if err != nil {
			return err
		}
		if !idx.has(id) {
			return ErrCategoryNotFound
		}
		categoryIDs := idx.descendants(id, true)
		productIDs, err := productRepo.ListIDsByCategoryIDs(categoryIDs)
		if err != nil {
			return err
		}
		if err := cartRepo.DeleteItemsByProductIDs(productIDs); err != nil {
			return err
		}
		if err := productRepo.DeleteByIDs(productIDs); err != nil {
			return err
		}
		if err := categoryRepo.DeleteByIDs(categoryIDs); err != nil {
			return err
		}
		result.CategoryIDs = categoryIDs
		result.ProductIDs = productIDs
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateTree(ctx)
	logger.Infow("category_subtree_deleted",
		"category_id", id,
		"categories", len(result.CategoryIDs),
		"products", len(result.ProductIDs),
	)
	return result, nil
}

func (s *CategoryService) ensureNameAvailable(name string, excludeID *uint) error {
	count, err := s.repo.CountByName(name, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryNameExists
	}
	return nil
}

func (s *CategoryService) invalidateTree(ctx context.Context) {
	if err := cache.DelCategoryTree(ctx); err != nil {
		logger.Warnw("category_tree_cache_invalidate_failed", "error", err)
	}
}

func normalizeCategoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > categoryNameMaxLength {
		return "", ErrInvalidCategoryInput
	}
	return name, nil
}
