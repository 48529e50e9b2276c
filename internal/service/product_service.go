package service

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mini-ozon/internal/logger"
	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/repository"

	"gorm.io/gorm"
)

const productNameMaxLength = 255

// ProductService 商品服务
type ProductService struct {
	repo            repository.ProductRepository
	categoryRepo    repository.CategoryRepository
	cartRepo        repository.CartRepository
	categoryService *CategoryService
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, cartRepo repository.CartRepository, categoryService *CategoryService) *ProductService {
	return &ProductService{
		repo:            repo,
		categoryRepo:    categoryRepo,
		cartRepo:        cartRepo,
		categoryService: categoryService,
	}
}

// ListProductsInput 商品列表查询
type ListProductsInput struct {
	Category     string // 原始分类参数，未知或非数字时返回空结果
	Search       string
	Page         int
	PageSize     int
	WithCategory bool
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Name       string
	Price      string
	CategoryID uint
}

// List 商品列表，按分类过滤时包含所有子孙分类
func (s *ProductService) List(input ListProductsInput) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         input.Page,
		PageSize:     input.PageSize,
		Search:       input.Search,
		WithCategory: input.WithCategory,
	}

	raw := strings.TrimSpace(input.Category)
	if raw != "" {
		filter.FilterByTree = true
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || categoryID == 0 {
			return []models.Product{}, 0, nil
		}
		ids, err := s.categoryService.GetDescendantIDs(uint(categoryID), true)
		if err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				return []models.Product{}, 0, nil
			}
			return nil, 0, err
		}
		filter.CategoryIDs = ids
	}

	return s.repo.List(filter)
}

// GetByID 获取商品
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name, price, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}
	product := &models.Product{
		Name:       name,
		Price:      price,
		CategoryID: input.CategoryID,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	name, price, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}
	product.Name = name
	product.Price = price
	product.CategoryID = input.CategoryID
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品并移除引用它的购物车项，订单快照保留
func (s *ProductService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		if err := s.cartRepo.WithTx(tx).DeleteItemsByProductIDs([]uint{id}); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(id)
	})
	if err != nil {
		return err
	}
	logger.Infow("product_deleted", "product_id", id)
	return nil
}

func (s *ProductService) validateInput(input ProductInput) (string, models.Money, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > productNameMaxLength {
		return "", models.Money{}, ErrInvalidProductInput
	}
	price, err := parseProductPrice(input.Price)
	if err != nil {
		return "", models.Money{}, err
	}
	if input.CategoryID == 0 {
		return "", models.Money{}, ErrProductCategoryNotFound
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return "", models.Money{}, err
	}
	if category == nil {
		return "", models.Money{}, ErrProductCategoryNotFound
	}
	return name, price, nil
}

// parseProductPrice 价格非负、最多两位小数且不超出 decimal(10,2)
func parseProductPrice(raw string) (models.Money, error) {
	price, err := models.ParseMoney(raw)
	if err != nil {
		return models.Money{}, ErrInvalidProductInput
	}
	return price, nil
}
