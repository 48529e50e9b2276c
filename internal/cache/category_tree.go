package cache

import (
	"context"
	"time"
)

const categoryTreeKey = "catalog:category_tree"

// GetCategoryTree 读取序列化后的分类树
func GetCategoryTree(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, categoryTreeKey, dest)
}

// SetCategoryTree 写入分类树缓存
func SetCategoryTree(ctx context.Context, tree interface{}, ttl time.Duration) error {
	return SetJSON(ctx, categoryTreeKey, tree, ttl)
}

// DelCategoryTree 分类变更后失效缓存
func DelCategoryTree(ctx context.Context) error {
	return Del(ctx, categoryTreeKey)
}
