package service

import (
	"github.com/mini-ozon/internal/models"
)

// CategoryNode 分类树节点
type CategoryNode struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	Parent        *uint          `json:"parent"`
	Subcategories []CategoryNode `json:"subcategories"`
}

// categoryIndex 扁平分类列表 + 父子索引
type categoryIndex struct {
	byID     map[uint]models.Category
	children map[uint][]models.Category
	roots    []models.Category
}

// newCategoryIndex 按输入顺序建立父子索引（输入已按名称排序）
func newCategoryIndex(categories []models.Category) *categoryIndex {
	idx := &categoryIndex{
		byID:     make(map[uint]models.Category, len(categories)),
		children: make(map[uint][]models.Category),
	}
	for _, category := range categories {
		idx.byID[category.ID] = category
	}
	for _, category := range categories {
		if category.IsRoot() {
			idx.roots = append(idx.roots, category)
			continue
		}
		if _, ok := idx.byID[*category.ParentID]; !ok {
			// 父节点缺失的孤儿按根处理
			idx.roots = append(idx.roots, category)
			continue
		}
		idx.children[*category.ParentID] = append(idx.children[*category.ParentID], category)
	}
	return idx
}

func (idx *categoryIndex) has(id uint) bool {
	_, ok := idx.byID[id]
	return ok
}

// descendants 广度优先收集子孙 ID，已访问节点跳过
func (idx *categoryIndex) descendants(rootID uint, includeSelf bool) []uint {
	visited := map[uint]struct{}{rootID: {}}
	queue := []uint{rootID}
	result := make([]uint, 0, 8)
	if includeSelf {
		result = append(result, rootID)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range idx.children[current] {
			if _, seen := visited[child.ID]; seen {
				continue
			}
			visited[child.ID] = struct{}{}
			result = append(result, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return result
}

// isDescendant 判断 candidate 是否为 ancestor 的子孙（不含自身）
func (idx *categoryIndex) isDescendant(ancestor, candidate uint) bool {
	for _, id := range idx.descendants(ancestor, false) {
		if id == candidate {
			return true
		}
	}
	return false
}

// serialize 递归序列化，深度受 maxDepth 限制
func (idx *categoryIndex) serialize(category models.Category, depth, maxDepth int, visited map[uint]struct{}) CategoryNode {
	visited[category.ID] = struct{}{}
	node := CategoryNode{
		ID:            category.ID,
		Name:          category.Name,
		Parent:        category.ParentID,
		Subcategories: []CategoryNode{},
	}
	if depth+1 >= maxDepth {
		return node
	}
	for _, child := range idx.children[category.ID] {
		if _, seen := visited[child.ID]; seen {
			continue
		}
		node.Subcategories = append(node.Subcategories, idx.serialize(child, depth+1, maxDepth, visited))
	}
	return node
}

func (idx *categoryIndex) forest(maxDepth int) []CategoryNode {
	visited := make(map[uint]struct{}, len(idx.byID))
	nodes := make([]CategoryNode, 0, len(idx.roots))
	for _, root := range idx.roots {
		if _, seen := visited[root.ID]; seen {
			continue
		}
		nodes = append(nodes, idx.serialize(root, 0, maxDepth, visited))
	}
	return nodes
}
