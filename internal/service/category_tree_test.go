package service

import (
	"testing"

	"github.com/mini-ozon/internal/models"
)

func TestCategoryIndexTreatsOrphansAsRoots(t *testing.T) {
	missing := uint(99)
	idx := newCategoryIndex([]models.Category{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B", ParentID: &missing},
	})
	if len(idx.roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(idx.roots))
	}
	forest := idx.forest(32)
	if len(forest) != 2 {
		t.Fatalf("expected 2 root nodes, got %d", len(forest))
	}
}

func TestCategoryIndexSerializeStopsOnCycle(t *testing.T) {
	one, two := uint(1), uint(2)
	idx := newCategoryIndex([]models.Category{
		{ID: 1, Name: "A", ParentID: &two},
		{ID: 2, Name: "B", ParentID: &one},
	})
	node := idx.serialize(idx.byID[1], 0, 32, map[uint]struct{}{})
	if len(node.Subcategories) != 1 {
		t.Fatalf("expected one child, got %d", len(node.Subcategories))
	}
	if len(node.Subcategories[0].Subcategories) != 0 {
		t.Fatalf("cycle should stop at visited node")
	}
	if !idx.isDescendant(1, 2) || !idx.isDescendant(2, 1) {
		t.Fatalf("expected mutual descendants in cyclic data")
	}
}

func TestCategoryIndexDepthOne(t *testing.T) {
	one := uint(1)
	idx := newCategoryIndex([]models.Category{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B", ParentID: &one},
	})
	forest := idx.forest(1)
	if len(forest) != 1 || len(forest[0].Subcategories) != 0 {
		t.Fatalf("depth 1 should serialize roots only: %+v", forest)
	}
}
