package repository

import (
	"testing"
)

func TestCategoryListRootsOrderedByName(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCategoryRepository(db)
	electronics := mustCreateCategory(t, db, "Electronics", nil)
	mustCreateCategory(t, db, "Books", nil)
	mustCreateCategory(t, db, "Phones", &electronics.ID)

	roots, total, err := repo.List(CategoryListFilter{RootOnly: true})
	if err != nil {
		t.Fatalf("list roots failed: %v", err)
	}
	if total != 2 || roots[0].Name != "Books" || roots[1].Name != "Electronics" {
		t.Fatalf("unexpected roots: %+v", roots)
	}

	children, _, err := repo.List(CategoryListFilter{ParentID: &electronics.ID})
	if err != nil {
		t.Fatalf("list children failed: %v", err)
	}
	if len(children) != 1 || children[0].Name != "Phones" {
		t.Fatalf("unexpected children: %+v", children)
	}
}

func TestCategoryCountByNameExcludesSelf(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCategoryRepository(db)
	books := mustCreateCategory(t, db, "Books", nil)

	count, err := repo.CountByName("Books", nil)
	if err != nil || count != 1 {
		t.Fatalf("count want 1 got %d err=%v", count, err)
	}
	count, err = repo.CountByName("Books", &books.ID)
	if err != nil || count != 0 {
		t.Fatalf("count excluding self want 0 got %d err=%v", count, err)
	}
}

func TestCategoryUpdateClearsParent(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCategoryRepository(db)
	electronics := mustCreateCategory(t, db, "Electronics", nil)
	phones := mustCreateCategory(t, db, "Phones", &electronics.ID)

	phones.ParentID = nil
	phones.Name = "Mobile"
	if err := repo.Update(phones); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := repo.GetByID(phones.ID)
	if err != nil || got == nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ParentID != nil || got.Name != "Mobile" {
		t.Fatalf("expected root named Mobile, got %+v", got)
	}
}

func TestCategorySearchAndDeleteByIDs(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCategoryRepository(db)
	a := mustCreateCategory(t, db, "Garden tools", nil)
	b := mustCreateCategory(t, db, "Garden seeds", nil)
	mustCreateCategory(t, db, "Kitchen", nil)

	found, total, err := repo.List(CategoryListFilter{Search: "garden"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 || len(found) != 2 {
		t.Fatalf("search want 2 got %d", total)
	}

	if err := repo.DeleteByIDs([]uint{a.ID, b.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Kitchen" {
		t.Fatalf("unexpected remaining categories: %+v", all)
	}
}
