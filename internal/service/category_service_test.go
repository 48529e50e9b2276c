package service

import (
	"context"
	"testing"

	"github.com/mini-ozon/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryTreeNestsSubcategories(t *testing.T) {
	env := newServiceEnv(t)
	electronics := env.mustCategory(t, "Electronics", nil)
	phones := env.mustCategory(t, "Phones", &electronics.ID)
	env.mustCategory(t, "Smartphones", &phones.ID)
	env.mustCategory(t, "Books", nil)

	tree, err := env.categories.Tree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, "Books", tree[0].Name)
	assert.Empty(t, tree[0].Subcategories)
	assert.Nil(t, tree[0].Parent)

	assert.Equal(t, "Electronics", tree[1].Name)
	require.Len(t, tree[1].Subcategories, 1)
	phonesNode := tree[1].Subcategories[0]
	assert.Equal(t, "Phones", phonesNode.Name)
	require.NotNil(t, phonesNode.Parent)
	assert.Equal(t, electronics.ID, *phonesNode.Parent)
	require.Len(t, phonesNode.Subcategories, 1)
	assert.Equal(t, "Smartphones", phonesNode.Subcategories[0].Name)
}

func TestCategoryTreeRespectsMaxDepth(t *testing.T) {
	env := newServiceEnv(t)
	env.categories.maxDepth = 2
	a := env.mustCategory(t, "A", nil)
	b := env.mustCategory(t, "B", &a.ID)
	env.mustCategory(t, "C", &b.ID)

	tree, err := env.categories.Tree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Empty(t, tree[0].Subcategories[0].Subcategories)
}

func TestCategorySubtree(t *testing.T) {
	env := newServiceEnv(t)
	electronics := env.mustCategory(t, "Electronics", nil)
	phones := env.mustCategory(t, "Phones", &electronics.ID)

	node, err := env.categories.Subtree(phones.ID)
	require.NoError(t, err)
	assert.Equal(t, "Phones", node.Name)
	assert.NotNil(t, node.Subcategories)

	_, err = env.categories.Subtree(9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestGetDescendantIDs(t *testing.T) {
	env := newServiceEnv(t)
	electronics := env.mustCategory(t, "Electronics", nil)
	phones := env.mustCategory(t, "Phones", &electronics.ID)
	laptops := env.mustCategory(t, "Laptops", &electronics.ID)
	smart := env.mustCategory(t, "Smartphones", &phones.ID)
	env.mustCategory(t, "Books", nil)

	ids, err := env.categories.GetDescendantIDs(electronics.ID, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{electronics.ID, phones.ID, laptops.ID, smart.ID}, ids)

	ids, err = env.categories.GetDescendantIDs(electronics.ID, false)
	require.NoError(t, err)
	assert.NotContains(t, ids, electronics.ID)

	leaf, err := env.categories.GetDescendantIDs(smart.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []uint{smart.ID}, leaf)

	_, err = env.categories.GetDescendantIDs(4242, true)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestGetDescendantIDsToleratesCycleInStorage(t *testing.T) {
	env := newServiceEnv(t)
	a := env.mustCategory(t, "A", nil)
	b := env.mustCategory(t, "B", &a.ID)
	// 绕过服务层写入环
	require.NoError(t, env.db.Model(&models.Category{}).Where("id = ?", a.ID).Update("parent_id", b.ID).Error)

	ids, err := env.categories.GetDescendantIDs(a.ID, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, ids)

	_, err = env.categories.Tree(context.Background())
	require.NoError(t, err)
}

func TestCategoryCreateValidation(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()

	root, err := env.categories.Create(ctx, CreateCategoryInput{Name: "  Electronics  "})
	require.NoError(t, err)
	assert.Equal(t, "Electronics", root.Name)
	assert.True(t, root.IsRoot())

	_, err = env.categories.Create(ctx, CreateCategoryInput{Name: "Electronics"})
	assert.ErrorIs(t, err, ErrCategoryNameExists)

	_, err = env.categories.Create(ctx, CreateCategoryInput{Name: "Phones", ParentID: uintPtr(777)})
	assert.ErrorIs(t, err, ErrCategoryParentNotFound)

	_, err = env.categories.Create(ctx, CreateCategoryInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidCategoryInput)

	child, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Phones", ParentID: &root.ID})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)
}

func TestCategoryUpdateRejectsCycles(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()
	a := env.mustCategory(t, "A", nil)
	b := env.mustCategory(t, "B", &a.ID)
	c := env.mustCategory(t, "C", &b.ID)

	_, err := env.categories.Update(ctx, a.ID, UpdateCategoryInput{ParentID: &a.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)

	_, err = env.categories.Update(ctx, a.ID, UpdateCategoryInput{ParentID: &c.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)

	_, err = env.categories.Update(ctx, a.ID, UpdateCategoryInput{ParentID: uintPtr(999)})
	assert.ErrorIs(t, err, ErrCategoryParentNotFound)

	moved, err := env.categories.Update(ctx, c.ID, UpdateCategoryInput{ParentID: &a.ID})
	require.NoError(t, err)
	assert.Equal(t, a.ID, *moved.ParentID)

	rootName := "Top"
	rooted, err := env.categories.Update(ctx, b.ID, UpdateCategoryInput{Name: &rootName, ClearParent: true})
	require.NoError(t, err)
	assert.Nil(t, rooted.ParentID)
	assert.Equal(t, "Top", rooted.Name)

	stored, err := env.categories.GetByID(b.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ParentID)

	duplicate := "A"
	_, err = env.categories.Update(ctx, c.ID, UpdateCategoryInput{Name: &duplicate})
	assert.ErrorIs(t, err, ErrCategoryNameExists)
}

func TestCategoryDeleteCascades(t *testing.T) {
	env := newServiceEnv(t)
	electronics := env.mustCategory(t, "Electronics", nil)
	phones := env.mustCategory(t, "Phones", &electronics.ID)
	books := env.mustCategory(t, "Books", nil)
	phone := env.mustProduct(t, "Phone X", "10.00", phones.ID)
	tv := env.mustProduct(t, "TV", "99.99", electronics.ID)
	novel := env.mustProduct(t, "Novel", "5.00", books.ID)

	user := env.mustUser(t, "buyer1")
	_, err := env.carts.AddItem(user.ID, phone.ID, 1)
	require.NoError(t, err)
	_, err = env.carts.AddItem(user.ID, novel.ID, 1)
	require.NoError(t, err)

	result, err := env.categories.Delete(context.Background(), electronics.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{electronics.ID, phones.ID}, result.CategoryIDs)
	assert.ElementsMatch(t, []uint{phone.ID, tv.ID}, result.ProductIDs)

	var productCount int64
	require.NoError(t, env.db.Model(&models.Product{}).Count(&productCount).Error)
	assert.Equal(t, int64(1), productCount)

	view, err := env.carts.View(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, novel.ID, view.Items[0].Product.ID)

	_, err = env.categories.Delete(context.Background(), electronics.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestListRootsOrderedByName(t *testing.T) {
	env := newServiceEnv(t)
	z := env.mustCategory(t, "Zoo", nil)
	env.mustCategory(t, "Apple", nil)
	env.mustCategory(t, "Child", &z.ID)

	roots, err := env.categories.ListRoots()
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "Apple", roots[0].Name)
	assert.Equal(t, "Zoo", roots[1].Name)
}
