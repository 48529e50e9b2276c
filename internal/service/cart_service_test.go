package service

import (
	"errors"
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/mini-ozon/internal/constants"
	"github.com/mini-ozon/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func TestCartAddItemAccumulates(t *testing.T) {
	env := newServiceEnv(t)
	books := env.mustCategory(t, "Books", nil)
	novel := env.mustProduct(t, "Novel", "5.00", books.ID)
	user := env.mustUser(t, "buyer")

	qty, err := env.carts.AddItem(user.ID, novel.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)

	qty, err = env.carts.AddItem(user.ID, novel.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, qty)

	view, err := env.carts.View(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, view.UserID)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	require.NotNil(t, view.Items[0].Product)
	assert.Equal(t, "Novel", view.Items[0].Product.Name)
}

func TestCartAddItemRejectsInvalidInput(t *testing.T) {
	env := newServiceEnv(t)
	books := env.mustCategory(t, "Books", nil)
	novel := env.mustProduct(t, "Novel", "5.00", books.ID)
	user := env.mustUser(t, "buyer")

	_, err := env.carts.AddItem(user.ID, novel.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = env.carts.AddItem(user.ID, novel.ID, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = env.carts.AddItem(user.ID, 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartGetOrCreateIsSingleton(t *testing.T) {
	env := newServiceEnv(t)
	user := env.mustUser(t, "buyer")

	var wg sync.WaitGroup
	ids := make([]uint, 8)
	errs := make([]error, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cart, err := env.carts.GetOrCreateCart(user.ID)
			errs[i] = err
			if cart != nil {
				ids[i] = cart.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	var count int64
	require.NoError(t, env.db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCartUpdateItemChecksOwnership(t *testing.T) {
	env := newServiceEnv(t)
	books := env.mustCategory(t, "Books", nil)
	novel := env.mustProduct(t, "Novel", "5.00", books.ID)
	owner := env.mustUser(t, "owner")
	other := env.mustUser(t, "other")

	_, err := env.carts.AddItem(owner.ID, novel.ID, 1)
	require.NoError(t, err)
	view, err := env.carts.View(owner.ID)
	require.NoError(t, err)
	itemID := view.Items[0].ID

	qty, err := env.carts.UpdateItem(owner.ID, itemID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, qty)

	_, err = env.carts.UpdateItem(other.ID, itemID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
	_, err = env.carts.UpdateItem(owner.ID, itemID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = env.carts.UpdateItem(owner.ID, 9999, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	assert.ErrorIs(t, env.carts.RemoveItem(other.ID, itemID), ErrCartItemNotFound)
	require.NoError(t, env.carts.RemoveItem(owner.ID, itemID))

	view, err = env.carts.View(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartQuantityLimitKeepsCartUsable(t *testing.T) {
	env := newServiceEnv(t)
	books := env.mustCategory(t, "Books", nil)
	novel := env.mustProduct(t, "Novel", "5.00", books.ID)
	user := env.mustUser(t, "buyer")

	_, err := env.carts.AddItem(user.ID, novel.ID, math.MaxInt)
	assert.ErrorIs(t, err, ErrQuantityTooLarge)

	qty, err := env.carts.AddItem(user.ID, novel.ID, constants.ItemQuantityMax)
	require.NoError(t, err)
	assert.Equal(t, constants.ItemQuantityMax, qty)
	_, err = env.carts.AddItem(user.ID, novel.ID, constants.ItemQuantityMax)
	assert.ErrorIs(t, err, ErrQuantityTooLarge)

	view, err := env.carts.View(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, constants.ItemQuantityMax, view.Items[0].Quantity)

	_, err = env.carts.UpdateItem(user.ID, view.Items[0].ID, constants.ItemQuantityMax+1)
	assert.ErrorIs(t, err, ErrQuantityTooLarge)

	// 5.00 × ItemQuantityMax 超出 decimal(10,2)，下单回滚且购物车保留
	_, err = env.orders.Checkout(user.ID)
	assert.ErrorIs(t, err, models.ErrMoneyOutOfRange)
	view, err = env.carts.View(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	_, err = env.carts.UpdateItem(user.ID, view.Items[0].ID, 2)
	require.NoError(t, err)
	order, err := env.orders.Checkout(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", order.Total.String())
}

func TestCartAddItemRollsBackCartOnWriteFailure(t *testing.T) {
	env := newServiceEnv(t)
	books := env.mustCategory(t, "Books", nil)
	novel := env.mustProduct(t, "Novel", "5.00", books.ID)
	user := env.mustUser(t, "buyer")

	const hook = "test:fail_cart_item_insert"
	require.NoError(t, env.db.Callback().Create().Before("gorm:create").Register(hook, func(tx *gorm.DB) {
		if tx.Statement.Table == "cart_items" {
			_ = tx.AddError(errors.New("insert rejected"))
		}
	}))
	_, err := env.carts.AddItem(user.ID, novel.ID, 1)
	require.Error(t, err)

	var carts int64
	require.NoError(t, env.db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&carts).Error)
	assert.Zero(t, carts, "cart creation must roll back with the failed item insert")

	require.NoError(t, env.db.Callback().Create().Remove(hook))
	qty, err := env.carts.AddItem(user.ID, novel.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, qty)
}
