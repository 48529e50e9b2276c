package cache

import (
	"context"
	"testing"

	"github.com/mini-ozon/internal/config"
	"github.com/mini-ozon/internal/constants"
	"github.com/mini-ozon/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() {
		t.Fatalf("cache should be disabled")
	}
	ctx := context.Background()
	if err := SetCategoryTree(ctx, []string{"x"}, 0); err != nil {
		t.Fatalf("set on disabled cache should be noop: %v", err)
	}
	var dest []string
	hit, err := GetCategoryTree(ctx, &dest)
	if err != nil || hit {
		t.Fatalf("get on disabled cache should miss, hit=%v err=%v", hit, err)
	}
	if err := DelCategoryTree(ctx); err != nil {
		t.Fatalf("del on disabled cache should be noop: %v", err)
	}
	if err := Ping(ctx); err != nil {
		t.Fatalf("ping on disabled cache should be noop: %v", err)
	}
}

func TestBuildUserAuthState(t *testing.T) {
	user := &models.User{ID: 7, Status: constants.UserStatusActive, Role: constants.RoleSeller, TokenVersion: 3}
	state := BuildUserAuthState(user)
	if state.UserID != 7 || state.Role != constants.RoleSeller || state.TokenVersion != 3 {
		t.Fatalf("unexpected state: %+v", state)
	}
	if BuildUserAuthState(nil) != nil {
		t.Fatalf("nil user should produce nil state")
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	current = &store{prefix: constants.RedisPrefixDefault}
	if got := buildKey(categoryTreeKey); got != "ozon:catalog:category_tree" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := buildKey(" "); got != "ozon" {
		t.Fatalf("unexpected empty key: %s", got)
	}
}

func TestDisabledAuthStateIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false, Prefix: "shop"}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	ctx := context.Background()
	if err := SetUserAuthState(ctx, &UserAuthState{UserID: 1, Status: constants.UserStatusActive, Role: constants.RoleBuyer}); err != nil {
		t.Fatalf("set auth state should be noop: %v", err)
	}
	state, hit, err := GetUserAuthState(ctx, 1)
	if err != nil || hit || state != nil {
		t.Fatalf("disabled cache should miss, state=%v hit=%v err=%v", state, hit, err)
	}
	if got := buildKey(userAuthStateKey(5)); got != "shop:auth:user:5" {
		t.Fatalf("prefix should follow config, got %s", got)
	}
}
