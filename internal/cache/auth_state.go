package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mini-ozon/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState 中间件校验 token 所需的用户快照，存为 Redis hash
type UserAuthState struct {
	UserID       uint
	Status       string
	Role         string
	TokenVersion uint64
}

func userAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// BuildUserAuthState 从用户模型构建鉴权快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{
		UserID:       user.ID,
		Status:       user.Status,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	}
}

// GetUserAuthState 读取用户鉴权快照，字段不全视为未命中
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 || !Enabled() {
		return nil, false, nil
	}
	fields, err := current.client.HGetAll(ctx, buildKey(userAuthStateKey(userID))).Result()
	if err != nil {
		return nil, false, err
	}
	status, role, rawVersion := fields["status"], fields["role"], fields["token_version"]
	if status == "" || role == "" || rawVersion == "" {
		return nil, false, nil
	}
	version, err := strconv.ParseUint(rawVersion, 10, 64)
	if err != nil {
		return nil, false, nil
	}
	return &UserAuthState{UserID: userID, Status: status, Role: role, TokenVersion: version}, true, nil
}

// SetUserAuthState 写入用户鉴权快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 || !Enabled() {
		return nil
	}
	key := buildKey(userAuthStateKey(state.UserID))
	pipe := current.client.TxPipeline()
	pipe.HSet(ctx, key,
		"status", state.Status,
		"role", state.Role,
		"token_version", strconv.FormatUint(state.TokenVersion, 10),
	)
	pipe.Expire(ctx, key, authStateCacheTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// DelUserAuthState 删除用户鉴权快照
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, userAuthStateKey(userID))
}
