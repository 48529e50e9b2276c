package authz

import (
	"fmt"

	"github.com/mini-ozon/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 买家 < 卖家 < 管理员，逐级继承
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleBuyer,
			Policies: []Policy{
				{Object: "/cart", Action: "GET"},
				{Object: "/cart/add", Action: "POST"},
				{Object: "/cart/item/:id/update", Action: "PATCH"},
				{Object: "/cart/item/:id", Action: "DELETE"},
				{Object: "/orders/create", Action: "POST"},
				{Object: "/orders/history", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleSeller,
			Inherits: []string{constants.RoleBuyer},
			Policies: []Policy{
				{Object: "/products", Action: "POST"},
				{Object: "/products/:id", Action: "PUT"},
				{Object: "/products/:id", Action: "DELETE"},
				{Object: "/admin/products", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{constants.RoleSeller},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

func builtinRoleSet() map[string]struct{} {
	set := make(map[string]struct{}, 3)
	for _, seed := range BuiltinRoleSeeds() {
		if role, err := NormalizeRole(seed.Role); err == nil {
			set[role] = struct{}{}
		}
	}
	return set
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
