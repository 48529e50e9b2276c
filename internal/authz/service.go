package authz

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiV1Prefix     = "/api/v1"
	casbinTableName = "casbin_rule"
	userSubjectFmt  = "user:%d"
	rolePrefix      = "role:"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service Casbin 授权服务
// 统一封装策略加载、授权判定与用户角色绑定
type Service struct {
	enforcer *casbin.SyncedEnforcer
	bound    sync.Map // subject -> role，进程内已确认的绑定
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

var (
	// ErrUnknownRole 角色不在预置角色中
	ErrUnknownRole = errors.New("unknown role")

	errUnavailable = errors.New("authz service unavailable")
	errNoUser      = errors.New("user id is required")
	errNoAction    = errors.New("action is required")
)

func (s *Service) ready() error {
	if s == nil || s.enforcer == nil {
		return errUnavailable
	}
	return nil
}

// Enforce 执行授权判断
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), NormalizeObject(obj), NormalizeAction(act))
}

// EnforceUser 按用户判定授权；token 中的角色尚未绑定时补绑
func (s *Service) EnforceUser(userID uint, role, obj, act string) (bool, error) {
	if userID == 0 {
		return false, errNoUser
	}
	if strings.TrimSpace(role) != "" {
		if err := s.BindUserRole(userID, role); err != nil {
			return false, err
		}
	}
	return s.Enforce(SubjectForUser(userID), obj, act)
}

// ReloadPolicy 重新加载策略并清空绑定缓存
func (s *Service) ReloadPolicy() error {
	if err := s.ready(); err != nil {
		return err
	}
	s.bound.Clear()
	return s.enforcer.LoadPolicy()
}

// requireRole 归一化角色名并确认为预置角色
func requireRole(role string) (string, error) {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return "", err
	}
	if _, ok := builtinRoleSet()[normalized]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRole, normalized)
	}
	return normalized, nil
}

// ListRoles 列出预置角色
func (s *Service) ListRoles() ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(builtinRoleSet())), nil
}

// rolePolicy 校验并归一化一条角色策略
func rolePolicy(role, object, action string) ([]string, error) {
	r, err := requireRole(role)
	if err != nil {
		return nil, err
	}
	a := NormalizeAction(action)
	if a == "" {
		return nil, errNoAction
	}
	return []string{r, NormalizeObject(object), a}, nil
}

// GrantRolePolicy 为角色授予策略，已存在时忽略
func (s *Service) GrantRolePolicy(role, object, action string) error {
	rule, err := rolePolicy(role, object, action)
	if err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.enforcer.AddPolicy(rule); err != nil {
		return fmt.Errorf("grant %v: %w", rule, err)
	}
	return nil
}

// RevokeRolePolicy 撤销角色策略
func (s *Service) RevokeRolePolicy(role, object, action string) error {
	rule, err := rolePolicy(role, object, action)
	if err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.enforcer.RemovePolicy(rule); err != nil {
		return fmt.Errorf("revoke %v: %w", rule, err)
	}
	return nil
}

// GetRolePolicies 查询角色直连策略
func (s *Service) GetRolePolicies(role string) ([]Policy, error) {
	r, err := requireRole(role)
	if err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, r)
	if err != nil {
		return nil, fmt.Errorf("policies of %s: %w", r, err)
	}
	return toPolicies(rules), nil
}

// BindUserRole 绑定用户角色，已绑定时不做修改
func (s *Service) BindUserRole(userID uint, role string) error {
	if userID == 0 {
		return errNoUser
	}
	r, err := requireRole(role)
	if err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	subject := SubjectForUser(userID)
	if cached, ok := s.bound.Load(subject); ok && cached == r {
		return nil
	}
	if _, err := s.enforcer.AddNamedGroupingPolicy("g", subject, r); err != nil {
		return fmt.Errorf("bind %s to %s: %w", subject, r, err)
	}
	s.bound.Store(subject, r)
	return nil
}

// GetUserRoles 查询用户直接绑定的角色
func (s *Service) GetUserRoles(userID uint) ([]string, error) {
	if userID == 0 {
		return nil, errNoUser
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	roles, err := s.enforcer.GetRolesForUser(SubjectForUser(userID))
	if err != nil {
		return nil, fmt.Errorf("roles of user %d: %w", userID, err)
	}
	roles = slices.DeleteFunc(roles, func(r string) bool { return !strings.HasPrefix(r, rolePrefix) })
	slices.Sort(roles)
	return roles, nil
}

// GetUserPolicies 查询用户生效策略（含继承角色）
func (s *Service) GetUserPolicies(userID uint) ([]Policy, error) {
	if userID == 0 {
		return nil, errNoUser
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetImplicitPermissionsForUser(SubjectForUser(userID))
	if err != nil {
		return nil, fmt.Errorf("policies of user %d: %w", userID, err)
	}
	policies := toPolicies(rules)
	slices.SortFunc(policies, func(a, b Policy) int {
		return cmp.Or(
			cmp.Compare(a.Subject, b.Subject),
			cmp.Compare(a.Object, b.Object),
			cmp.Compare(a.Action, b.Action),
		)
	})
	return policies, nil
}

func toPolicies(rules [][]string) []Policy {
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		policies = append(policies, Policy{
			Subject: strings.TrimSpace(rule[0]),
			Object:  NormalizeObject(rule[1]),
			Action:  NormalizeAction(rule[2]),
		})
	}
	return policies
}

// SubjectForUser 生成用户主体标识
func SubjectForUser(userID uint) string {
	return fmt.Sprintf(userSubjectFmt, userID)
}

// NormalizeRole 统一角色名称
func NormalizeRole(role string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if normalized == "" {
		return "", fmt.Errorf("role is required")
	}
	normalized = strings.ReplaceAll(normalized, " ", "_")
	if !strings.HasPrefix(normalized, rolePrefix) {
		normalized = rolePrefix + normalized
	}
	if len(normalized) <= len(rolePrefix) {
		return "", fmt.Errorf("role is required")
	}
	return normalized, nil
}

// NormalizeObject 统一授权资源路径
func NormalizeObject(object string) string {
	normalized := strings.TrimSpace(object)
	if normalized == "" {
		return "/"
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	if strings.HasPrefix(normalized, apiV1Prefix+"/") {
		return strings.TrimPrefix(normalized, apiV1Prefix)
	}
	if normalized == apiV1Prefix {
		return "/"
	}
	return normalized
}

// NormalizeAction 统一授权动作
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
