package admin

import (
	"net/url"
	"strings"

	"github.com/mini-ozon/internal/authz"
	"github.com/mini-ozon/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if strings.TrimSpace(role) == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: authz.ErrUnknownRole, code: response.CodeNotFound, key: "error.role_not_found"},
		}, response.CodeBadRequest, "error.bad_request")
		return
	}
	response.Success(c, policies)
}

// GetAuthzUserPolicies 获取用户的角色与生效策略
func (h *Handler) GetAuthzUserPolicies(c *gin.Context) {
	userID, ok := parseUintParam(c, "id", "error.user_not_found")
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	policies, err := h.AuthzService.GetUserPolicies(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"user_id":  userID,
		"roles":    roles,
		"policies": policies,
	})
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	h.changeAuthzPolicy(c, "granted", h.AuthzService.GrantRolePolicy)
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	h.changeAuthzPolicy(c, "revoked", h.AuthzService.RevokeRolePolicy)
}

func (h *Handler) changeAuthzPolicy(c *gin.Context, verb string, apply func(role, object, action string) error) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := apply(req.Role, req.Object, req.Action); err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: authz.ErrUnknownRole, code: response.CodeNotFound, key: "error.role_not_found"},
		}, response.CodeBadRequest, "error.authz_update_failed")
		return
	}
	operatorID, _ := getOperatorID(c)
	requestLog(c).Infow("admin_authz_policy_"+verb,
		"operator_id", operatorID,
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, nil)
}

func decodeRoleParam(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
