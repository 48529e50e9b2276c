package service

import (
	"unicode"

	"github.com/mini-ozon/internal/config"
)

// bcrypt 只使用前 72 字节
const maxPasswordBytes = 72

// passwordPolicyError 携带 i18n key 的密码策略错误，errors.Is 匹配 ErrWeakPassword
type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string        { return e.key }
func (e passwordPolicyError) Is(target error) bool { return target == ErrWeakPassword }

// Key 文案 key
func (e passwordPolicyError) Key() string { return e.key }

// Args 文案参数
func (e passwordPolicyError) Args() []interface{} { return e.args }

type charClass struct {
	required bool
	present  bool
	key      string
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	minLength := policy.MinLength
	if minLength < 1 {
		minLength = 1
	}
	if len([]rune(password)) < minLength {
		return passwordPolicyError{key: "validation.password_min_length", args: []interface{}{minLength}}
	}
	if len(password) > maxPasswordBytes {
		return passwordPolicyError{key: "validation.password_max_length", args: []interface{}{maxPasswordBytes}}
	}

	classes := []*charClass{
		{required: policy.RequireUpper, key: "validation.password_need_upper"},
		{required: policy.RequireLower, key: "validation.password_need_lower"},
		{required: policy.RequireNumber, key: "validation.password_need_number"},
		{required: policy.RequireSpecial, key: "validation.password_need_special"},
	}
	upper, lower, number, special := classes[0], classes[1], classes[2], classes[3]
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper.present = true
		case unicode.IsLower(r):
			lower.present = true
		case unicode.IsDigit(r):
			number.present = true
		default:
			special.present = true
		}
	}
	for _, class := range classes {
		if class.required && !class.present {
			return passwordPolicyError{key: class.key}
		}
	}
	return nil
}
