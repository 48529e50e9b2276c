package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrMoneyOutOfRange 金额为负或超出 decimal(10,2) 可存储范围
	ErrMoneyOutOfRange = errors.New("money out of range")
	// ErrMoneyPrecision 金额超过两位小数
	ErrMoneyPrecision = errors.New("money has more than 2 decimal places")
)

// moneyMaxDigits 与表结构 decimal(10,2) 保持一致
const moneyMaxDigits = 10

// Money 统一金额类型（保留 2 位小数）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// ParseMoney 解析金额字符串，拒绝超过两位小数、负数与溢出列宽的值
func ParseMoney(raw string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Money{}, err
	}
	if !d.Equal(d.Round(2)) {
		return Money{}, ErrMoneyPrecision
	}
	m := NewMoneyFromDecimal(d)
	if !m.FitsColumn() {
		return Money{}, ErrMoneyOutOfRange
	}
	return m, nil
}

// FitsColumn 判断金额是否可写入 decimal(10,2)
func (m Money) FitsColumn() bool {
	if m.Decimal.IsNegative() {
		return false
	}
	intPart := m.Decimal.Round(2).Truncate(0).Abs().String()
	return len(intPart) <= moneyMaxDigits-2
}

// MarshalJSON 统一输出 2 位小数的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		m.Decimal = d.Round(2)
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
