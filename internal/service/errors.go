package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// 业务错误定义
var (
	ErrProductNotFound       = errors.New("product not found")
	ErrInvalidKind           = errors.New("invalid product kind")
	ErrKindImmutable         = errors.New("product kind cannot be changed")
	ErrInitialStockImmutable = errors.New("initial stock cannot be changed")
	ErrInvalidGender         = errors.New("invalid gender")
	ErrHasSleevesRequired    = errors.New("has_sleeves is required for tshirts")
	ErrInvalidMaterial       = errors.New("invalid composition material")
	ErrCompositionSum        = errors.New("composition percentages must sum to 100")
	ErrInvalidUnitPrice      = errors.New("invalid unit price")
	ErrInvalidInitialStock   = errors.New("initial stock must not be negative")

	ErrZeroQuantity      = errors.New("the quantity of a product in the shopping cart cannot be 0")
	ErrInsufficientStock = errors.New("not enough stock available")

	ErrNoActiveCart         = errors.New("no active shopping cart for today")
	ErrConcurrencyConflict  = errors.New("concurrent cart modification detected")
	ErrEmailNotConfigured   = errors.New("email delivery is not configured")
	ErrNotificationDisabled = errors.New("order notification is disabled")
)

// FieldErrors 字段级校验错误（字段名 -> 错误消息列表）
type FieldErrors map[string][]string

// Add 追加字段错误
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// HasErrors 是否存在错误
func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}

// Error 实现 error 接口
func (f FieldErrors) Error() string {
	if len(f) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(f[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
