package faq

import "errors"

// 工作流错误分类
//
// 引用的待审核条目不存在不是错误：裁决操作把它当作已被裁决的幂等空操作。
var (
	// ErrValidation 输入不合法（例如非全局FAQ未绑定任何频道）
	ErrValidation = errors.New("validation failed")
	// ErrForbidden 无权限执行该操作
	ErrForbidden = errors.New("forbidden")
)

// IsValidation 判断是否为输入校验错误
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsForbidden 判断是否为权限错误
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
