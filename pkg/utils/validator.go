package utils

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldError 单个字段的校验错误，作为 validation_error 的 details 返回
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationDetails 将绑定/校验错误转换为结构化明细
func ValidationDetails(err error) []FieldError {
	if err == nil {
		return nil
	}

	// 处理validator的验证错误
	var validationErrors validator.ValidationErrors
	if stdErrors.As(err, &validationErrors) {
		details := make([]FieldError, 0, len(validationErrors))
		for _, e := range validationErrors {
			details = append(details, FieldError{Field: e.Field(), Message: formatFieldError(e)})
		}
		return details
	}

	// 处理JSON解析错误
	var typeErr *json.UnmarshalTypeError
	if stdErrors.As(err, &typeErr) {
		return []FieldError{{Field: typeErr.Field, Message: fmt.Sprintf("field '%s' should be %s", typeErr.Field, typeErr.Type.String())}}
	}

	// 处理JSON语法错误
	var syntaxErr *json.SyntaxError
	if stdErrors.As(err, &syntaxErr) {
		return []FieldError{{Message: "invalid JSON format"}}
	}

	return []FieldError{{Message: err.Error()}}
}

// formatFieldError 格式化单个字段的验证错误
func formatFieldError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", field)
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s", field, e.Param())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of: %s", field, e.Param())
	case "email":
		return fmt.Sprintf("field '%s' must be a valid email address", field)
	case "gte":
		return fmt.Sprintf("field '%s' must be greater than or equal to %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("field '%s' must be less than or equal to %s", field, e.Param())
	default:
		return fmt.Sprintf("field '%s' validation failed on '%s' tag", field, e.Tag())
	}
}
