package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// 错误码
const (
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeValidationError    = "validation_error"
	CodeEmailTaken         = "email_taken"
	CodeProjectKeyTaken    = "project_key_taken"
	CodeInvalidAssignee    = "invalid_assignee"
	CodeInvalidCredentials = "invalid_credentials"
	CodeMemberNotFound     = "member_not_found"
	CodeUserNotFound       = "user_not_found"
	CodeLastMaintainer     = "last_maintainer"
	CodeRateLimited        = "rate_limited"
	CodeInternalError      = "internal_error"
)

// AppError 应用错误
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，便于 errors.Is(err, ErrForbidden)
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetails 返回带附加信息的副本，不修改预定义错误
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage 返回替换了提示信息的副本
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// New 创建新错误
func New(status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Internal 包装未预期的错误，对外只暴露通用信息
func Internal(message string, err error) *AppError {
	return Wrap(http.StatusInternalServerError, CodeInternalError, message, err)
}

// As 提取 AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stdErrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// 预定义错误
var (
	ErrUnauthorized       = New(http.StatusUnauthorized, CodeUnauthorized, "Unauthorized")
	ErrInvalidToken       = New(http.StatusUnauthorized, CodeUnauthorized, "Invalid token")
	ErrTokenExpired       = New(http.StatusUnauthorized, CodeUnauthorized, "Token expired")
	ErrForbidden          = New(http.StatusForbidden, CodeForbidden, "Forbidden")
	ErrNotFound           = New(http.StatusNotFound, CodeNotFound, "Resource not found")
	ErrProjectNotFound    = New(http.StatusNotFound, CodeNotFound, "Project not found")
	ErrIssueNotFound      = New(http.StatusNotFound, CodeNotFound, "Issue not found")
	ErrValidation         = New(http.StatusUnprocessableEntity, CodeValidationError, "Request validation failed")
	ErrEmailTaken         = New(http.StatusBadRequest, CodeEmailTaken, "Email already registered")
	ErrProjectKeyTaken    = New(http.StatusBadRequest, CodeProjectKeyTaken, "Project key already exists")
	ErrInvalidAssignee    = New(http.StatusBadRequest, CodeInvalidAssignee, "Assignee must be a project member")
	ErrInvalidCredentials = New(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password")
	ErrMemberNotFound     = New(http.StatusNotFound, CodeMemberNotFound, "Project member not found")
	ErrUserNotFound       = New(http.StatusNotFound, CodeUserNotFound, "User not found")
	ErrLastMaintainer     = New(http.StatusBadRequest, CodeLastMaintainer, "Cannot remove the last maintainer from a project")
	ErrRateLimited        = New(http.StatusTooManyRequests, CodeRateLimited, "Too many requests, please retry later")
	ErrInternal           = New(http.StatusInternalServerError, CodeInternalError, "Internal server error")

	// ErrRecordNotFound 仓储层未命中，由 service 转换为具体的业务错误
	ErrRecordNotFound = New(http.StatusNotFound, CodeNotFound, "Record not found")
)
