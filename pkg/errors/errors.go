// Package errors 提供统一的错误定义
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeUnauthorized       ErrorCode = "1002"
	CodeTooManyRequests    ErrorCode = "1003"
	CodeInternalError      ErrorCode = "1004"
	CodeServiceUnavailable ErrorCode = "1005"

	// 业务错误 (2xxx)
	CodeValidationFailed ErrorCode = "2001"
	CodeGenerationFailed ErrorCode = "2002"

	// 上游 LLM 错误 (3xxx)
	CodeUpstreamRateLimited ErrorCode = "3001"
	CodeUpstreamServerError ErrorCode = "3002"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodeTooManyRequests, CodeUpstreamRateLimited:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable, CodeGenerationFailed:
		return http.StatusServiceUnavailable
	case CodeUpstreamServerError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrUnauthorized       = New(CodeUnauthorized, "could not validate credentials")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")
)

// NewGenerationFailed 创建故事生成失败错误
func NewGenerationFailed(detail string, err error) *AppError {
	return Wrap(err, CodeGenerationFailed, "story generation failed").WithDetail(detail)
}

// NewUpstreamRateLimited 创建上游限流错误（可重试）
func NewUpstreamRateLimited(err error) *AppError {
	return Wrap(err, CodeUpstreamRateLimited, "upstream rate limit exceeded")
}

// NewUpstreamServerError 创建上游服务端错误（可重试）
func NewUpstreamServerError(err error) *AppError {
	return Wrap(err, CodeUpstreamServerError, "upstream server error")
}

// IsTransient 判断是否为可重试的瞬时上游错误
func IsTransient(err error) bool {
	appErr := &AppError{}
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == CodeUpstreamRateLimited || appErr.Code == CodeUpstreamServerError
}

// IsCode 判断错误是否携带指定错误码
func IsCode(err error, code ErrorCode) bool {
	appErr := &AppError{}
	return errors.As(err, &appErr) && appErr.Code == code
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	appErr := &AppError{}
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
