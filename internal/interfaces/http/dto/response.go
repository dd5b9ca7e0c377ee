package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moayyadfaris/jiraiya/internal/domain/entity"
	apperrors "github.com/moayyadfaris/jiraiya/pkg/errors"
)

// ErrorResponse 统一错误响应结构
type ErrorResponse struct {
	Code       string                  `json:"code"`
	Message    string                  `json:"message"`
	Detail     string                  `json:"detail,omitempty"`
	Violations []entity.FieldViolation `json:"violations,omitempty"`
	TraceID    string                  `json:"trace_id,omitempty"`
}

// Error 按 AppError 返回错误响应
func Error(c *gin.Context, err *apperrors.AppError) {
	c.JSON(err.HTTPStatus, ErrorResponse{
		Code:    string(err.Code),
		Message: err.Message,
		Detail:  err.Detail,
		TraceID: c.GetString("trace_id"),
	})
}

// ValidationFailed 返回 422 校验失败响应，枚举全部违规
func ValidationFailed(c *gin.Context, verr *entity.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Code:       string(apperrors.CodeValidationFailed),
		Message:    "request validation failed",
		Violations: verr.Violations,
		TraceID:    c.GetString("trace_id"),
	})
}

// BadRequest 返回 400 错误（请求体不可解析等）
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    string(apperrors.CodeInvalidParam),
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// Unauthorized 返回 401 错误
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Code:    string(apperrors.CodeUnauthorized),
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// TooManyRequests 返回 429 错误
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
		Code:    string(apperrors.CodeTooManyRequests),
		Message: "rate limit exceeded",
		TraceID: c.GetString("trace_id"),
	})
}
