package story

import (
	"strings"

	apperrors "github.com/moayyadfaris/jiraiya/pkg/errors"
)

// 上游错误消息特征。SDK 不保证结构化错误类型，按消息内容分类。
var (
	rateLimitMarkers = []string{
		"429",
		"rate limit",
		"too many requests",
		"quota",
	}

	serverErrorMarkers = []string{
		"500",
		"502",
		"503",
		"504",
		"internal server error",
		"bad gateway",
		"service unavailable",
		"server overloaded",
	}
)

// classifyUpstreamError 将上游错误归类为可重试的瞬时错误。
// 无法归类的错误原样返回，交由调用方处理。
func classifyUpstreamError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())

	if containsAny(msg, rateLimitMarkers) {
		return apperrors.NewUpstreamRateLimited(err)
	}
	if containsAny(msg, serverErrorMarkers) {
		return apperrors.NewUpstreamServerError(err)
	}
	return err
}

// retryReason 返回重试原因标签（指标用）
func retryReason(err error) string {
	switch {
	case apperrors.IsCode(err, apperrors.CodeUpstreamRateLimited):
		return "rate_limited"
	case apperrors.IsCode(err, apperrors.CodeUpstreamServerError):
		return "server_error"
	default:
		return "other"
	}
}

func containsAny(msg string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
