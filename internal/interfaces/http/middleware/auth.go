package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/moayyadfaris/jiraiya/internal/interfaces/http/dto"
)

// APIKeyHeader 服务访问密钥头
const APIKeyHeader = "X-API-Key"

// AuthConfig 认证配置
type AuthConfig struct {
	// APIKey 共享访问密钥；为空时不启用认证
	APIKey string
	// SkipPaths 跳过认证的路径
	SkipPaths []string
	// Enabled 是否启用认证
	Enabled bool
}

// Auth API Key 认证中间件。密钥与配置值精确比对。
func Auth(cfg AuthConfig) gin.HandlerFunc {
	// 如果未启用认证，返回空中间件
	if !cfg.Enabled || cfg.APIKey == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	// 构建跳过路径映射
	skipMap := make(map[string]bool)
	for _, path := range cfg.SkipPaths {
		skipMap[path] = true
	}

	return func(c *gin.Context) {
		// 检查是否跳过路径
		if skipMap[c.Request.URL.Path] {
			c.Next()
			return
		}
		for path := range skipMap {
			// 根路径仅精确匹配，前缀匹配会放行所有请求
			if path == "/" {
				continue
			}
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			dto.Unauthorized(c, "missing api key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) != 1 {
			dto.Unauthorized(c, "could not validate credentials")
			return
		}

		c.Next()
	}
}
