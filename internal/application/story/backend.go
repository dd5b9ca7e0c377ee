// Package story 提供故事生成编排
package story

import (
	"context"

	"github.com/moayyadfaris/jiraiya/internal/domain/entity"
)

// 后端变体名称
const (
	BackendAI   = "ai"
	BackendMock = "mock"
)

// Backend 定义故事生成后端（port）。实现必须无共享可变状态、并发安全。
type Backend interface {
	// GenerateStory 从已校验的请求生成故事
	GenerateStory(ctx context.Context, req *entity.StoryRequest) (*entity.StoryResult, error)
	// Name 返回后端变体名称（用于日志与指标）
	Name() string
}
