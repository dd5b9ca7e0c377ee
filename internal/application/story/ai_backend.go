package story

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/moayyadfaris/jiraiya/internal/application/story/prompt"
	"github.com/moayyadfaris/jiraiya/internal/domain/entity"
	apperrors "github.com/moayyadfaris/jiraiya/pkg/errors"
	"github.com/moayyadfaris/jiraiya/pkg/logger"
	"github.com/moayyadfaris/jiraiya/pkg/metrics"
	"github.com/moayyadfaris/jiraiya/pkg/retry"
	"github.com/moayyadfaris/jiraiya/pkg/tracer"
)

// AIBackend 基于 LLM 的故事生成后端
type AIBackend struct {
	chatModel model.BaseChatModel
	prompts   *prompt.Registry
	policy    retry.Policy
	provider  string
	modelName string
}

// NewAIBackend 创建 AI 后端。模型参数（温度、max_tokens）在 chatModel 构造时固定。
func NewAIBackend(chatModel model.BaseChatModel, prompts *prompt.Registry, policy retry.Policy, provider, modelName string) *AIBackend {
	return &AIBackend{
		chatModel: chatModel,
		prompts:   prompts,
		policy:    policy,
		provider:  provider,
		modelName: modelName,
	}
}

// Name 返回后端名称
func (b *AIBackend) Name() string {
	return BackendAI
}

// GenerateStory 渲染提示词、调用模型并解析输出
func (b *AIBackend) GenerateStory(ctx context.Context, req *entity.StoryRequest) (*entity.StoryResult, error) {
	ctx, span := tracer.Start(ctx, "story.ai.generate",
		trace.WithAttributes(
			attribute.String("llm.provider", b.provider),
			attribute.String("llm.model", b.modelName),
		),
	)
	defer span.End()

	msgs, err := b.prompts.Render(ctx, prompt.StorytellerV1, req)
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}

	raw, err := b.complete(ctx, msgs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	title, content := ParseStory(raw)
	logger.Info(ctx, "llm story generated",
		"provider", b.provider,
		"model", b.modelName,
		"title", title,
		"content_length", len(content),
	)

	return &entity.StoryResult{
		Title:        title,
		Content:      content,
		KeywordsUsed: req.Keywords,
	}, nil
}

// complete 通过重试策略调用模型，返回原始文本
func (b *AIBackend) complete(ctx context.Context, msgs []*schema.Message) (string, error) {
	p := b.policy
	p.RetryIf = apperrors.IsTransient
	p.OnRetry = func(ctx context.Context, attempt int, wait time.Duration, err error) {
		reason := retryReason(err)
		metrics.LLMRetriesTotal.WithLabelValues(b.provider, reason).Inc()
		logger.Warn(ctx, "retrying llm call",
			"provider", b.provider,
			"model", b.modelName,
			"attempt", attempt,
			"wait_seconds", wait.Seconds(),
			"reason", reason,
			"error", err.Error(),
		)
	}

	return retry.Do(ctx, p, func(ctx context.Context) (string, error) {
		start := time.Now()
		out, err := b.chatModel.Generate(ctx, msgs)
		metrics.LLMCallDuration.WithLabelValues(b.provider, b.modelName).Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.LLMCallTotal.WithLabelValues(b.provider, b.modelName, "error").Inc()
			return "", classifyUpstreamError(err)
		}
		if out == nil || strings.TrimSpace(out.Content) == "" {
			metrics.LLMCallTotal.WithLabelValues(b.provider, b.modelName, "error").Inc()
			return "", fmt.Errorf("llm returned empty response")
		}

		metrics.LLMCallTotal.WithLabelValues(b.provider, b.modelName, "ok").Inc()
		return out.Content, nil
	})
}
