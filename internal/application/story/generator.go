package story

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/moayyadfaris/jiraiya/internal/domain/entity"
	apperrors "github.com/moayyadfaris/jiraiya/pkg/errors"
	"github.com/moayyadfaris/jiraiya/pkg/logger"
	"github.com/moayyadfaris/jiraiya/pkg/metrics"
	"github.com/moayyadfaris/jiraiya/pkg/tracer"
)

// Generator 故事生成编排器。后端的任何失败（含 panic）
// 都收敛为 generation failed 错误，不向调用方泄露内部细节。
type Generator struct {
	backend Backend
}

// NewGenerator 创建编排器
func NewGenerator(backend Backend) *Generator {
	return &Generator{backend: backend}
}

// Backend 返回当前后端名称
func (g *Generator) Backend() string {
	return g.backend.Name()
}

// GenerateStory 执行一次故事生成
func (g *Generator) GenerateStory(ctx context.Context, req *entity.StoryRequest) (result *entity.StoryResult, err error) {
	backend := g.backend.Name()

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "story backend panicked", fmt.Errorf("%v", r), "backend", backend)
			metrics.StoryGenerationTotal.WithLabelValues(backend, "error").Inc()
			result = nil
			err = apperrors.NewGenerationFailed("panic", fmt.Errorf("backend panic: %v", r))
		}
	}()

	ctx, span := tracer.Start(ctx, "story.generate",
		trace.WithAttributes(attribute.String("story.backend", backend)),
	)
	defer span.End()

	start := time.Now()
	res, genErr := g.backend.GenerateStory(ctx, req)
	metrics.StoryGenerationDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())

	if genErr != nil {
		span.RecordError(genErr)
		metrics.StoryGenerationTotal.WithLabelValues(backend, "error").Inc()
		logger.Error(ctx, "story generation failed", genErr, "backend", backend, "cause", errorLabel(genErr))
		return nil, toGenerationFailed(genErr)
	}

	metrics.StoryGenerationTotal.WithLabelValues(backend, "ok").Inc()
	logger.Info(ctx, "story generated",
		"backend", backend,
		"title", res.Title,
		"content_length", len(res.Content),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// toGenerationFailed 将任意后端错误收敛为 generation failed，
// 保留原始失败类别作为诊断 detail
func toGenerationFailed(err error) *apperrors.AppError {
	if apperrors.IsCode(err, apperrors.CodeGenerationFailed) {
		return apperrors.AsAppError(err)
	}
	return apperrors.NewGenerationFailed(errorLabel(err), err)
}

// errorLabel 返回错误的类别标签（日志与 detail 用）
func errorLabel(err error) string {
	switch {
	case apperrors.IsCode(err, apperrors.CodeUpstreamRateLimited):
		return "upstream_rate_limited"
	case apperrors.IsCode(err, apperrors.CodeUpstreamServerError):
		return "upstream_server_error"
	}

	appErr := &apperrors.AppError{}
	if errors.As(err, &appErr) {
		return string(appErr.Code)
	}
	return fmt.Sprintf("%T", err)
}
