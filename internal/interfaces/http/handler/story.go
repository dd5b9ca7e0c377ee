// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moayyadfaris/jiraiya/internal/application/story"
	"github.com/moayyadfaris/jiraiya/internal/domain/entity"
	"github.com/moayyadfaris/jiraiya/internal/interfaces/http/dto"
	apperrors "github.com/moayyadfaris/jiraiya/pkg/errors"
	"github.com/moayyadfaris/jiraiya/pkg/logger"
	"github.com/moayyadfaris/jiraiya/pkg/metrics"
)

// StoryHandler 故事生成处理器
type StoryHandler struct {
	generator *story.Generator
}

// NewStoryHandler 创建故事生成处理器
func NewStoryHandler(generator *story.Generator) *StoryHandler {
	return &StoryHandler{generator: generator}
}

// Generate 故事生成接口
// @Summary 生成故事
// @Description 根据关键词、体裁和语气生成短篇故事
// @Tags Story
// @Accept json
// @Produce json
// @Success 200 {object} dto.GenerateStoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/stories/generate [post]
func (h *StoryHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body")
		return
	}

	storyReq, verr := entity.NewStoryRequest(req.Keywords, req.Genre, req.Tone, req.MaxLength, req.MinLength)
	if verr != nil {
		for _, field := range verr.Fields() {
			metrics.ValidationFailedTotal.WithLabelValues(field).Inc()
		}
		logger.Warn(ctx, "story request rejected",
			"violations", len(verr.Violations),
			"fields", verr.Fields(),
		)
		dto.ValidationFailed(c, verr)
		return
	}

	result, err := h.generator.GenerateStory(ctx, storyReq)
	if err != nil {
		dto.Error(c, apperrors.AsAppError(err))
		return
	}

	c.JSON(http.StatusOK, dto.GenerateStoryResponse{
		Title:        result.Title,
		Content:      result.Content,
		KeywordsUsed: result.KeywordsUsed,
	})
}
