package story

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moayyadfaris/jiraiya/internal/application/story/prompt"
	apperrors "github.com/moayyadfaris/jiraiya/pkg/errors"
	"github.com/moayyadfaris/jiraiya/pkg/retry"
)

// fakeChatModel 按预设脚本响应的假模型
type fakeChatModel struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	content := ""
	if idx < len(f.responses) {
		content = f.responses[idx]
	}
	return schema.AssistantMessage(content, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func newTestAIBackend(cm model.BaseChatModel) *AIBackend {
	// 测试中不真正等待
	p := retry.Policy{
		Sleep: func(ctx context.Context, d time.Duration) error { return nil },
	}
	return NewAIBackend(cm, prompt.NewRegistry(), p, "openai", "gpt-4o")
}

func TestAIBackendGeneratesAndParses(t *testing.T) {
	cm := &fakeChatModel{responses: []string{"Title: The Dragon Gate\nOnce there was a ninja."}}
	b := newTestAIBackend(cm)

	res, err := b.GenerateStory(context.Background(), validRequest(t, nil))
	require.NoError(t, err)

	assert.Equal(t, "The Dragon Gate", res.Title)
	assert.Equal(t, "Once there was a ninja.", res.Content)
	assert.Equal(t, []string{"ninja", "dragon"}, res.KeywordsUsed)
	assert.Equal(t, 1, cm.calls)
}

func TestAIBackendRetriesTransientErrors(t *testing.T) {
	cm := &fakeChatModel{
		errs:      []error{errors.New("429 too many requests"), errors.New("503 service unavailable"), nil},
		responses: []string{"", "", "A Title\nA story."},
	}
	b := newTestAIBackend(cm)

	res, err := b.GenerateStory(context.Background(), validRequest(t, nil))
	require.NoError(t, err)
	assert.Equal(t, "A Title", res.Title)
	assert.Equal(t, 3, cm.calls)
}

func TestAIBackendExhaustsRetries(t *testing.T) {
	cm := &fakeChatModel{
		errs: []error{
			errors.New("rate limit exceeded"),
			errors.New("rate limit exceeded"),
			errors.New("rate limit exceeded"),
		},
	}
	b := newTestAIBackend(cm)

	_, err := b.GenerateStory(context.Background(), validRequest(t, nil))
	require.Error(t, err)
	assert.Equal(t, 3, cm.calls)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUpstreamRateLimited))
}

func TestAIBackendDoesNotRetryPermanentErrors(t *testing.T) {
	cm := &fakeChatModel{errs: []error{errors.New("invalid api key")}}
	b := newTestAIBackend(cm)

	_, err := b.GenerateStory(context.Background(), validRequest(t, nil))
	require.Error(t, err)
	assert.Equal(t, 1, cm.calls)
}

func TestClassifyUpstreamError(t *testing.T) {
	assert.True(t, apperrors.IsCode(classifyUpstreamError(errors.New("HTTP 429 Too Many Requests")), apperrors.CodeUpstreamRateLimited))
	assert.True(t, apperrors.IsCode(classifyUpstreamError(errors.New("quota exceeded for project")), apperrors.CodeUpstreamRateLimited))
	assert.True(t, apperrors.IsCode(classifyUpstreamError(errors.New("502 Bad Gateway")), apperrors.CodeUpstreamServerError))
	assert.True(t, apperrors.IsCode(classifyUpstreamError(errors.New("Internal Server Error")), apperrors.CodeUpstreamServerError))

	permanent := errors.New("invalid api key")
	assert.Equal(t, permanent, classifyUpstreamError(permanent))
	assert.Nil(t, classifyUpstreamError(nil))
}

func TestRetryReason(t *testing.T) {
	assert.Equal(t, "rate_limited", retryReason(apperrors.NewUpstreamRateLimited(errors.New("429"))))
	assert.Equal(t, "server_error", retryReason(apperrors.NewUpstreamServerError(errors.New("503"))))
	assert.Equal(t, "other", retryReason(errors.New("weird")))
}
