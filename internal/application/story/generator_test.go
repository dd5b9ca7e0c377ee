package story

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moayyadfaris/jiraiya/internal/domain/entity"
	apperrors "github.com/moayyadfaris/jiraiya/pkg/errors"
)

// stubBackend 测试用后端
type stubBackend struct {
	result *entity.StoryResult
	err    error
	panics bool
}

func (s *stubBackend) GenerateStory(ctx context.Context, req *entity.StoryRequest) (*entity.StoryResult, error) {
	if s.panics {
		panic("backend exploded")
	}
	return s.result, s.err
}

func (s *stubBackend) Name() string { return "stub" }

func TestGeneratorReturnsBackendResult(t *testing.T) {
	want := &entity.StoryResult{Title: "T", Content: "C", KeywordsUsed: []string{"k"}}
	g := NewGenerator(&stubBackend{result: want})

	got, err := g.GenerateStory(context.Background(), validRequest(t, nil))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGeneratorWrapsBackendError(t *testing.T) {
	cause := errors.New("boom")
	g := NewGenerator(&stubBackend{err: cause})

	res, err := g.GenerateStory(context.Background(), validRequest(t, nil))
	assert.Nil(t, res)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeGenerationFailed, appErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
	assert.ErrorIs(t, err, cause)
}

func TestGeneratorKeepsGenerationFailedError(t *testing.T) {
	orig := apperrors.NewGenerationFailed("upstream_rate_limited", errors.New("429"))
	g := NewGenerator(&stubBackend{err: orig})

	_, err := g.GenerateStory(context.Background(), validRequest(t, nil))
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeGenerationFailed, appErr.Code)
	assert.Equal(t, "upstream_rate_limited", appErr.Detail)
}

func TestGeneratorDetailCarriesErrorCategory(t *testing.T) {
	g := NewGenerator(&stubBackend{err: apperrors.NewUpstreamRateLimited(errors.New("429 too many requests"))})

	_, err := g.GenerateStory(context.Background(), validRequest(t, nil))
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeGenerationFailed, appErr.Code)
	assert.Equal(t, "upstream_rate_limited", appErr.Detail)
}

func TestGeneratorRecoversPanic(t *testing.T) {
	g := NewGenerator(&stubBackend{panics: true})

	res, err := g.GenerateStory(context.Background(), validRequest(t, nil))
	assert.Nil(t, res)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeGenerationFailed, appErr.Code)
	assert.Equal(t, "panic", appErr.Detail)
}

func TestGeneratorBackendName(t *testing.T) {
	g := NewGenerator(&stubBackend{})
	assert.Equal(t, "stub", g.Backend())
}
