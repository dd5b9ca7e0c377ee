package prompt

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moayyadfaris/jiraiya/internal/domain/entity"
)

func mustRequest(t *testing.T, minLength *int) *entity.StoryRequest {
	t.Helper()
	req, verr := entity.NewStoryRequest([]string{"ninja", "dragon"}, "fantasy", nil, nil, minLength)
	require.Nil(t, verr)
	return req
}

func TestRenderStorytellerPrompt(t *testing.T) {
	r := NewRegistry()
	msgs, err := r.Render(context.Background(), StorytellerV1, mustRequest(t, nil))

	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "master storyteller")

	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Keywords: ninja, dragon")
	assert.Contains(t, msgs[1].Content, "Genre: fantasy")
	assert.Contains(t, msgs[1].Content, "Tone: neutral")
	assert.Contains(t, msgs[1].Content, "approx 500 words")
	assert.Contains(t, msgs[1].Content, "Minimum Length: Not specified")
}

func TestRenderStorytellerPromptWithMinLength(t *testing.T) {
	minLength := 300
	r := NewRegistry()
	msgs, err := r.Render(context.Background(), StorytellerV1, mustRequest(t, &minLength))

	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Content, "Minimum Length: 300 words")
}

func TestRenderUnknownPrompt(t *testing.T) {
	r := NewRegistry()
	_, err := r.Render(context.Background(), ID("nope"), mustRequest(t, nil))
	require.Error(t, err)
}
