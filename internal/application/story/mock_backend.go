package story

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"

	"github.com/moayyadfaris/jiraiya/internal/domain/entity"
	"github.com/moayyadfaris/jiraiya/pkg/logger"
)

// mockContentTemplate 固定正文模板，占位依次为 genre、首个关键词、tone、首个关键词、min_length
const mockContentTemplate = "Once upon a time in a %s world, there was a %s. " +
	"It was a %s day. The %s decided to go on an adventure. " +
	"Min length requested was %s. And they lived happily ever after."

// MockBackend 无外部依赖的确定性故事后端，未配置 LLM 时使用。
// 对任何已校验的请求都不会失败。
type MockBackend struct{}

// NewMockBackend 创建 Mock 后端
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name 返回后端名称
func (b *MockBackend) Name() string {
	return BackendMock
}

// GenerateStory 从模板合成故事
func (b *MockBackend) GenerateStory(ctx context.Context, req *entity.StoryRequest) (*entity.StoryResult, error) {
	firstKeyword := ""
	if len(req.Keywords) > 0 {
		firstKeyword = req.Keywords[0]
	}

	titles := [2]string{
		"The Tale of the " + capitalize(req.Genre),
		"Journey to the " + capitalize(firstKeyword),
	}
	title := titles[rand.IntN(len(titles))]

	minLength := "not specified"
	if req.MinLength != nil {
		minLength = strconv.Itoa(*req.MinLength)
	}
	content := fmt.Sprintf(mockContentTemplate, req.Genre, firstKeyword, req.Tone, firstKeyword, minLength)

	logger.Info(ctx, "mock story generated", "title", title, "genre", req.Genre)

	return &entity.StoryResult{
		Title:        title,
		Content:      content,
		KeywordsUsed: req.Keywords,
	}, nil
}

// capitalize 首字母大写、其余小写
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
