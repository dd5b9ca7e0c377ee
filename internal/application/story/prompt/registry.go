// Package prompt 提供故事生成的提示词模板
package prompt

import (
	"context"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/moayyadfaris/jiraiya/internal/domain/entity"
)

//go:embed templates/*.txt
var templatesFS embed.FS

// ID 提示词模板标识
type ID string

const (
	// StorytellerV1 标准讲故事提示词
	StorytellerV1 ID = "storyteller_v1"
)

// min_length 缺省时嵌入提示词的占位文本
const minLengthNotSpecified = "Not specified"

// Registry 提示词模板注册表，模板按需加载并缓存
type Registry struct {
	mu    sync.RWMutex
	cache map[ID]einoprompt.ChatTemplate
}

// NewRegistry 创建提示词注册表
func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[ID]einoprompt.ChatTemplate),
	}
}

// ChatTemplate 返回指定模板，首次访问时从内嵌文件加载
func (r *Registry) ChatTemplate(id ID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	systemFile, userFile, err := resolvePromptFiles(id)
	if err != nil {
		return nil, err
	}
	system, err := readEmbeddedText(systemFile)
	if err != nil {
		return nil, err
	}
	user, err := readEmbeddedText(userFile)
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)
	r.cache[id] = tpl
	return tpl, nil
}

// Render 用请求参数渲染模板为消息序列。纯函数，不访问网络。
func (r *Registry) Render(ctx context.Context, id ID, req *entity.StoryRequest) ([]*schema.Message, error) {
	if req == nil {
		return nil, fmt.Errorf("story request is nil")
	}
	tpl, err := r.ChatTemplate(id)
	if err != nil {
		return nil, err
	}
	return tpl.Format(ctx, Vars(req))
}

// Vars 将规范化请求映射为模板变量
func Vars(req *entity.StoryRequest) map[string]any {
	minLength := minLengthNotSpecified
	if req.MinLength != nil {
		minLength = strconv.Itoa(*req.MinLength)
	}
	return map[string]any{
		"keywords":   strings.Join(req.Keywords, ", "),
		"genre":      req.Genre,
		"tone":       req.Tone,
		"max_length": req.MaxLength,
		"min_length": minLength,
	}
}

// resolvePromptFiles 解析模板对应的内嵌文件路径
func resolvePromptFiles(id ID) (systemFile string, userFile string, err error) {
	switch id {
	case StorytellerV1:
		return "templates/storyteller_system.txt", "templates/storyteller_user.txt", nil
	default:
		return "", "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

// readEmbeddedText 读取内嵌模板文本
func readEmbeddedText(path string) (string, error) {
	data, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt template %s: %w", path, err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
