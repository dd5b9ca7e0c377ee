// Package dto 提供 HTTP 层数据传输对象
package dto

// GenerateStoryRequest 故事生成请求体。
// 字段采用宽松绑定，业务校验在领域层完成以便枚举全部违规。
type GenerateStoryRequest struct {
	Keywords  []string `json:"keywords"`
	Genre     string   `json:"genre"`
	Tone      *string  `json:"tone"`
	MaxLength *int     `json:"max_length"`
	MinLength *int     `json:"min_length"`
}

// GenerateStoryResponse 故事生成成功响应
type GenerateStoryResponse struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	KeywordsUsed []string `json:"keywords_used"`
}
