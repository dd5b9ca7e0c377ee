package story

import "strings"

// 无法从模型输出中解析出标题时的兜底标题
const fallbackTitle = "Untitled Story"

// ParseStory 将模型原始输出解析为标题与正文。
// 约定：首行为标题（允许带 Title: 前缀），其余为正文。
// 解析失败时降级为兜底标题 + 全文正文，绝不报错。
func ParseStory(raw string) (title string, content string) {
	trimmed := strings.TrimSpace(raw)

	before, after, found := strings.Cut(trimmed, "\n")
	if found {
		title = strings.TrimSpace(stripTitleMarker(before))
		content = strings.TrimSpace(after)
		if title != "" && content != "" {
			return title, content
		}
	}
	return fallbackTitle, trimmed
}

// stripTitleMarker 去掉首行的字面 Title: 标记（仅两种大小写写法）
func stripTitleMarker(line string) string {
	line = strings.TrimSpace(line)
	if rest, ok := strings.CutPrefix(line, "Title:"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(line, "title:"); ok {
		return rest
	}
	return line
}
