// Package entity 提供核心领域对象
package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// 请求字段约束
const (
	MaxKeywords = 10

	MinGenreLen = 3
	MaxGenreLen = 50

	DefaultTone = "neutral"

	DefaultMaxLength = 500
	MaxLengthFloor   = 100
	MaxLengthCeil    = 2000
	MinLengthFloor   = 50
	MinLengthCeil    = 1000
)

// ValidTones 支持的故事基调（固定枚举，小写）
var ValidTones = []string{"neutral", "humorous", "dark", "epic", "romantic", "mysterious", "dramatic"}

var toneSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ValidTones))
	for _, t := range ValidTones {
		m[t] = struct{}{}
	}
	return m
}()

// StoryRequest 规范化后的故事生成请求（构造后不可变）
type StoryRequest struct {
	Keywords  []string
	Genre     string
	Tone      string
	MaxLength int
	MinLength *int
}

// StoryResult 故事生成结果
type StoryResult struct {
	Title        string
	Content      string
	KeywordsUsed []string
}

// FieldViolation 单个字段的校验违规
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 校验错误，枚举全部违规而非仅首个
type ValidationError struct {
	Violations []FieldViolation
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields 返回违规字段名列表
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// NewStoryRequest 校验并规范化原始字段，失败时返回包含全部违规的 ValidationError。
// 规范化内容：关键词去空白/去重，基调小写化并应用默认值，长度应用默认值。
func NewStoryRequest(keywords []string, genre string, tone *string, maxLength, minLength *int) (*StoryRequest, *ValidationError) {
	var violations []FieldViolation

	// 1. 关键词：去空白、丢弃空项、按首次出现去重
	cleaned := normalizeKeywords(keywords)
	if len(cleaned) == 0 {
		violations = append(violations, FieldViolation{
			Field:   "keywords",
			Message: "at least one non-empty keyword is required",
		})
	} else if len(cleaned) > MaxKeywords {
		violations = append(violations, FieldViolation{
			Field:   "keywords",
			Message: fmt.Sprintf("at most %d keywords are allowed", MaxKeywords),
		})
	}

	genre = strings.TrimSpace(genre)
	if n := utf8.RuneCountInString(genre); n < MinGenreLen || n > MaxGenreLen {
		violations = append(violations, FieldViolation{
			Field:   "genre",
			Message: fmt.Sprintf("genre must be between %d and %d characters", MinGenreLen, MaxGenreLen),
		})
	}

	// 2. 基调：小写化，必须在固定枚举内。显式传入的空串同样不在枚举内，拒绝。
	normalizedTone := DefaultTone
	if tone != nil {
		normalizedTone = strings.ToLower(strings.TrimSpace(*tone))
		if _, ok := toneSet[normalizedTone]; !ok {
			violations = append(violations, FieldViolation{
				Field:   "tone",
				Message: "tone must be one of: " + strings.Join(ValidTones, ", "),
			})
		}
	}

	// 3. 长度边界
	normalizedMax := DefaultMaxLength
	if maxLength != nil {
		normalizedMax = *maxLength
		if normalizedMax < MaxLengthFloor || normalizedMax > MaxLengthCeil {
			violations = append(violations, FieldViolation{
				Field:   "max_length",
				Message: fmt.Sprintf("max_length must be between %d and %d words", MaxLengthFloor, MaxLengthCeil),
			})
		}
	}
	if minLength != nil {
		if *minLength < MinLengthFloor || *minLength > MinLengthCeil {
			violations = append(violations, FieldViolation{
				Field:   "min_length",
				Message: fmt.Sprintf("min_length must be between %d and %d words", MinLengthFloor, MinLengthCeil),
			})
		}

		// 4. 跨字段约束
		if *minLength > normalizedMax {
			violations = append(violations, FieldViolation{
				Field:   "min_length",
				Message: "min_length cannot be greater than max_length",
			})
		}
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	return &StoryRequest{
		Keywords:  cleaned,
		Genre:     genre,
		Tone:      normalizedTone,
		MaxLength: normalizedMax,
		MinLength: minLength,
	}, nil
}

// normalizeKeywords 去空白并按首次出现顺序去重
func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
