package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestNewStoryRequestNormalizesKeywords(t *testing.T) {
	req, verr := NewStoryRequest([]string{" ninja ", "ninja", "", "  ", "dragon"}, "fantasy", nil, nil, nil)

	require.Nil(t, verr)
	assert.Equal(t, []string{"ninja", "dragon"}, req.Keywords)
	for _, k := range req.Keywords {
		assert.NotEmpty(t, k)
		assert.Equal(t, strings.TrimSpace(k), k)
	}
}

func TestNewStoryRequestRejectsEmptyKeywords(t *testing.T) {
	cases := [][]string{
		{},
		{""},
		{"   ", "\t"},
	}
	for _, keywords := range cases {
		_, verr := NewStoryRequest(keywords, "fantasy", nil, nil, nil)
		require.NotNil(t, verr)
		assert.Contains(t, verr.Fields(), "keywords")
	}
}

func TestNewStoryRequestRejectsTooManyKeywords(t *testing.T) {
	keywords := make([]string, 11)
	for i := range keywords {
		keywords[i] = strings.Repeat("k", i+1)
	}

	_, verr := NewStoryRequest(keywords, "fantasy", nil, nil, nil)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields(), "keywords")
}

func TestNewStoryRequestToneNormalization(t *testing.T) {
	for _, spelling := range []string{"HUMOROUS", "Humorous", "humorous", " humorous "} {
		req, verr := NewStoryRequest([]string{"ninja"}, "fantasy", strPtr(spelling), nil, nil)
		require.Nil(t, verr, "spelling %q", spelling)
		assert.Equal(t, "humorous", req.Tone)
	}
}

func TestNewStoryRequestToneDefaultsToNeutral(t *testing.T) {
	req, verr := NewStoryRequest([]string{"ninja"}, "fantasy", nil, nil, nil)
	require.Nil(t, verr)
	assert.Equal(t, "neutral", req.Tone)
}

func TestNewStoryRequestRejectsUnknownTone(t *testing.T) {
	// 显式传入的空串不算缺省，同样走枚举校验
	for _, tone := range []string{"sarcastic", "", "   "} {
		_, verr := NewStoryRequest([]string{"ninja"}, "fantasy", strPtr(tone), nil, nil)
		require.NotNil(t, verr, "tone %q", tone)
		assert.Contains(t, verr.Fields(), "tone")
	}
}

func TestNewStoryRequestGenreBounds(t *testing.T) {
	_, verr := NewStoryRequest([]string{"ninja"}, "ab", nil, nil, nil)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields(), "genre")

	_, verr = NewStoryRequest([]string{"ninja"}, strings.Repeat("g", 51), nil, nil, nil)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields(), "genre")
}

func TestNewStoryRequestLengthBounds(t *testing.T) {
	req, verr := NewStoryRequest([]string{"ninja"}, "fantasy", nil, nil, nil)
	require.Nil(t, verr)
	assert.Equal(t, DefaultMaxLength, req.MaxLength)

	_, verr = NewStoryRequest([]string{"ninja"}, "fantasy", nil, intPtr(5000), nil)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields(), "max_length")

	_, verr = NewStoryRequest([]string{"ninja"}, "fantasy", nil, intPtr(99), nil)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields(), "max_length")

	_, verr = NewStoryRequest([]string{"ninja"}, "fantasy", nil, nil, intPtr(49))
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields(), "min_length")

	_, verr = NewStoryRequest([]string{"ninja"}, "fantasy", nil, nil, intPtr(1001))
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields(), "min_length")
}

func TestNewStoryRequestMinGreaterThanMax(t *testing.T) {
	_, verr := NewStoryRequest([]string{"ninja"}, "fantasy", nil, intPtr(200), intPtr(300))
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields(), "min_length")

	req, verr := NewStoryRequest([]string{"ninja"}, "fantasy", nil, intPtr(500), intPtr(300))
	require.Nil(t, verr)
	require.NotNil(t, req.MinLength)
	assert.Equal(t, 300, *req.MinLength)
}

func TestNewStoryRequestEnumeratesAllViolations(t *testing.T) {
	_, verr := NewStoryRequest([]string{"  "}, "x", strPtr("grim"), intPtr(50), intPtr(2000))

	require.NotNil(t, verr)
	fields := verr.Fields()
	assert.Contains(t, fields, "keywords")
	assert.Contains(t, fields, "genre")
	assert.Contains(t, fields, "tone")
	assert.Contains(t, fields, "max_length")
	assert.Contains(t, fields, "min_length")
	assert.Contains(t, verr.Error(), "validation failed")
}
