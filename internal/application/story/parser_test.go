package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStoryTitleAndContent(t *testing.T) {
	title, content := ParseStory("The Dragon Gate\nOnce upon a time there was a ninja.")
	assert.Equal(t, "The Dragon Gate", title)
	assert.Equal(t, "Once upon a time there was a ninja.", content)
}

func TestParseStoryStripsTitleMarker(t *testing.T) {
	title, content := ParseStory("Title: The Dragon Gate\nOnce upon a time.")
	assert.Equal(t, "The Dragon Gate", title)
	assert.Equal(t, "Once upon a time.", content)

	title, _ = ParseStory("title: lowercase marker\nBody text.")
	assert.Equal(t, "lowercase marker", title)
}

func TestParseStoryKeepsMarkerInsideTitle(t *testing.T) {
	// 仅去除行首标记，标题中间的 Title: 保留
	title, _ := ParseStory("A Title: Of Sorts\nBody text.")
	assert.Equal(t, "A Title: Of Sorts", title)
}

func TestParseStorySingleLineFallsBack(t *testing.T) {
	title, content := ParseStory("Just one line of story.")
	assert.Equal(t, "Untitled Story", title)
	assert.Equal(t, "Just one line of story.", content)
}

func TestParseStoryEmptyTitleFallsBack(t *testing.T) {
	title, content := ParseStory("Title:\nBody only.")
	assert.Equal(t, "Untitled Story", title)
	assert.Equal(t, "Title:\nBody only.", content)
}

func TestParseStoryTrimsWhitespace(t *testing.T) {
	title, content := ParseStory("\n\n  The Quiet Forest  \n  It was dark.  \n\n")
	assert.Equal(t, "The Quiet Forest", title)
	assert.Equal(t, "It was dark.", content)
}

func TestParseStoryMultilineContent(t *testing.T) {
	title, content := ParseStory("Two Rivers\nFirst paragraph.\n\nSecond paragraph.")
	assert.Equal(t, "Two Rivers", title)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", content)
}
