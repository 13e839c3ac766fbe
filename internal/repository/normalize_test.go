package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToTrimmedString(t *testing.T) {
	assert.Equal(t, "hello", toTrimmedString("  hello  ", "fb"))
	assert.Equal(t, "fb", toTrimmedString("   ", "fb"))
	assert.Equal(t, "fb", toTrimmedString(nil, "fb"))
	assert.Equal(t, "fb", toTrimmedString(42.0, "fb"))
}

func TestToTrimmedStringSlice(t *testing.T) {
	input := []any{" a ", "", nil, 7.0, "b"}
	assert.Equal(t, []string{"a", "b"}, toTrimmedStringSlice(input))
	assert.Nil(t, toTrimmedStringSlice("not a slice"))
	assert.Nil(t, toTrimmedStringSlice(nil))
}

func TestToSourceDocumentsSkipsMalformedEntries(t *testing.T) {
	input := []any{
		map[string]any{"title": "DORA Metrics", "url": "https://example.com"},
		map[string]any{"title": "  "},
		map[string]any{"url": "https://no-title.example.com"},
		"not an object",
		map[string]any{"title": "No URL"},
	}

	docs := toSourceDocuments(input)
	assert.Len(t, docs, 2)
	assert.Equal(t, "DORA Metrics", docs[0].Title)
	assert.Equal(t, "https://example.com", docs[0].URL)
	assert.Equal(t, "No URL", docs[1].Title)
	assert.Empty(t, docs[1].URL)
}

func TestToDisplayString(t *testing.T) {
	assert.Equal(t, "12x per day", toDisplayString("12x per day", ""))
	assert.Equal(t, "4.5", toDisplayString(4.5, ""))
	assert.Equal(t, "15", toDisplayString(15.0, ""))
	assert.Equal(t, "fb", toDisplayString(nil, "fb"))
	assert.Equal(t, "fb", toDisplayString([]any{"x"}, "fb"))
}
