package repository

import (
	"strconv"
	"strings"

	"deck-assist/internal/models"
)

// The source document is hand-edited JSON and arrives loosely typed:
// strings may be missing, blank, or the wrong kind of value entirely.
// These helpers coerce every loose field into a safe value so nothing
// downstream has to look at raw dynamic data. Malformed input degrades
// to the fallback, never to an error.

// toTrimmedString returns the trimmed string form of value, or fallback
// when value is absent, not a string, or blank after trimming.
func toTrimmedString(value any, fallback string) string {
	if s, ok := value.(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

// toTrimmedStringSlice keeps only the non-blank string entries of a
// loose array, trimmed, in their original order.
func toTrimmedStringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s := toTrimmedString(item, ""); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// toSourceDocuments keeps only well-formed source entries: a non-blank
// title is required, the url is optional. Malformed entries are skipped.
func toSourceDocuments(value any) []models.SourceDocument {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	result := make([]models.SourceDocument, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title := toTrimmedString(entry["title"], "")
		if title == "" {
			continue
		}
		url, _ := entry["url"].(string)
		result = append(result, models.SourceDocument{Title: title, URL: url})
	}
	return result
}

// toDisplayString renders a loose scalar (string or number) as display
// text; non-scalar values degrade to the fallback.
func toDisplayString(value any, fallback string) string {
	switch v := value.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fallback
}
