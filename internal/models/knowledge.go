package models

// KnowledgeChunk is a discrete, citable unit of flattened assessment
// text. Chunk ids are stable across rebuilds for the same input so
// citations stay meaningful within a session.
type KnowledgeChunk struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	// HistoryRetainLimit bounds the conversation window kept on behalf
	// of the caller; older turns are silently dropped.
	HistoryRetainLimit = 12
	// HistorySendLimit bounds the window forwarded with each completion
	// request.
	HistorySendLimit = 8
)

type AssistantHistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AssistantAnswer is the per-query result: the generated answer plus the
// retrieved chunks it was grounded on, in retrieval order.
type AssistantAnswer struct {
	Answer    string           `json:"answer"`
	Citations []KnowledgeChunk `json:"citations"`
}

// TrimHistory returns the most recent limit messages, preserving order.
func TrimHistory(history []AssistantHistoryMessage, limit int) []AssistantHistoryMessage {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
