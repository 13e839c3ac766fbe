package dto

// GatewayRequest is the single request shape of the inference gateway
// endpoint. Mode "embedding" uses Input; everything else is a chat
// completion over Question/History/SystemPrompt/ContextSections. The
// camelCase keys are part of the wire contract.
type GatewayRequest struct {
	Mode            string           `json:"mode,omitempty"`
	Input           []string         `json:"input,omitempty"`
	Question        string           `json:"question,omitempty"`
	History         []HistoryMessage `json:"history,omitempty"`
	SystemPrompt    string           `json:"systemPrompt,omitempty"`
	ContextSections string           `json:"contextSections,omitempty"`
}

type EmbeddingData struct {
	Embedding []float64 `json:"embedding"`
}

type EmbeddingResponse struct {
	Data []EmbeddingData `json:"data"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
	Usage  *Usage `json:"usage,omitempty"`
}
