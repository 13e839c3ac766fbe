package dto

type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AskRequest struct {
	Question string           `json:"question"`
	SlideID  string           `json:"slide_id"`
	History  []HistoryMessage `json:"history"`
}

type CitationResponse struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

type AskResponse struct {
	Answer    string             `json:"answer"`
	Citations []CitationResponse `json:"citations"`
}
