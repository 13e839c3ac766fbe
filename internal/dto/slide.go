package dto

type SlideSummary struct {
	ID     string `json:"id"`
	Layout string `json:"layout"`
	Title  string `json:"title"`
}

type SlideListResponse struct {
	Slides []SlideSummary `json:"slides"`
}

type SlideMarkdownResponse struct {
	ID       string `json:"id"`
	Markdown string `json:"markdown"`
}
