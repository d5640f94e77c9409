package dto

type BlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
