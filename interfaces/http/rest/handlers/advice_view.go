package handlers

import (
	"time"

	"advicehub-backend/domain/advice"
)

// AdviceResponse is the wire shape of an advice record
type AdviceResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Author        string    `json:"author"`
	Categories    []string  `json:"categories"`
	Likes         int       `json:"likes"`
	LikedBy       []string  `json:"likedBy"`
	PublishedDate time.Time `json:"publishedDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewAdviceResponse projects a record to its wire shape
func NewAdviceResponse(a *advice.Advice) AdviceResponse {
	categories := make([]string, len(a.Categories))
	for i, c := range a.Categories {
		categories[i] = string(c)
	}
	likedBy := a.LikedBy
	if likedBy == nil {
		likedBy = []string{}
	}

	return AdviceResponse{
		ID:            a.ID,
		Title:         a.Title,
		Content:       a.Content,
		Author:        a.AuthorID,
		Categories:    categories,
		Likes:         a.Likes,
		LikedBy:       likedBy,
		PublishedDate: a.PublishedDate,
		CreatedAt:     a.CreatedAt,
	}
}

// NewAdviceListResponse projects a slice of records, never returning nil
// so an empty listing serializes as []
func NewAdviceListResponse(records []*advice.Advice) []AdviceResponse {
	out := make([]AdviceResponse, len(records))
	for i, a := range records {
		out[i] = NewAdviceResponse(a)
	}
	return out
}
