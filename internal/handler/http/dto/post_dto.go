package dto

import (
	"time"

	"github.com/mickyas16/postpulse/internal/domain/entity"
)

// Request DTOs for Post Handlers

// IncrementClickRequest defines the structure for the click-increment endpoint.
type IncrementClickRequest struct {
	Slug string `json:"slug" binding:"required"`
}

// Response DTOs

// PostSummaryResponse defines the JSON shape of a post in list responses.
type PostSummaryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostResponse defines the JSON shape of a single post detail.
type PostResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Thumbnail   string    `json:"thumbnail"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HeadingResponse defines the JSON shape of a section heading.
type HeadingResponse struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Level int    `json:"level"`
	Order int    `json:"order"`
}

// PaginatedPostResponse defines the structure for a paginated list of posts.
type PaginatedPostResponse struct {
	Posts       []PostSummaryResponse `json:"posts"`
	TotalCount  int                   `json:"total_count"`
	CurrentPage int                   `json:"current_page"`
	TotalPages  int                   `json:"total_pages"`
}

// ClickResponse is the response for the click-increment endpoint.
type ClickResponse struct {
	Message string `json:"message"`
	Clicks  int64  `json:"clicks"`
}

// DTO Mappers

func ToPostSummaryResponse(post entity.PostSummary) PostSummaryResponse {
	return PostSummaryResponse{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		Thumbnail:   post.Thumbnail,
		Slug:        post.Slug,
		Category:    post.Category,
		CreatedAt:   post.CreatedAt,
	}
}

func ToPostResponse(post *entity.Post) PostResponse {
	return PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		Content:     post.Content,
		Thumbnail:   post.Thumbnail,
		Slug:        post.Slug,
		Category:    post.Category,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func ToHeadingResponse(heading entity.Heading) HeadingResponse {
	return HeadingResponse{
		Title: heading.Title,
		Slug:  heading.Slug,
		Level: heading.Level,
		Order: heading.Order,
	}
}
