package entity

import "time"

// PostStatus represents the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is the full detail payload for a single post.
type Post struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Content     string     `json:"content" bson:"content"`
	Thumbnail   string     `json:"thumbnail" bson:"thumbnail"`
	Slug        string     `json:"slug" bson:"slug"`
	Category    string     `json:"category" bson:"category"`
	Status      PostStatus `json:"status" bson:"status"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// Summary returns the lightweight projection of the post used in listings.
func (p *Post) Summary() PostSummary {
	return PostSummary{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Thumbnail:   p.Thumbnail,
		Slug:        p.Slug,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
	}
}

// PostSummary is the projection of a post served in list responses.
type PostSummary struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Thumbnail   string    `json:"thumbnail" bson:"thumbnail"`
	Slug        string    `json:"slug" bson:"slug"`
	Category    string    `json:"category" bson:"category"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Heading is a section heading extracted from a post's content.
type Heading struct {
	ID       string `json:"id" bson:"_id"`
	PostSlug string `json:"post_slug" bson:"post_slug"`
	Title    string `json:"title" bson:"title"`
	Slug     string `json:"slug" bson:"slug"`
	Level    int    `json:"level" bson:"level"`
	Order    int    `json:"order" bson:"order"`
}

// PostAnalytics is the durable per-post engagement record.
type PostAnalytics struct {
	ID          string    `json:"id" bson:"_id"`
	PostID      string    `json:"post_id" bson:"post_id"`
	Impressions int64     `json:"impressions" bson:"impressions"`
	Views       int64     `json:"views" bson:"views"`
	Clicks      int64     `json:"clicks" bson:"clicks"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
