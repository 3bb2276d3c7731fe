package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mickyas16/postpulse/internal/handler/http/dto"
	"github.com/mickyas16/postpulse/internal/usecase"
)

// PostHandlerInterface defines the methods for the post handler to allow
// interface-based dependency injection (for testing/mocking)
type PostHandlerInterface interface {
	GetPostsHandler(*gin.Context)
	GetPostDetailHandler(*gin.Context)
	GetPostHeadingsHandler(*gin.Context)
	IncrementPostClickHandler(*gin.Context)
}

// Ensure PostHandler implements PostHandlerInterface
var _ PostHandlerInterface = (*PostHandler)(nil)

type PostHandler struct {
	postUsecase usecase.IPostUseCase
}

func NewPostHandler(postUsecase usecase.IPostUseCase) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
	}
}

// GetPostsHandler serves the published post list, paginated after the cache.
func (h *PostHandler) GetPostsHandler(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		ErrorHandler(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 {
		ErrorHandler(c, http.StatusBadRequest, "Invalid page size")
		return
	}

	posts, err := h.postUsecase.GetPosts(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	total := len(posts)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	var postResponses []dto.PostSummaryResponse
	for _, post := range posts[start:end] {
		postResponses = append(postResponses, dto.ToPostSummaryResponse(post))
	}

	SuccessHandler(c, http.StatusOK, dto.PaginatedPostResponse{
		Posts:       postResponses,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages,
	})
}

// GetPostDetailHandler serves a single post by slug. The client IP is passed
// down as the viewer identity for view dedup.
func (h *PostHandler) GetPostDetailHandler(c *gin.Context) {
	slug := c.Query("slug")
	ipAddress := c.ClientIP()

	post, err := h.postUsecase.GetPostDetail(c.Request.Context(), slug, ipAddress)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ToPostResponse(post))
}

// GetPostHeadingsHandler serves the section headings of a post.
func (h *PostHandler) GetPostHeadingsHandler(c *gin.Context) {
	slug := c.Query("slug")

	headings, err := h.postUsecase.GetPostHeadings(c.Request.Context(), slug)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	headingResponses := make([]dto.HeadingResponse, 0, len(headings))
	for _, heading := range headings {
		headingResponses = append(headingResponses, dto.ToHeadingResponse(heading))
	}

	SuccessHandler(c, http.StatusOK, headingResponses)
}

// IncrementPostClickHandler increments the click counter of a post by slug.
func (h *PostHandler) IncrementPostClickHandler(c *gin.Context) {
	var req dto.IncrementClickRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	clicks, err := h.postUsecase.IncrementPostClick(c.Request.Context(), req.Slug)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ClickResponse{
		Message: "Click incremented successfully",
		Clicks:  clicks,
	})
}
