package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	handler "github.com/mickyas16/postpulse/internal/handler/http"
	"github.com/mickyas16/postpulse/internal/handler/http/dto"
	"github.com/mickyas16/postpulse/internal/handler/http/middleware"
	"github.com/mickyas16/postpulse/internal/handler/http/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(h handler.PostHandlerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.GET("/posts", h.GetPostsHandler)
	r.GET("/posts/detail", h.GetPostDetailHandler)
	r.GET("/posts/headings", h.GetPostHeadingsHandler)
	r.POST("/posts/increment-click", h.IncrementPostClickHandler)
	return r
}

func TestGetPosts(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.PaginatedPostResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalCount)
	assert.Len(t, resp.Posts, 1)
	assert.Equal(t, "hello-world", resp.Posts[0].Slug)
}

func TestGetPosts_Empty(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	mockUsecase.NoPosts = true
	h := handler.NewPostHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPosts_InvalidPage(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?page=zero", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPosts_ServiceFailure(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	mockUsecase.ShouldFailGetPosts = true
	h := handler.NewPostHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetPostDetail(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/detail?slug=hello-world", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.PostResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hello-world", resp.Slug)
	assert.Equal(t, "Hello World", resp.Title)
}

func TestGetPostDetail_MissingSlug(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/detail", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPostDetail_NotFound(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/detail?slug=missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPostHeadings(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/headings?slug=hello-world", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []dto.HeadingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "Introduction", resp[0].Title)
}

func TestIncrementPostClick(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupRouter(h)

	body, _ := json.Marshal(dto.IncrementClickRequest{Slug: "hello-world"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/increment-click", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ClickResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Click incremented successfully", resp.Message)
	assert.Equal(t, int64(2), resp.Clicks)
}

func TestIncrementPostClick_MissingSlug(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/increment-click", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIncrementPostClick_UnknownSlug(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupRouter(h)

	body, _ := json.Marshal(dto.IncrementClickRequest{Slug: "missing"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/increment-click", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIKeyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.Use(middleware.APIKeyAuth([]string{"secret-key"}))
	r.GET("/posts", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/posts", nil)
	req.Header.Set("X-API-Key", "secret-key")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
