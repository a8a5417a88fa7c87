package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/soulbrew/blog-services/internal/blog"
	"github.com/soulbrew/blog-services/internal/blog/repository"
	"github.com/soulbrew/blog-services/internal/blog/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.New(repository.NewFixtureRepo())
	r := gin.New()
	NewPostsHandler(svc).Register(r.Group("/api"))
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func TestListPosts_NewestFirst(t *testing.T) {
	r := newPostsRouter(t)
	var posts []blog.Post
	w := getJSON(t, r, "/api/posts", &posts)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, posts, 6)
	assert.Equal(t, "mindful-consumption-art-of-buying-less", posts[0].Slug)
}

func TestListPosts_CategoryFilter(t *testing.T) {
	r := newPostsRouter(t)
	var posts []blog.Post
	w := getJSON(t, r, "/api/posts?category=travel", &posts)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, posts, 1)
	assert.Equal(t, "wander-wisely-sustainable-travel", posts[0].Slug)
}

func TestFeaturedPost(t *testing.T) {
	r := newPostsRouter(t)
	var p blog.Post
	w := getJSON(t, r, "/api/posts/featured", &p)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mindful-consumption-art-of-buying-less", p.Slug)
}

func TestGetPost_BySlug(t *testing.T) {
	r := newPostsRouter(t)
	var p blog.Post
	w := getJSON(t, r, "/api/posts/wander-wisely-sustainable-travel", &p)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Wander Wisely: Sustainable Travel Tips for the Minimalist Explorer", p.Title)
}

func TestGetPost_UnknownSlug(t *testing.T) {
	r := newPostsRouter(t)
	w := getJSON(t, r, "/api/posts/no-such-post", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRelatedPosts_DefaultLimit(t *testing.T) {
	r := newPostsRouter(t)
	var posts []blog.Post
	w := getJSON(t, r, "/api/posts/wander-wisely-sustainable-travel/related", &posts)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, posts, 3)
	for _, p := range posts {
		assert.NotEqual(t, "wander-wisely-sustainable-travel", p.Slug)
	}
}

func TestRelatedPosts_InvalidLimit(t *testing.T) {
	r := newPostsRouter(t)
	w := getJSON(t, r, "/api/posts/wander-wisely-sustainable-travel/related?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRelatedPosts_UnknownSlugEmpty(t *testing.T) {
	r := newPostsRouter(t)
	var posts []blog.Post
	w := getJSON(t, r, "/api/posts/no-such-post/related", &posts)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, posts)
}

func TestListCategories_Sorted(t *testing.T) {
	r := newPostsRouter(t)
	var cats []string
	w := getJSON(t, r, "/api/categories", &cats)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Design", "Fashion", "Lifestyle", "Minimalism", "Sustainability", "Technology", "Travel"}, cats)
}

func TestPostsByCategory(t *testing.T) {
	r := newPostsRouter(t)
	var posts []blog.Post
	w := getJSON(t, r, "/api/categories/Minimalism/posts", &posts)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, posts, 6)
}

func TestListTags(t *testing.T) {
	r := newPostsRouter(t)
	var tags []string
	w := getJSON(t, r, "/api/tags", &tags)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, tags)
}

func TestSearch_EmptyQuery(t *testing.T) {
	r := newPostsRouter(t)
	var posts []blog.Post
	w := getJSON(t, r, "/api/search?q=", &posts)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, posts)
}

func TestSearch_TitleMatchRanksFirst(t *testing.T) {
	r := newPostsRouter(t)
	var posts []blog.Post
	w := getJSON(t, r, "/api/search?q=travel", &posts)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, posts)
	assert.Equal(t, "wander-wisely-sustainable-travel", posts[0].Slug)
}
