package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/soulbrew/blog-services/internal/blog"
	"github.com/soulbrew/blog-services/internal/blog/service"
)

// PostsHandler serves the public read side of the blog: listings, single
// posts, taxonomy aggregates, related posts and search.
type PostsHandler struct {
	svc *service.Service
}

func NewPostsHandler(svc *service.Service) *PostsHandler {
	return &PostsHandler{svc: svc}
}

// Register attaches the public routes under /api
func (h *PostsHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", h.ListPosts)
	rg.GET("/posts/featured", h.FeaturedPost)
	rg.GET("/posts/:slug", h.GetPost)
	rg.GET("/posts/:slug/related", h.RelatedPosts)
	rg.GET("/categories", h.ListCategories)
	rg.GET("/categories/:name/posts", h.PostsByCategory)
	rg.GET("/tags", h.ListTags)
	rg.GET("/search", h.Search)
}

// ListPosts returns all posts newest first. An optional ?category= filter
// narrows the listing.
func (h *PostsHandler) ListPosts(c *gin.Context) {
	if cat := c.Query("category"); cat != "" {
		posts, err := h.svc.GetPostsByCategory(c.Request.Context(), cat)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
		return
	}
	posts, err := h.svc.GetAllPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// FeaturedPost returns the most recent post
func (h *PostsHandler) FeaturedPost(c *gin.Context) {
	p, err := h.svc.GetFeaturedPost(c.Request.Context())
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no posts"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load featured post"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetPost returns a single post by slug
func (h *PostsHandler) GetPost(c *gin.Context) {
	slug := c.Param("slug")
	p, err := h.svc.GetPostBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// RelatedPosts returns posts sharing categories with the given one, best
// overlap first. ?limit= caps the list (default 3).
func (h *PostsHandler) RelatedPosts(c *gin.Context) {
	slug := c.Param("slug")
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	posts, err := h.svc.GetRelatedPosts(c.Request.Context(), slug, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load related posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListCategories returns the sorted set of known category names
func (h *PostsHandler) ListCategories(c *gin.Context) {
	cats, err := h.svc.GetAllCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, cats)
}

// PostsByCategory returns all posts carrying the named category
func (h *PostsHandler) PostsByCategory(c *gin.Context) {
	posts, err := h.svc.GetPostsByCategory(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListTags returns the sorted set of known tags
func (h *PostsHandler) ListTags(c *gin.Context) {
	tags, err := h.svc.GetAllTags(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tags"})
		return
	}
	c.JSON(http.StatusOK, tags)
}

// Search runs a weighted full-text query over the corpus. A blank query
// returns an empty list without touching the index.
func (h *PostsHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	posts, err := h.svc.SearchPosts(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, posts)
}
