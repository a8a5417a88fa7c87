package handlers

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/soulbrew/blog-services/internal/blog"
	"github.com/soulbrew/blog-services/internal/blog/service"
	"github.com/soulbrew/blog-services/internal/media"
	"github.com/soulbrew/blog-services/internal/storage"
	"github.com/soulbrew/blog-services/pkg/logger"
)

// maxImageUploadBytes caps post images at 5MB, matching the editor UI.
const maxImageUploadBytes = 5 << 20

// Uploader is the minimal surface the media endpoint needs from object storage
type Uploader interface {
	StartUpload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) *storage.UploadTask
}

// AdminHandler serves the authenticated write side: post and category
// mutations plus media uploads.
type AdminHandler struct {
	svc     *service.Service
	uploads Uploader
	media   *media.Store
}

// NewAdminHandler creates the admin handler. uploads may be nil when no
// object storage is configured; media endpoints then return 503. mediaStore
// may be nil, upload records are then not kept.
func NewAdminHandler(svc *service.Service, uploads Uploader, mediaStore *media.Store) *AdminHandler {
	return &AdminHandler{svc: svc, uploads: uploads, media: mediaStore}
}

// Register attaches the admin routes. The caller is expected to guard the
// group with auth middleware.
func (h *AdminHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/posts", h.CreatePost)
	rg.PUT("/posts/:id", h.UpdatePost)
	rg.DELETE("/posts/:id", h.DeletePost)
	rg.POST("/categories", h.CreateCategory)
	rg.POST("/uploads", h.UploadMedia)
	rg.GET("/media", h.ListMedia)
}

// CreatePost accepts a post document and stores it with a fresh id
func (h *AdminHandler) CreatePost(c *gin.Context) {
	var p blog.Post
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := h.svc.SavePost(c.Request.Context(), &p, true)
	if err != nil {
		if strings.Contains(err.Error(), "required fields missing") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Errorf("create post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save post"})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdatePost stores an edited post under its existing id
func (h *AdminHandler) UpdatePost(c *gin.Context) {
	var p blog.Post
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = c.Param("id")
	saved, err := h.svc.SavePost(c.Request.Context(), &p, false)
	if err != nil {
		if strings.Contains(err.Error(), "required fields missing") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Errorf("update post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save post"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeletePost removes a post by id. Deleting an unknown id is a no-op.
func (h *AdminHandler) DeletePost(c *gin.Context) {
	if err := h.svc.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		logger.Errorf("delete post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateCategory registers a category name so it appears in the taxonomy
// even before any post uses it
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.SaveCategory(c.Request.Context(), req.Name); err != nil {
		logger.Errorf("save category failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

// UploadMedia stores a post image in object storage and returns its key and
// a presigned URL. Files over 5MB are rejected.
func (h *AdminHandler) UploadMedia(c *gin.Context) {
	if h.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media storage not configured"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return
	}
	if file.Size > maxImageUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds 5MB limit"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := "images/" + uuid.NewString() + strings.ToLower(path.Ext(file.Filename))

	task := h.uploads.StartUpload(c.Request.Context(), key, src, file.Size, contentType)
	result, err := task.Wait(c.Request.Context())
	if err != nil {
		logger.Errorf("upload of %s failed: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	// record the asset so the media library can list it; best effort
	asset := &media.Asset{Key: result.Key, URL: result.URL, ContentType: contentType, Size: file.Size}
	if v, ok := c.Get("claims"); ok {
		if cm, ok2 := v.(map[string]interface{}); ok2 {
			asset.UploadedBy, _ = cm["sub"].(string)
		}
	}
	if err := h.media.Save(c.Request.Context(), asset); err != nil {
		logger.Warnf("failed to record media asset %s: %v", result.Key, err)
	}

	c.JSON(http.StatusCreated, gin.H{"key": result.Key, "url": result.URL})
}

// ListMedia returns the newest recorded uploads
func (h *AdminHandler) ListMedia(c *gin.Context) {
	assets, err := h.media.List(c.Request.Context(), 100)
	if err != nil {
		logger.Errorf("media listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list media"})
		return
	}
	c.JSON(http.StatusOK, assets)
}
