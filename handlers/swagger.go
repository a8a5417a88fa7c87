package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the blog API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>soulbrew-blog Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the public and admin endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "soulbrew-blog", "version": "v0.1.0" },
  "paths": {
    "/api/posts": { "get": { "summary": "List posts newest first (optional ?category=)", "responses": { "200": { "description": "posts" } } } },
    "/api/posts/featured": { "get": { "summary": "Most recent post", "responses": { "200": { "description": "post" }, "404": { "description": "no posts" } } } },
    "/api/posts/{slug}": { "get": { "summary": "Single post by slug", "responses": { "200": { "description": "post" }, "404": { "description": "not found" } } } },
    "/api/posts/{slug}/related": { "get": { "summary": "Posts sharing categories, best overlap first", "responses": { "200": { "description": "posts" } } } },
    "/api/categories": { "get": { "summary": "Sorted category names", "responses": { "200": { "description": "names" } } } },
    "/api/tags": { "get": { "summary": "Sorted tags", "responses": { "200": { "description": "tags" } } } },
    "/api/search": { "get": { "summary": "Weighted full-text search (?q=)", "responses": { "200": { "description": "matching posts" } } } },
    "/api/admin/posts": { "post": { "summary": "Create a post", "responses": { "201": { "description": "created" }, "400": { "description": "validation failed" } } } },
    "/api/admin/uploads": { "post": { "summary": "Upload a post image (5MB limit)", "responses": { "201": { "description": "key and url" }, "413": { "description": "too large" } } } },
    "/api/auth/login": { "post": { "summary": "Exchange authorization code / login", "responses": { "200": { "description": "tokens returned" } } } },
    "/api/auth/refresh": { "post": { "summary": "Rotate refresh token", "responses": { "200": { "description": "new tokens" }, "401": { "description": "invalid refresh" } } } },
    "/api/auth/logout": { "post": { "summary": "Logout and revoke tokens", "responses": { "200": { "description": "logged out" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
