package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soulbrew/blog-services/internal/config"
	"github.com/soulbrew/blog-services/internal/sessions"
	"github.com/soulbrew/blog-services/internal/tokens"
	"github.com/soulbrew/blog-services/internal/users"
	"github.com/soulbrew/blog-services/pkg/logger"
	"github.com/soulbrew/blog-services/pkg/middleware"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// LoginRequest carries either an authorization code or, for local
// development, resource-owner credentials.
type LoginRequest struct {
	Mode        string `json:"mode" binding:"required"` // "password" | "auth_code"
	Username    string `json:"username"`
	Password    string `json:"password"`
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

// TokenExchanger trades credentials for a raw ID token at the identity provider
type TokenExchanger interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (string, error)
	PasswordGrant(ctx context.Context, username, password string) (string, error)
}

// AuthHandler implements the editor sign-in flow: OIDC token exchange, user
// provisioning, refresh sessions and logout.
type AuthHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	verifier    middleware.Verifier
	exchanger   TokenExchanger
}

func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service, ver middleware.Verifier, ex TokenExchanger) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, sessionsSvc: s, verifier: ver, exchanger: ex}
}

// Register attaches routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
	a.GET("/me", middleware.AuthMiddleware(h.verifier), h.Me)
}

// Login exchanges credentials at the identity provider, provisions the user
// and issues access and refresh tokens
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mode != "password" && req.Mode != "auth_code" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported mode"})
		return
	}
	if h.exchanger == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "identity provider not configured"})
		return
	}

	var rawIDToken string
	var err error
	if req.Mode == "password" {
		rawIDToken, err = h.exchanger.PasswordGrant(c.Request.Context(), req.Username, req.Password)
	} else {
		if req.Code == "" || req.RedirectURI == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code and redirect_uri required for auth_code mode"})
			return
		}
		rawIDToken, err = h.exchanger.ExchangeCode(c.Request.Context(), req.Code, req.RedirectURI)
	}
	if err != nil {
		logger.Warnf("token exchange failed (mode=%s): %v", req.Mode, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	idt, err := h.verifier.Verify(c.Request.Context(), rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid id token"})
		return
	}
	var claims map[string]interface{}
	if err := idt.Claims(&claims); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to parse claims"})
		return
	}

	u, err := h.usersSvc.UpsertFromClaims(c.Request.Context(), claims)
	if err != nil {
		logger.Errorf("user upsert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user provisioning failed"})
		return
	}

	rft, err := h.sessionsSvc.CreateSession(c.Request.Context(), u.Sub, refreshTokenTTL)
	if err != nil {
		logger.Errorf("failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, u, accessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": rft,
		"user":         u,
		"expiresIn":    int(accessTokenTTL.Seconds()),
	})
}

// Refresh rotates the refresh token and returns a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	next, sess, err := h.sessionsSvc.RotateRefresh(c.Request.Context(), req.RefreshToken, refreshTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	u, err := h.usersSvc.GetBySub(c.Request.Context(), sess.Sub)
	if err != nil || u == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, u, accessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": next,
		"expiresIn":    int(accessTokenTTL.Seconds()),
	})
}

// Logout retires the refresh session and blacklists the presented access
// token for its remaining lifetime
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if auth := c.GetHeader("Authorization"); auth != "" {
		var at string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &at); n == 1 {
			if exp, err := parseExpFromJWT(at); err == nil {
				if ttl := time.Until(exp); ttl > 0 {
					if err := sessions.BlacklistAccessToken(c.Request.Context(), at, ttl); err != nil {
						c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke access token"})
						return
					}
				}
			}
		}
	}
	if err := h.sessionsSvc.DeleteRefresh(c.Request.Context(), req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the stored user record for the authenticated subject
func (h *AuthHandler) Me(c *gin.Context) {
	v, _ := c.Get("claims")
	claims, _ := v.(map[string]interface{})
	sub, _ := claims["sub"].(string)
	if sub == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no subject in token"})
		return
	}
	u, err := h.usersSvc.GetBySub(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// parseExpFromJWT decodes the JWT payload and returns the `exp` claim as
// time.Time. Payload-only parsing, no signature verification; used solely to
// size the blacklist TTL.
func parseExpFromJWT(tok string) (time.Time, error) {
	parts := strings.Split(tok, ".")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("invalid token")
	}
	b, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, err
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(b, &claims); err != nil {
		return time.Time{}, err
	}
	v, ok := claims["exp"]
	if !ok {
		return time.Time{}, fmt.Errorf("exp claim not present")
	}
	switch vv := v.(type) {
	case float64:
		return time.Unix(int64(vv), 0), nil
	case json.Number:
		i64, err := vv.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(i64, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported exp type %T", v)
	}
}
